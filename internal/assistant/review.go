package assistant

import (
	"context"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

const (
	revisitSampleSize = 10
	orphanLimit       = 5
	orphanLinkMin     = 2
)

// developingClusters is a fixed placeholder until real cluster detection
// lands. TODO: replace with co-occurrence grouping over the link index.
var developingClusters = []string{
	"Notes sharing keywords",
	"Recently linked ideas",
	"Frequently revisited topics",
}

// DailyReview walks the permanent notes once and produces the review
// digest: a random sample to revisit, the first orphans found, and the
// placeholder cluster list.
func (s *Service) DailyReview(ctx context.Context) (*models.ReviewDigest, error) {
	cfg := s.settings.Current()
	metas, err := s.store.List(cfg.PermanentFolder)
	if err != nil {
		return nil, err
	}

	type scanned struct {
		ref   models.NoteRef
		links int
	}
	notes := make([]scanned, 0, len(metas))
	for _, m := range metas {
		data, err := s.read(m.Path)
		if err != nil {
			return nil, err
		}
		doc := parser.Parse(data)
		notes = append(notes, scanned{
			ref:   models.NoteRef{Path: m.Path, Title: titleOf(doc, m.Path)},
			links: doc.LinkCount,
		})
	}

	orphans := []models.NoteRef{}
	for _, n := range notes {
		if n.links < orphanLinkMin {
			orphans = append(orphans, n.ref)
			if len(orphans) == orphanLimit {
				break
			}
		}
	}

	sample := make([]scanned, len(notes))
	copy(sample, notes)
	s.shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
	if len(sample) > revisitSampleSize {
		sample = sample[:revisitSampleSize]
	}
	revisit := make([]models.NoteRef, len(sample))
	for i, n := range sample {
		revisit[i] = n.ref
	}

	return &models.ReviewDigest{
		Revisit:  revisit,
		Orphans:  orphans,
		Clusters: developingClusters,
	}, nil
}
