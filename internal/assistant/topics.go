package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

// topicScanLimit caps how many permanent notes feed the topic prompt, to
// keep it inside the context window of any configured model.
const topicScanLimit = 50

// SuggestTopics mines the permanent notes for writing topics that are ready
// to be drafted. Only the first topicScanLimit notes are considered.
func (s *Service) SuggestTopics(ctx context.Context) ([]models.TopicSuggestion, error) {
	cfg := s.settings.Current()
	metas, err := s.store.List(cfg.PermanentFolder)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, fmt.Errorf("no permanent notes to analyse: %w", apperr.ErrPrecondition)
	}
	if len(metas) > topicScanLimit {
		metas = metas[:topicScanLimit]
	}

	notes := make([]noteContext, 0, len(metas))
	for _, m := range metas {
		data, err := s.read(m.Path)
		if err != nil {
			return nil, err
		}
		doc := parser.Parse(data)
		notes = append(notes, noteContext{Title: titleOf(doc, m.Path), Body: excerpt(doc.Body, 200)})
	}

	raw, err := s.gen.Generate(ctx, topicsPrompt(notes))
	if err != nil {
		return nil, err
	}

	var topics []models.TopicSuggestion
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedResponse, err)
	}
	return topics, nil
}

// Outline drafts a working outline for topic. The draft is returned to the
// caller, never persisted.
func (s *Service) Outline(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("topic is required: %w", apperr.ErrPrecondition)
	}
	return s.gen.Generate(ctx, outlinePrompt(topic))
}

// ScaffoldProject creates a writing-project note for topic in the structure
// folder. No generation call is involved; the scaffold is a fixed template.
func (s *Service) ScaffoldProject(ctx context.Context, topic, angle string) (models.NoteRef, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.NoteRef{}, fmt.Errorf("topic is required: %w", apperr.ErrPrecondition)
	}

	cfg := s.settings.Current()
	if err := s.store.EnsureFolder(cfg.StructureFolder); err != nil {
		return models.NoteRef{}, err
	}

	outPath := path.Join(cfg.StructureFolder, "Project-"+sanitizeTitle(topic)+".md")
	if err := s.create(outPath, []byte(projectNote(topic, angle, s.now()))); err != nil {
		return models.NoteRef{}, err
	}
	return models.NoteRef{Path: outPath, Title: wikiName(outPath)}, nil
}

func projectNote(topic, angle string, now time.Time) string {
	if strings.TrimSpace(angle) == "" {
		angle = "To be decided."
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("type: writing-project\n")
	fmt.Fprintf(&b, "created: %s\n", now.UTC().Format(time.RFC3339))
	b.WriteString("status: draft\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", topic)
	b.WriteString("## Angle\n\n")
	b.WriteString(strings.TrimSpace(angle))
	b.WriteString("\n\n## Outline\n\n- \n\n## Source Notes\n\n- \n")
	return b.String()
}
