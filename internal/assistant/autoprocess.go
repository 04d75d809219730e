package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

// UnprocessedFleeting lists fleeting notes whose processed flag is still the
// literal string "false".
func (s *Service) UnprocessedFleeting(ctx context.Context) ([]models.NoteRef, error) {
	cfg := s.settings.Current()
	metas, err := s.store.List(cfg.FleetingFolder)
	if err != nil {
		return nil, err
	}

	var out []models.NoteRef
	for _, m := range metas {
		data, err := s.read(m.Path)
		if err != nil {
			return nil, err
		}
		doc := parser.Parse(data)
		if doc.Meta["type"] != models.TypeFleeting {
			continue
		}
		if doc.Meta["processed"] != "false" {
			continue
		}
		out = append(out, models.NoteRef{Path: m.Path, Title: titleOf(doc, m.Path)})
	}
	return out, nil
}

// WatchUnprocessed runs the auto-process tick until ctx is cancelled. Every
// interval it checks the autoProcess setting and, when enabled, reports
// fleeting notes awaiting promotion through notify. It only ever reads the
// vault; promotion stays a user decision.
func (s *Service) WatchUnprocessed(ctx context.Context, interval time.Duration, logger *slog.Logger, notify func([]models.NoteRef)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.settings.Current().AutoProcess {
				continue
			}
			notes, err := s.UnprocessedFleeting(ctx)
			if err != nil {
				logger.Warn("auto-process scan failed", slog.String("error", err.Error()))
				continue
			}
			if len(notes) == 0 {
				continue
			}
			logger.Info("fleeting notes awaiting promotion", slog.Int("count", len(notes)))
			notify(notes)
		}
	}
}
