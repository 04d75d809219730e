package assistant

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// promotionMarker is the placeholder a fleeting note carries until Promote
// replaces it with a back-reference to the permanent note.
const promotionMarker = "<!-- This note will be processed and promoted later -->"

// Capture wraps text in the fleeting note template and writes it to the
// fleeting folder under a millisecond-stamped name. The text itself is
// never altered.
func (s *Service) Capture(ctx context.Context, text string) (models.NoteRef, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.NoteRef{}, fmt.Errorf("nothing to capture: %w", apperr.ErrPrecondition)
	}

	cfg := s.settings.Current()
	if err := s.store.EnsureFolder(cfg.FleetingFolder); err != nil {
		return models.NoteRef{}, err
	}

	now := s.now()
	notePath := path.Join(cfg.FleetingFolder, fmt.Sprintf("Fleeting-%d.md", now.UnixMilli()))
	content := fleetingNote(text, now)

	if err := s.create(notePath, []byte(content)); err != nil {
		return models.NoteRef{}, err
	}
	return models.NoteRef{Path: notePath, Title: wikiName(notePath)}, nil
}

func fleetingNote(text string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("type: fleeting\n")
	fmt.Fprintf(&b, "created: %s\n", now.UTC().Format(time.RFC3339))
	b.WriteString("processed: false\n")
	b.WriteString("---\n\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(promotionMarker)
	b.WriteString("\n")
	return b.String()
}
