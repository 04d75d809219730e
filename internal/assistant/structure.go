package assistant

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

// noteContext is a title/body pair embedded into prompts.
type noteContext struct {
	Title string
	Body  string
}

// Structure asks for a linked overview of the selected notes and writes it
// verbatim as an outline note named after the topic.
func (s *Service) Structure(ctx context.Context, topic string, notePaths []string) (models.NoteRef, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.NoteRef{}, fmt.Errorf("topic is required: %w", apperr.ErrPrecondition)
	}
	if len(notePaths) == 0 {
		return models.NoteRef{}, fmt.Errorf("no notes selected: %w", apperr.ErrPrecondition)
	}

	notes := make([]noteContext, 0, len(notePaths))
	for _, p := range notePaths {
		data, err := s.read(p)
		if err != nil {
			return models.NoteRef{}, err
		}
		doc := parser.Parse(data)
		notes = append(notes, noteContext{Title: titleOf(doc, p), Body: doc.Body})
	}

	overview, err := s.gen.Generate(ctx, structurePrompt(topic, notes))
	if err != nil {
		return models.NoteRef{}, err
	}

	cfg := s.settings.Current()
	if err := s.store.EnsureFolder(cfg.StructureFolder); err != nil {
		return models.NoteRef{}, err
	}

	outPath := path.Join(cfg.StructureFolder, sanitizeTitle(topic)+".md")
	if err := s.create(outPath, []byte(outlineNote(topic, overview, s.now()))); err != nil {
		return models.NoteRef{}, err
	}
	return models.NoteRef{Path: outPath, Title: wikiName(outPath)}, nil
}

func outlineNote(topic, overview string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("type: outline\n")
	fmt.Fprintf(&b, "created: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "topic: %s\n", topic)
	b.WriteString("---\n\n")
	// The generated overview lands as-is; its wikilinks stay intact.
	b.WriteString(strings.TrimSpace(overview))
	b.WriteString("\n")
	return b.String()
}
