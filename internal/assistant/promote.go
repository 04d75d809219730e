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

// promotion is the JSON contract the generation prompt asks for.
type promotion struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Keywords    []string `json:"keywords"`
	Connections []string `json:"connections"`
}

// Promote turns the fleeting note at sourcePath into a permanent note. The
// generated title names the new file; the source keeps its path, gets a
// back-reference in place of its promotion marker, and has its processed
// flag flipped. Nothing is written unless the source is a fleeting note and
// generation succeeds.
func (s *Service) Promote(ctx context.Context, sourcePath, elaboration string) (*models.PromoteResult, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("no note selected: %w", apperr.ErrPrecondition)
	}
	data, err := s.read(sourcePath)
	if err != nil {
		return nil, err
	}

	doc := parser.Parse(data)
	if doc.Meta["type"] != models.TypeFleeting {
		return nil, fmt.Errorf("%s is not a fleeting note: %w", sourcePath, apperr.ErrPrecondition)
	}

	raw, err := s.gen.Generate(ctx, promotePrompt(doc.Body, elaboration))
	if err != nil {
		return nil, err
	}

	var p promotion
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedResponse, err)
	}

	cfg := s.settings.Current()
	if err := s.store.EnsureFolder(cfg.PermanentFolder); err != nil {
		return nil, err
	}

	permPath := path.Join(cfg.PermanentFolder, sanitizeTitle(p.Title)+".md")
	if err := s.create(permPath, []byte(permanentNote(p, sourcePath, s.now()))); err != nil {
		return nil, err
	}

	annotated := annotateSource(string(data), wikiName(permPath))
	if err := s.store.Write(sourcePath, []byte(annotated)); err != nil {
		return nil, err
	}

	return &models.PromoteResult{
		SourcePath:    sourcePath,
		PermanentPath: permPath,
		Title:         p.Title,
		Keywords:      p.Keywords,
		Connections:   p.Connections,
	}, nil
}

func permanentNote(p promotion, sourcePath string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("type: permanent\n")
	fmt.Fprintf(&b, "created: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "keywords: %s\n", strings.Join(p.Keywords, ", "))
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(p.Content))
	b.WriteString("\n")
	if len(p.Connections) > 0 {
		b.WriteString("\n## Connections\n\n")
		for _, c := range p.Connections {
			fmt.Fprintf(&b, "- [[%s]]\n", c)
		}
	}
	fmt.Fprintf(&b, "\nSource: [[%s]]\n", wikiName(sourcePath))
	return b.String()
}

// annotateSource rewrites the fleeting note after promotion: the marker
// becomes a back-reference and the processed flag flips in place.
func annotateSource(content, permanentName string) string {
	backref := fmt.Sprintf("Promoted to [[%s]]", permanentName)
	if strings.Contains(content, promotionMarker) {
		content = strings.Replace(content, promotionMarker, backref, 1)
	} else {
		content = strings.TrimRight(content, "\n") + "\n\n" + backref + "\n"
	}
	return strings.Replace(content, "processed: false", "processed: true", 1)
}
