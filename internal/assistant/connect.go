package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/similarity"
)

const relatedHeading = "## Related"

// Connect scores the note at activePath against every permanent note and
// returns suggestions whose similarity strictly exceeds the configured
// threshold, best first. Each suggestion carries a generated one-line
// explanation. Nothing is written; ApplyConnection does that.
func (s *Service) Connect(ctx context.Context, activePath string) ([]models.ConnectionSuggestion, error) {
	if activePath == "" {
		return nil, fmt.Errorf("no note selected: %w", apperr.ErrPrecondition)
	}
	data, err := s.read(activePath)
	if err != nil {
		return nil, err
	}
	active := parser.Parse(data)

	cfg := s.settings.Current()
	candidates, err := s.store.List(cfg.PermanentFolder)
	if err != nil {
		return nil, err
	}

	suggestions := []models.ConnectionSuggestion{}
	for _, c := range candidates {
		if c.Path == activePath {
			continue
		}
		raw, err := s.read(c.Path)
		if err != nil {
			return nil, err
		}
		doc := parser.Parse(raw)

		score := similarity.Score(active.Body, doc.Body)
		if score <= cfg.ConnectionThreshold {
			continue
		}

		explanation, err := s.gen.Generate(ctx, explanationPrompt(
			titleOf(active, activePath), active.Body,
			titleOf(doc, c.Path), doc.Body,
		))
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, models.ConnectionSuggestion{
			Target:      c.Path,
			Score:       score,
			Explanation: strings.TrimSpace(explanation),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions, nil
}

// ApplyConnection appends a wikilink to target under the Related section of
// the note at activePath, creating the section on first use.
func (s *Service) ApplyConnection(ctx context.Context, activePath, target, explanation string) error {
	if activePath == "" || target == "" {
		return fmt.Errorf("note and target are required: %w", apperr.ErrPrecondition)
	}
	data, err := s.read(activePath)
	if err != nil {
		return err
	}

	content := strings.TrimRight(string(data), "\n")
	if !strings.Contains(content, relatedHeading) {
		content += "\n\n" + relatedHeading + "\n"
	}
	line := fmt.Sprintf("- [[%s]]", wikiName(target))
	if explanation != "" {
		line += ": " + explanation
	}
	content = strings.TrimRight(content, "\n") + "\n" + line + "\n"

	return s.store.Write(activePath, []byte(content))
}
