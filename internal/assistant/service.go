// Package assistant implements the note lifecycle workflows: capture,
// promote, connect, structure, writing topics, and daily review. Workflows
// return plain result values; rendering belongs to the transport layer.
package assistant

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/genai"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/settings"
	"github.com/starford/ansuz/internal/storage"
)

// Service sequences the vault, the similarity scorer, and the generation
// client into workflows. A failing step aborts the rest of its workflow;
// writes already made stay in place.
type Service struct {
	store    storage.Provider
	gen      genai.Generator
	settings *settings.Store

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// NewService creates an assistant service.
func NewService(store storage.Provider, gen genai.Generator, st *settings.Store) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		settings: st,
		now:      time.Now,
		shuffle:  rand.Shuffle,
	}
}

// read loads a vault file, mapping a missing file to apperr.ErrNotFound.
func (s *Service) read(path string) ([]byte, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, apperr.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

// create writes a new vault file, mapping a name collision to
// apperr.ErrAlreadyExists.
func (s *Service) create(path string, content []byte) error {
	if err := s.store.Create(path, content); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, apperr.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

// wikiName returns the wikilink target for a vault path: the file name
// without its .md extension.
func wikiName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// titleOf prefers the parsed title and falls back to the file name.
func titleOf(doc *parser.Result, path string) string {
	if doc.Title != "" {
		return doc.Title
	}
	return wikiName(path)
}

// sanitizeTitle turns generated text into a usable file name: path and
// reserved characters removed, whitespace collapsed, length capped.
func sanitizeTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '#', '[', ']':
			return -1
		}
		return r
	}, title)
	title = strings.Join(strings.Fields(title), " ")
	if len(title) > 120 {
		title = strings.TrimSpace(title[:120])
	}
	if title == "" {
		return "Untitled"
	}
	return title
}

// excerpt returns at most n runes of text, with an ellipsis when truncated.
func excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
