package noteservice

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path      string            `json:"path"`
	Title     string            `json:"title"`
	Kind      string            `json:"kind,omitempty"`
	Content   string            `json:"content"`
	Checksum  string            `json:"checksum"`
	Tags      []string          `json:"tags"`
	Meta      map[string]string `json:"meta,omitempty"`
	Backlinks []string          `json:"backlinks"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind,omitempty"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    *index.DB
}

// NewService creates a new note service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db}
}

// GetNote reads a note from storage, parses it, and enriches with backlinks.
func (s *Service) GetNote(_ context.Context, notePath string) (*NoteDetail, error) {
	data, err := s.store.Read(notePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildNoteDetail(notePath, data)
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, notePath string, content []byte) (*NoteDetail, error) {
	if err := s.store.Create(notePath, content); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, apperr.ErrAlreadyExists
		}
		return nil, err
	}
	if err := s.IndexFile(notePath, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(notePath, content)
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, notePath string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(notePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(notePath, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(notePath, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(notePath, content)
}

// DeleteNote removes a note from storage and index.
func (s *Service) DeleteNote(_ context.Context, notePath string) error {
	if err := s.store.Delete(notePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteNote(notePath)
}

// ListNotes returns paginated notes with optional tag and kind filters.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag, kind, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, tag, kind, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Kind:      r.Kind,
			Checksum:  r.Checksum,
			Tags:      nonNilSlice(r.Tags),
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Graph returns all nodes and links for graph visualization.
func (s *Service) Graph(_ context.Context) ([]index.GraphNode, []index.GraphLink, error) {
	return s.db.Graph()
}

// Backlinks returns all note paths that link to the given note. Wikilinks
// usually target the file-name stem, so both the stem and the full path are
// matched.
func (s *Service) Backlinks(_ context.Context, notePath string) ([]string, error) {
	byStem, err := s.db.Backlinks(stemOf(notePath))
	if err != nil {
		return nil, err
	}
	byPath, err := s.db.Backlinks(notePath)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(byStem)+len(byPath))
	var out []string
	for _, p := range append(byStem, byPath...) {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// IndexFile parses data and upserts it into the index.
// Exported so that sync and watcher can reuse it.
func (s *Service) IndexFile(notePath string, data []byte) error {
	res := parser.Parse(data)
	return s.db.UpsertNote(index.NoteRow{
		Path:      notePath,
		Title:     res.Title,
		Kind:      res.Meta["type"],
		Checksum:  checksum.Sum(data),
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body, res.Links)
}

// buildNoteDetail constructs a NoteDetail from raw data without re-reading the file.
func (s *Service) buildNoteDetail(notePath string, data []byte) (*NoteDetail, error) {
	res := parser.Parse(data)
	bl, err := s.Backlinks(context.Background(), notePath)
	if err != nil {
		return nil, err
	}
	return &NoteDetail{
		Path:      notePath,
		Title:     res.Title,
		Kind:      res.Meta["type"],
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		Tags:      nonNilSlice(res.Tags),
		Meta:      res.Meta,
		Backlinks: nonNilSlice(bl),
		UpdatedAt: time.Now(),
	}, nil
}

func stemOf(p string) string {
	return strings.TrimSuffix(path.Base(p), ".md")
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
