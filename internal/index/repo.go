package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// NoteRow represents a row in the notes table.
type NoteRow struct {
	Path      string
	Title     string
	Kind      string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// GraphNode is a note in the knowledge graph.
type GraphNode struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// GraphLink is a resolved edge between two indexed notes.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// UpsertNote inserts or replaces a note, its FTS entry, and links within a transaction.
func (db *DB) UpsertNote(n NoteRow, body string, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(n.Tags)

	// Upsert notes table (includes body for fallback search).
	_, err = tx.Exec(`
		INSERT INTO notes (path, title, kind, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			kind       = excluded.kind,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, n.Path, n.Title, n.Kind, n.Checksum, string(tagsJSON), body, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, n.Path, n.Title, body, n.Tags); err != nil {
		return err
	}

	// Replace links: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, n.Path)
	if len(links) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source, target, type) VALUES (?, ?, 'inline')`)
		if err != nil {
			return fmt.Errorf("index: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range links {
			if _, err := stmt.Exec(n.Path, target); err != nil {
				return fmt.Errorf("index: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteNote removes a note, its FTS entry, and outgoing links.
func (db *DB) DeleteNote(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM notes WHERE path = ?`, path)

	return tx.Commit()
}

// GetNote returns the indexed row for path, or nil when the path is unknown.
func (db *DB) GetNote(path string) (*NoteRow, error) {
	var (
		n    NoteRow
		tags string
	)
	err := db.conn.QueryRow(`
		SELECT path, title, kind, checksum, tags, updated_at
		FROM notes WHERE path = ?
	`, path).Scan(&n.Path, &n.Title, &n.Kind, &n.Checksum, &tags, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get note: %w", err)
	}
	_ = json.Unmarshal([]byte(tags), &n.Tags)
	return &n, nil
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// ListNotes returns one page of notes filtered by tag and kind, plus the
// total count for the filter.
func (db *DB) ListNotes(limit, offset int, tag, kind, sortBy string) ([]NoteRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		where []string
		args  []any
	)
	if tag != "" {
		// Tags are stored as a JSON array of strings.
		where = append(where, `tags LIKE ?`)
		args = append(args, `%"`+tag+`"%`)
	}
	if kind != "" {
		where = append(where, `kind = ?`)
		args = append(args, kind)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM notes`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count notes: %w", err)
	}

	order := "updated_at DESC"
	switch sortBy {
	case "title":
		order = "title COLLATE NOCASE ASC"
	case "path":
		order = "path ASC"
	}

	rows, err := db.conn.Query(`
		SELECT path, title, kind, checksum, tags, updated_at
		FROM notes`+cond+`
		ORDER BY `+order+`
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list notes: %w", err)
	}
	defer rows.Close()

	var out []NoteRow
	for rows.Next() {
		var (
			n    NoteRow
			tags string
		)
		if err := rows.Scan(&n.Path, &n.Title, &n.Kind, &n.Checksum, &tags, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(tags), &n.Tags)
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// Graph returns every indexed note as a node plus every link whose wikilink
// target resolves to an indexed note, either by full path or by file-name
// stem. Unresolvable links are dropped.
func (db *DB) Graph() ([]GraphNode, []GraphLink, error) {
	rows, err := db.conn.Query(`SELECT path, title, kind FROM notes ORDER BY path`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph notes: %w", err)
	}
	defer rows.Close()

	var nodes []GraphNode
	byPath := make(map[string]struct{})
	byStem := make(map[string]string)
	for rows.Next() {
		var n GraphNode
		if err := rows.Scan(&n.ID, &n.Title, &n.Kind); err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, n)
		byPath[n.ID] = struct{}{}
		stem := stemOf(n.ID)
		if _, taken := byStem[stem]; !taken {
			byStem[stem] = n.ID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	linkRows, err := db.conn.Query(`SELECT source, target FROM links`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph links: %w", err)
	}
	defer linkRows.Close()

	var links []GraphLink
	for linkRows.Next() {
		var source, target string
		if err := linkRows.Scan(&source, &target); err != nil {
			return nil, nil, err
		}
		resolved, ok := resolveTarget(target, byPath, byStem)
		if !ok {
			continue
		}
		links = append(links, GraphLink{Source: source, Target: resolved})
	}
	if err := linkRows.Err(); err != nil {
		return nil, nil, err
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})
	return nodes, links, nil
}

// resolveTarget maps a raw wikilink target to an indexed note path.
func resolveTarget(target string, byPath map[string]struct{}, byStem map[string]string) (string, bool) {
	if _, ok := byPath[target]; ok {
		return target, true
	}
	if p, ok := byStem[stemOf(target)]; ok {
		return p, true
	}
	return "", false
}

func stemOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".md")
}

// AllPaths returns every indexed note path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// AllChecksums returns the stored checksum for every indexed path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Backlinks returns all note paths that link to the given target.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT source FROM links WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
