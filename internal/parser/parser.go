// Package parser extracts the front-matter header, wikilinks, and tags from
// Markdown content.
package parser

import (
	"regexp"
	"strings"
)

var (
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
	tagRe      = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Meta      map[string]string
	Body      string
	Links     []string
	LinkCount int
	Tags      []string
	Title     string
}

// Parse extracts the front-matter mapping, body, wikilinks, and tags from raw
// Markdown bytes. It never fails: malformed input degrades to an empty
// mapping with the full content as body.
func Parse(data []byte) *Result {
	meta, body := splitHeader(data)

	return &Result{
		Meta:      meta,
		Body:      body,
		Links:     extractLinks(body),
		LinkCount: len(wikilinkRe.FindAllStringIndex(body, -1)),
		Tags:      extractTags(body, meta),
		Title:     deriveTitle(meta, body),
	}
}

// splitHeader separates the front-matter block (between leading ---
// delimiters) from the Markdown body. Header lines split at the first colon;
// lines without one are skipped. Values stay raw strings, so flags like
// "false" are compared as text, never coerced.
func splitHeader(data []byte) (map[string]string, string) {
	const delim = "---"
	meta := make(map[string]string)
	trimmed := strings.TrimLeft(string(data), "\n\r")

	if !strings.HasPrefix(trimmed, delim) {
		return meta, string(data)
	}

	rest := trimmed[len(delim):]
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return meta, string(data)
	}

	block := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(afterDelim, "\n\r")

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = strings.TrimSpace(value)
	}

	return meta, body
}

// extractLinks returns deduplicated wikilink targets, normalising aliases.
func extractLinks(body string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		raw := m[1]
		// Handle aliases: [[Target|Alias]] → Target.
		target := raw
		if i := strings.Index(raw, "|"); i >= 0 {
			target = raw[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// extractTags collects keywords from the front-matter (comma separated) and
// inline #tags from the body.
func extractTags(body string, meta map[string]string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, kw := range strings.Split(meta["keywords"], ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}

	matches := tagRe.FindAllStringSubmatch(body, -1)
	for _, m := range matches {
		t := m[1]
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}

// deriveTitle returns the front-matter "title" if present, otherwise the
// first H1 heading, otherwise empty string.
func deriveTitle(meta map[string]string, body string) string {
	if t := meta["title"]; t != "" {
		return t
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
