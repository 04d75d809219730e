package parser

import (
	"reflect"
	"testing"
)

func TestParse_HeaderAndBody(t *testing.T) {
	input := []byte("---\ntype: fleeting\ncreated: 2026-08-21T10:30:00Z\nprocessed: false\n---\n\nBody text.\n")
	r := Parse(input)
	want := map[string]string{
		"type":      "fleeting",
		"created":   "2026-08-21T10:30:00Z",
		"processed": "false",
	}
	if !reflect.DeepEqual(r.Meta, want) {
		t.Errorf("meta = %v, want %v", r.Meta, want)
	}
	if r.Body != "Body text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_ValueSplitsAtFirstColon(t *testing.T) {
	// Timestamps contain colons; only the first one separates key from value.
	r := Parse([]byte("---\ncreated: 2026-08-21T10:30:00Z\n---\nBody\n"))
	if got := r.Meta["created"]; got != "2026-08-21T10:30:00Z" {
		t.Errorf("created = %q, want full timestamp", got)
	}
}

func TestParse_ValuesStayStrings(t *testing.T) {
	r := Parse([]byte("---\nprocessed: false\ncount: 3\n---\nBody\n"))
	if got := r.Meta["processed"]; got != "false" {
		t.Errorf("processed = %q, want the literal string %q", got, "false")
	}
	if got := r.Meta["count"]; got != "3" {
		t.Errorf("count = %q, want %q", got, "3")
	}
}

func TestParse_SkipsMalformedHeaderLines(t *testing.T) {
	r := Parse([]byte("---\ntype: permanent\nno colon here\n: empty key\n---\nBody\n"))
	want := map[string]string{"type": "permanent"}
	if !reflect.DeepEqual(r.Meta, want) {
		t.Errorf("meta = %v, want %v", r.Meta, want)
	}
}

func TestParse_NoHeader(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if len(r.Meta) != 0 {
		t.Errorf("expected empty meta, got %v", r.Meta)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q, want full content", r.Body)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_UnclosedHeader(t *testing.T) {
	input := []byte("---\ntype: fleeting\nno closing delimiter\n")
	r := Parse(input)
	if len(r.Meta) != 0 {
		t.Errorf("expected empty meta, got %v", r.Meta)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q, want full content", r.Body)
	}
}

func TestParse_LinkCountKeepsDuplicates(t *testing.T) {
	r := Parse([]byte("See [[Note A]] and [[Note A]] and [[Note B]].\n"))
	if r.LinkCount != 3 {
		t.Errorf("LinkCount = %d, want 3", r.LinkCount)
	}
	if len(r.Links) != 2 {
		t.Errorf("len(Links) = %d, want 2 deduplicated targets", len(r.Links))
	}
}

func TestExtractLinks_Basic(t *testing.T) {
	body := "See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again."
	links := extractLinks(body)
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0] != "Note A" || links[1] != "Note B" {
		t.Errorf("links = %v", links)
	}
}

func TestExtractLinks_EmptyTarget(t *testing.T) {
	links := extractLinks("see [[ ]] and [[|alias]]")
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestExtractTags_KeywordsAndInline(t *testing.T) {
	meta := map[string]string{"keywords": "alpha, gamma"}
	body := "Some text #beta and #alpha again."
	tags := extractTags(body, meta)
	// alpha and gamma from keywords, beta from body; alpha not duplicated.
	want := []string{"alpha", "gamma", "beta"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func TestDeriveTitle_HeaderOverH1(t *testing.T) {
	meta := map[string]string{"title": "Header Title"}
	body := "# H1 Title\ntext"
	title := deriveTitle(meta, body)
	if title != "Header Title" {
		t.Errorf("title = %q, want %q", title, "Header Title")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(map[string]string{}, "some text\n# My Heading\nmore")
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}
