package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/parser"
)

func TestStructure_WritesOutlineNote(t *testing.T) {
	overview := "## Core ideas\n\n[[First]] leads into [[Second]].\n"
	gen := &stubGen{responses: []string{overview}}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	mustWrite(t, store, "Permanent Notes/First.md", permanentWithBody("the starting point"))
	mustWrite(t, store, "Permanent Notes/Second.md", permanentWithBody("the continuation"))

	ref, err := svc.Structure(ctx, "Learning Systems", []string{
		"Permanent Notes/First.md",
		"Permanent Notes/Second.md",
	})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if ref.Path != "Structure Notes/Learning Systems.md" {
		t.Errorf("path = %q", ref.Path)
	}

	data, err := store.Read(ref.Path)
	if err != nil {
		t.Fatal(err)
	}
	doc := parser.Parse(data)
	if doc.Meta["type"] != "outline" {
		t.Errorf("type = %q", doc.Meta["type"])
	}
	if doc.Meta["topic"] != "Learning Systems" {
		t.Errorf("topic = %q", doc.Meta["topic"])
	}
	if !strings.Contains(doc.Body, "[[First]] leads into [[Second]].") {
		t.Errorf("generated overview not kept verbatim:\n%s", doc.Body)
	}

	prompt := gen.lastPrompt()
	for _, want := range []string{"Learning Systems", "the starting point", "the continuation"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestStructure_Preconditions(t *testing.T) {
	svc, store := newTestService(t, &stubGen{})
	ctx := context.Background()
	mustWrite(t, store, "Permanent Notes/A.md", permanentWithBody("x"))

	if _, err := svc.Structure(ctx, "  ", []string{"Permanent Notes/A.md"}); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("blank topic: err = %v", err)
	}
	if _, err := svc.Structure(ctx, "Topic", nil); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("no notes: err = %v", err)
	}
}

func TestStructure_GenerationFailureWritesNothing(t *testing.T) {
	gen := &stubGen{err: apperr.ErrTransport}
	svc, store := newTestService(t, gen)
	mustWrite(t, store, "Permanent Notes/A.md", permanentWithBody("x"))

	_, err := svc.Structure(context.Background(), "Topic", []string{"Permanent Notes/A.md"})
	if !errors.Is(err, apperr.ErrTransport) {
		t.Fatalf("err = %v", err)
	}
	items, _ := store.List("Structure Notes")
	if len(items) != 0 {
		t.Error("no outline should be written when generation fails")
	}
}

func TestScaffoldProject(t *testing.T) {
	svc, store := newTestService(t, &stubGen{})

	ref, err := svc.ScaffoldProject(context.Background(), "Why spaced repetition wins", "practical, example-driven")
	if err != nil {
		t.Fatalf("ScaffoldProject: %v", err)
	}
	if ref.Path != "Structure Notes/Project-Why spaced repetition wins.md" {
		t.Errorf("path = %q", ref.Path)
	}

	data, _ := store.Read(ref.Path)
	doc := parser.Parse(data)
	if doc.Meta["type"] != "writing-project" {
		t.Errorf("type = %q", doc.Meta["type"])
	}
	if doc.Meta["status"] != "draft" {
		t.Errorf("status = %q", doc.Meta["status"])
	}
	if !strings.Contains(doc.Body, "# Why spaced repetition wins") {
		t.Errorf("missing heading:\n%s", doc.Body)
	}
	if !strings.Contains(doc.Body, "practical, example-driven") {
		t.Errorf("missing angle:\n%s", doc.Body)
	}
}

func TestScaffoldProject_CollisionSurfaces(t *testing.T) {
	svc, _ := newTestService(t, &stubGen{})
	ctx := context.Background()

	if _, err := svc.ScaffoldProject(ctx, "Same Topic", ""); err != nil {
		t.Fatal(err)
	}
	_, err := svc.ScaffoldProject(ctx, "Same Topic", "")
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestOutline_ReturnsWithoutPersisting(t *testing.T) {
	gen := &stubGen{responses: []string{"## Opening\n\nwhy it matters\n"}}
	svc, store := newTestService(t, gen)

	got, err := svc.Outline(context.Background(), "Note-taking systems")
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if !strings.Contains(got, "## Opening") {
		t.Errorf("outline = %q", got)
	}
	items, _ := store.List("")
	if len(items) != 0 {
		t.Error("outline drafts must not be written to the vault")
	}

	if _, err := svc.Outline(context.Background(), " "); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("blank topic: err = %v", err)
	}
}
