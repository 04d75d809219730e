package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

func TestSuggestTopics_ParsesSuggestions(t *testing.T) {
	gen := &stubGen{responses: []string{`[
		{"topic": "Spaced repetition in practice", "noteCount": 2, "readiness": "ready", "angle": "from theory to daily habit"},
		{"topic": "Linking as thinking", "noteCount": 1, "readiness": "developing", "angle": "links as first-class ideas"}
	]`}}
	svc, store := newTestService(t, gen)

	mustWrite(t, store, "Permanent Notes/A.md", permanentWithBody("repetition strengthens memory"))
	mustWrite(t, store, "Permanent Notes/B.md", permanentWithBody("links make structure visible"))

	got, err := svc.SuggestTopics(context.Background())
	if err != nil {
		t.Fatalf("SuggestTopics: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Topic != "Spaced repetition in practice" || got[0].NoteCount != 2 || got[0].Readiness != "ready" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Angle != "links as first-class ideas" {
		t.Errorf("second = %+v", got[1])
	}

	prompt := gen.lastPrompt()
	if !strings.Contains(prompt, "repetition strengthens memory") || !strings.Contains(prompt, "links make structure visible") {
		t.Error("prompt missing note content")
	}
}

func TestSuggestTopics_EmptyVault(t *testing.T) {
	gen := &stubGen{}
	svc, _ := newTestService(t, gen)

	_, err := svc.SuggestTopics(context.Background())
	if !errors.Is(err, apperr.ErrPrecondition) {
		t.Fatalf("err = %v, want ErrPrecondition", err)
	}
	if gen.calls() != 0 {
		t.Error("generation must not run on an empty vault")
	}
}

func TestSuggestTopics_MalformedResult(t *testing.T) {
	gen := &stubGen{responses: []string{"Sure! Here are some topics you could write about..."}}
	svc, store := newTestService(t, gen)
	mustWrite(t, store, "Permanent Notes/A.md", permanentWithBody("x"))

	_, err := svc.SuggestTopics(context.Background())
	if !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestSuggestTopics_CapsScannedNotes(t *testing.T) {
	gen := &stubGen{responses: []string{"[]"}}
	svc, store := newTestService(t, gen)

	for i := 0; i < topicScanLimit+5; i++ {
		mustWrite(t, store, fmt.Sprintf("Permanent Notes/Note-%02d.md", i), permanentWithBody("body"))
	}

	if _, err := svc.SuggestTopics(context.Background()); err != nil {
		t.Fatalf("SuggestTopics: %v", err)
	}
	listed := strings.Count(gen.lastPrompt(), "- Note-")
	if listed != topicScanLimit {
		t.Errorf("prompt lists %d notes, want %d", listed, topicScanLimit)
	}
}
