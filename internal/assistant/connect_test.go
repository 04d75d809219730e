package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/settings"
)

func TestConnect_FiltersAndSorts(t *testing.T) {
	gen := &stubGen{responses: []string{"They develop the same argument."}}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	mustWrite(t, store, "Permanent Notes/Active.md", permanentWithBody("alpha beta gamma delta"))
	mustWrite(t, store, "Permanent Notes/Twin.md", permanentWithBody("alpha beta gamma delta"))
	mustWrite(t, store, "Permanent Notes/Near.md", permanentWithBody("alpha beta gamma epsilon"))
	mustWrite(t, store, "Permanent Notes/Far.md", permanentWithBody("zeta eta theta"))

	// Default threshold 0.7: only the identical twin passes.
	got, err := svc.Connect(ctx, "Permanent Notes/Active.md")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(got) != 1 || got[0].Target != "Permanent Notes/Twin.md" {
		t.Fatalf("suggestions = %+v, want only Twin", got)
	}
	if got[0].Score != 1 {
		t.Errorf("score = %v, want 1", got[0].Score)
	}
	if got[0].Explanation != "They develop the same argument." {
		t.Errorf("explanation = %q", got[0].Explanation)
	}

	// Lowering the threshold pulls in the partial overlap, sorted best first.
	if _, err := svc.settings.Update(func(s *settings.Settings) { s.ConnectionThreshold = 0.5 }); err != nil {
		t.Fatal(err)
	}
	got, err = svc.Connect(ctx, "Permanent Notes/Active.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestions = %+v, want 2", got)
	}
	if got[0].Target != "Permanent Notes/Twin.md" || got[1].Target != "Permanent Notes/Near.md" {
		t.Errorf("order = %q, %q", got[0].Target, got[1].Target)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %v, %v", got[0].Score, got[1].Score)
	}
}

func TestConnect_ExcludesSelfAndEqualScore(t *testing.T) {
	gen := &stubGen{responses: []string{"related"}}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	mustWrite(t, store, "Permanent Notes/Active.md", permanentWithBody("alpha beta gamma delta"))
	// Overlap score is exactly 3/5 = 0.6; a threshold of 0.6 must exclude it.
	mustWrite(t, store, "Permanent Notes/Near.md", permanentWithBody("alpha beta gamma epsilon"))

	if _, err := svc.settings.Update(func(s *settings.Settings) { s.ConnectionThreshold = 0.6 }); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Connect(ctx, "Permanent Notes/Active.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("suggestions = %+v, want none at an exactly-met threshold", got)
	}
	if gen.calls() != 0 {
		t.Error("no explanations should be generated for filtered notes")
	}
}

func TestConnect_NoCandidates(t *testing.T) {
	gen := &stubGen{}
	svc, store := newTestService(t, gen)

	mustWrite(t, store, "Fleeting Notes/Solo.md", "---\ntype: fleeting\nprocessed: false\n---\n\nalone\n")
	got, err := svc.Connect(context.Background(), "Fleeting Notes/Solo.md")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("suggestions = %+v, want empty", got)
	}
	if got == nil {
		t.Error("suggestions should be an empty slice, not nil")
	}
}

func TestConnect_MissingNote(t *testing.T) {
	svc, _ := newTestService(t, &stubGen{})
	_, err := svc.Connect(context.Background(), "Permanent Notes/ghost.md")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestApplyConnection_CreatesSection(t *testing.T) {
	svc, store := newTestService(t, &stubGen{})
	ctx := context.Background()

	mustWrite(t, store, "Permanent Notes/A.md", permanentWithBody("text"))
	err := svc.ApplyConnection(ctx, "Permanent Notes/A.md", "Permanent Notes/B.md", "both cover retrieval practice")
	if err != nil {
		t.Fatalf("ApplyConnection: %v", err)
	}

	data, _ := store.Read("Permanent Notes/A.md")
	content := string(data)
	if !strings.Contains(content, relatedHeading) {
		t.Errorf("missing related section:\n%s", content)
	}
	if !strings.Contains(content, "- [[B]]: both cover retrieval practice") {
		t.Errorf("missing link line:\n%s", content)
	}

	// A second link reuses the section.
	if err := svc.ApplyConnection(ctx, "Permanent Notes/A.md", "Permanent Notes/C.md", ""); err != nil {
		t.Fatal(err)
	}
	data, _ = store.Read("Permanent Notes/A.md")
	if strings.Count(string(data), relatedHeading) != 1 {
		t.Errorf("related section duplicated:\n%s", data)
	}
	if !strings.Contains(string(data), "- [[C]]\n") {
		t.Errorf("second link missing:\n%s", data)
	}
}

func TestApplyConnection_RequiresArgs(t *testing.T) {
	svc, _ := newTestService(t, &stubGen{})
	if err := svc.ApplyConnection(context.Background(), "", "x", ""); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("err = %v, want ErrPrecondition", err)
	}
	if err := svc.ApplyConnection(context.Background(), "x", "", ""); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("err = %v, want ErrPrecondition", err)
	}
}
