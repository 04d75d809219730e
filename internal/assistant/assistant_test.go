package assistant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/settings"
	"github.com/starford/ansuz/internal/storage"
)

// stubGen is a canned Generator. Responses are consumed in order; the last
// one repeats. Every prompt is recorded.
type stubGen struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (g *stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", nil
	}
	r := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return r, nil
}

func (g *stubGen) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func (g *stubGen) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// newTestService wires a service against a temp vault, in-memory settings,
// a fixed clock, and a no-op shuffle.
func newTestService(t *testing.T, gen *stubGen) (*Service, *storage.FS) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	svc := NewService(store, gen, settings.NewStore("", settings.NewDefault()))
	svc.now = func() time.Time { return time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC) }
	svc.shuffle = func(n int, swap func(i, j int)) {}
	return svc, store
}

func mustWrite(t *testing.T, store *storage.FS, path, content string) {
	t.Helper()
	if err := store.Write(path, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func permanentWithBody(body string) string {
	return "---\ntype: permanent\ncreated: 2026-01-01T00:00:00Z\n---\n\n" + body + "\n"
}
