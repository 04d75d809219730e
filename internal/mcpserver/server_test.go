package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/settings"
	"github.com/starford/ansuz/internal/storage"
)

// stubGen is a canned Generator. Responses are consumed in order; the last
// one repeats.
type stubGen struct {
	responses []string
	err       error
	calls     int
}

func (g *stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", nil
	}
	i := g.calls - 1
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	return g.responses[i], nil
}

const promotionJSON = `{
	"title": "Spacing beats cramming",
	"content": "Reviews spread over increasing intervals strengthen recall far more than massed repetition.",
	"keywords": ["memory", "learning"],
	"connections": ["Testing effect"]
}`

func testServer(t *testing.T, gen *stubGen) (*Server, storage.Provider) {
	t.Helper()

	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	dbFile, err := os.CreateTemp("", "ansuz-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	notes := noteservice.NewService(store, db)
	asst := assistant.NewService(store, gen, settings.NewStore("", settings.NewDefault()))

	srv := New(notes, asst, store)
	return srv, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we dispatch
	// to the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "capture_note":
		result, err = srv.captureNote(ctx, req)
	case "promote_note":
		result, err = srv.promoteNote(ctx, req)
	case "connect_note":
		result, err = srv.connectNote(ctx, req)
	case "suggest_topics":
		result, err = srv.suggestTopics(ctx, req)
	case "daily_review":
		result, err = srv.dailyReview(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "get_backlinks":
		result, err = srv.getBacklinks(ctx, req)
	case "get_note_contract":
		result, err = srv.getNoteContract(ctx, req)
	case "upload_asset":
		result, err = srv.uploadAsset(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadNote(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "test.md",
		"content": "# Test\nHello",
	})
	text := resultText(r)
	if text != "created: test.md" {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{
		"path": "test.md",
	})
	text = resultText(r)
	if text != "# Test\nHello" {
		t.Errorf("read result = %q", text)
	}
}

func TestListNotes(t *testing.T) {
	srv, store := testServer(t, &stubGen{})
	_ = store.Write("a.md", []byte("a"))
	_ = store.Write("b.md", []byte("b"))

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	text := resultText(r)
	if text == "" {
		t.Error("list returned empty")
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestGetBacklinks(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	_ = callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "a.md",
		"content": "links to [[b]]",
	})

	r := callTool(t, srv, "get_backlinks", map[string]interface{}{"path": "b"})
	text := resultText(r)
	if text != "a.md" {
		t.Errorf("backlinks = %q, want a.md", text)
	}
}

func TestGetBacklinksNone(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	r := callTool(t, srv, "get_backlinks", map[string]interface{}{"path": "lonely"})
	if got := resultText(r); got != "no backlinks found" {
		t.Errorf("backlinks = %q", got)
	}
}

func TestCaptureTool(t *testing.T) {
	srv, store := testServer(t, &stubGen{})

	r := callTool(t, srv, "capture_note", map[string]interface{}{
		"text": "spaced repetition beats cramming",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "captured: Fleeting Notes/Fleeting-") {
		t.Fatalf("capture result = %q", text)
	}

	notePath := strings.TrimPrefix(text, "captured: ")
	data, err := store.Read(notePath)
	if err != nil {
		t.Fatalf("read captured note: %v", err)
	}
	if !strings.Contains(string(data), "spaced repetition beats cramming") {
		t.Errorf("captured note missing text:\n%s", data)
	}
	if !strings.Contains(string(data), "processed: false") {
		t.Errorf("captured note missing processed flag:\n%s", data)
	}
}

func TestCaptureToolEmptyText(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	r := callTool(t, srv, "capture_note", map[string]interface{}{"text": "   "})
	if !r.IsError {
		t.Error("expected error for empty capture text")
	}
}

func TestPromoteTool(t *testing.T) {
	srv, store := testServer(t, &stubGen{responses: []string{promotionJSON}})

	fleeting := "---\ntype: fleeting\ncreated: 2026-02-14T12:00:00Z\nprocessed: false\n---\n\nspacing works\n"
	if err := store.Write("Fleeting Notes/idea.md", []byte(fleeting)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "promote_note", map[string]interface{}{
		"path": "Fleeting Notes/idea.md",
	})
	text := resultText(r)
	if !strings.Contains(text, `"permanentPath": "Permanent Notes/Spacing beats cramming.md"`) {
		t.Fatalf("promote result = %s", text)
	}

	if _, err := store.Read("Permanent Notes/Spacing beats cramming.md"); err != nil {
		t.Errorf("permanent note not written: %v", err)
	}
}

func TestPromoteToolNotFleeting(t *testing.T) {
	srv, store := testServer(t, &stubGen{})
	perm := "---\ntype: permanent\n---\n\ndone already\n"
	if err := store.Write("Permanent Notes/Done.md", []byte(perm)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "promote_note", map[string]interface{}{
		"path": "Permanent Notes/Done.md",
	})
	if !r.IsError {
		t.Error("expected error for non-fleeting source")
	}
}

func TestConnectTool(t *testing.T) {
	srv, store := testServer(t, &stubGen{responses: []string{"both develop the same argument"}})

	body := "---\ntype: permanent\n---\n\nalpha beta gamma delta\n"
	if err := store.Write("Permanent Notes/Active.md", []byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("Permanent Notes/Twin.md", []byte(body)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "connect_note", map[string]interface{}{
		"path": "Permanent Notes/Active.md",
	})
	text := resultText(r)
	if !strings.Contains(text, `"target": "Permanent Notes/Twin.md"`) {
		t.Fatalf("connect result = %s", text)
	}
	if !strings.Contains(text, "both develop the same argument") {
		t.Errorf("connect result missing explanation: %s", text)
	}
}

func TestConnectToolNoMatches(t *testing.T) {
	srv, store := testServer(t, &stubGen{})
	solo := "---\ntype: permanent\n---\n\nnothing like me\n"
	if err := store.Write("Permanent Notes/Solo.md", []byte(solo)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "connect_note", map[string]interface{}{
		"path": "Permanent Notes/Solo.md",
	})
	if got := resultText(r); got != "no connections above the threshold" {
		t.Errorf("connect result = %q", got)
	}
}

func TestSuggestTopicsTool(t *testing.T) {
	srv, store := testServer(t, &stubGen{responses: []string{
		`[{"topic": "Spaced repetition in practice", "noteCount": 2, "readiness": "ready", "angle": "from theory to habit"}]`,
	}})
	perm := "---\ntype: permanent\n---\n\nsome idea\n"
	if err := store.Write("Permanent Notes/A.md", []byte(perm)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "suggest_topics", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Spaced repetition in practice") {
		t.Fatalf("topics result = %s", text)
	}
}

func TestDailyReviewTool(t *testing.T) {
	srv, store := testServer(t, &stubGen{})
	perm := "---\ntype: permanent\n---\n\nlinks to [[Other]]\n"
	if err := store.Write("Permanent Notes/One.md", []byte(perm)); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "daily_review", map[string]interface{}{})
	var digest struct {
		Revisit []json.RawMessage `json:"revisit"`
		Orphans []json.RawMessage `json:"orphans"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &digest); err != nil {
		t.Fatalf("digest is not JSON: %v", err)
	}
	if len(digest.Revisit) != 1 {
		t.Errorf("revisit count = %d, want 1", len(digest.Revisit))
	}
	if len(digest.Orphans) != 1 {
		t.Errorf("orphan count = %d, want 1", len(digest.Orphans))
	}
}

func TestGetNoteContract(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	r := callTool(t, srv, "get_note_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "type: fleeting") {
		t.Error("contract missing note type documentation")
	}
}

func TestUploadAssetDataURI(t *testing.T) {
	srv, store := testServer(t, &stubGen{})

	// Base64 of the eight-byte PNG signature.
	r := callTool(t, srv, "upload_asset", map[string]interface{}{
		"url":      "data:image/png;base64,iVBORw0KGgo=",
		"filename": "pixel.png",
	})
	text := resultText(r)
	if r.IsError {
		t.Fatalf("upload failed: %s", text)
	}

	var out uploadResult
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if out.SavedPath != "/attachments/pixel.png" {
		t.Errorf("savedPath = %q", out.SavedPath)
	}
	if out.MarkdownImage != "![pixel.png](/attachments/pixel.png)" {
		t.Errorf("markdownImage = %q", out.MarkdownImage)
	}

	data, err := store.Read("attachments/pixel.png")
	if err != nil {
		t.Fatalf("attachment not stored: %v", err)
	}
	if len(data) != 8 {
		t.Errorf("stored %d bytes, want 8", len(data))
	}

	r = callTool(t, srv, "upload_asset", map[string]interface{}{
		"url":      "data:image/png;base64,iVBORw0KGgo=",
		"filename": "pixel.png",
	})
	if !r.IsError {
		t.Error("expected error for duplicate filename")
	}
}

func TestUploadAssetRejectsBadExtension(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})
	r := callTool(t, srv, "upload_asset", map[string]interface{}{
		"url":      "data:image/png;base64,iVBORw0KGgo=",
		"filename": "evil.exe",
	})
	if !r.IsError {
		t.Fatal("expected error for disallowed extension")
	}
	if !strings.Contains(resultText(r), "unsupported file extension") {
		t.Errorf("error = %q", resultText(r))
	}
}

func TestUploadAssetRejectsMismatchedContent(t *testing.T) {
	srv, _ := testServer(t, &stubGen{})

	// GIF header declared as PNG.
	r := callTool(t, srv, "upload_asset", map[string]interface{}{
		"url":      "data:image/png;base64,R0lGODlhAQABAA==",
		"filename": "fake.png",
	})
	if !r.IsError {
		t.Fatal("expected error for content/extension mismatch")
	}
}
