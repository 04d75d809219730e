// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Ansuz vault and assistant workflows for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/storage"
)

// Server wraps the MCP server with the Ansuz tools.
type Server struct {
	mcp   *server.MCPServer
	notes *noteservice.Service
	asst  *assistant.Service
	store storage.Provider
}

// New creates a new MCP server with all Ansuz tools registered.
func New(notes *noteservice.Service, asst *assistant.Service, store storage.Provider) *Server {
	s := &Server{notes: notes, asst: asst, store: store}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	// Assistant workflows.
	s.mcp.AddTool(mcp.NewTool("capture_note",
		mcp.WithDescription("Capture a fleeting thought. The text is stored verbatim in a "+
			"timestamped note in the fleeting folder, ready for later promotion."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The thought to capture, as written")),
	), s.captureNote)

	s.mcp.AddTool(mcp.NewTool("promote_note",
		mcp.WithDescription("Promote a fleeting note into a permanent note: the content is "+
			"rewritten, keyworded and linked, and the source is marked processed."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the fleeting note to promote")),
		mcp.WithString("elaboration", mcp.Description("Optional guidance for the rewrite")),
	), s.promoteNote)

	s.mcp.AddTool(mcp.NewTool("connect_note",
		mcp.WithDescription("Suggest connections between a note and the permanent notes, "+
			"scored by word overlap and explained in one line each."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the note to find connections for")),
	), s.connectNote)

	s.mcp.AddTool(mcp.NewTool("suggest_topics",
		mcp.WithDescription("Analyse the permanent notes and suggest writing topics with "+
			"readiness and a possible angle."),
	), s.suggestTopics)

	s.mcp.AddTool(mcp.NewTool("daily_review",
		mcp.WithDescription("Build the daily review digest: notes to revisit, orphan notes "+
			"with few links, and developing clusters."),
	), s.dailyReview)

	// Vault access.
	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through notes content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new Markdown note at the specified path. "+
			"Content MUST follow the canonical note format (line-based front-matter with a "+
			"type field, Markdown body with [[wikilinks]]). Read the contract first via "+
			"the get_note_contract tool or the ansuz://note-format resource. "+
			"For raw thoughts prefer capture_note, which handles the format for you."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new note (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the Ansuz note format contract")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical Ansuz note format contract. "+
			"Call this before creating notes to ensure correct structure."),
	), s.getNoteContract)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes or notes in a specific folder."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes that link to the specified note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the note to find backlinks for")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("upload_asset",
		mcp.WithDescription("Fetch an image or PDF from an http(s) URL or data URI and store "+
			"it in the vault's attachments folder. Returns a markdownImage snippet to paste "+
			"into a note body."),
		mcp.WithString("url", mcp.Required(), mcp.Description("http(s) URL or base64 data URI of the asset")),
		mcp.WithString("filename", mcp.Description("Optional filename; derived from the URL when empty")),
	), s.uploadAsset)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical Markdown note format that all notes follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) captureNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ref, err := s.asst.Capture(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("captured: %s", ref.Path)), nil
}

func (s *Server) promoteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elaboration := ""
	if v, eErr := req.RequireString("elaboration"); eErr == nil {
		elaboration = v
	}
	res, err := s.asst.Promote(ctx, path, elaboration)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) connectNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	suggestions, err := s.asst.Connect(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultText("no connections above the threshold"), nil
	}
	out, _ := json.MarshalIndent(suggestions, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) suggestTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topics, err := s.asst.SuggestTopics(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(topics, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) dailyReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	digest, err := s.asst.DailyReview(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(digest, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.notes.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.notes.CreateNote(ctx, path, []byte(content)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	metas, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bl, err := s.notes.Backlinks(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(bl, "\n")), nil
}
