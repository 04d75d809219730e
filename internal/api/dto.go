package api

import (
	"time"

	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteservice"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// CaptureRequest is the request body for capturing a fleeting thought.
type CaptureRequest struct {
	Text string `json:"text" example:"An idea worth keeping" validate:"required"`
}

// PromoteRequest names the fleeting note to promote, with an optional
// elaboration steering the rewrite.
type PromoteRequest struct {
	Path        string `json:"path" example:"Fleeting Notes/Fleeting-1700000000000.md" validate:"required"`
	Elaboration string `json:"elaboration,omitempty" example:"focus on the learning angle"`
}

// ConnectRequest names the note to find connections for.
type ConnectRequest struct {
	Path string `json:"path" example:"Permanent Notes/Spacing.md" validate:"required"`
}

// ApplyConnectionRequest records an accepted connection suggestion.
type ApplyConnectionRequest struct {
	Path        string `json:"path" example:"Permanent Notes/Spacing.md" validate:"required"`
	Target      string `json:"target" example:"Permanent Notes/Recall.md" validate:"required"`
	Explanation string `json:"explanation,omitempty" example:"both cover retrieval practice"`
}

// StructureRequest asks for a structure note synthesised from a set of
// permanent notes.
type StructureRequest struct {
	Topic string   `json:"topic" example:"Learning techniques" validate:"required"`
	Paths []string `json:"paths" validate:"required"`
}

// TopicRequest names a writing topic. Angle is only used when scaffolding a
// project note.
type TopicRequest struct {
	Topic string `json:"topic" example:"Spaced repetition in practice" validate:"required"`
	Angle string `json:"angle,omitempty" example:"a practitioner's field guide"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// GraphNode is a node in the knowledge graph (aliased from the index layer).
type GraphNode = index.GraphNode

// GraphLink is an edge in the knowledge graph (aliased from the index layer).
type GraphLink = index.GraphLink

// GraphResponse wraps the knowledge graph.
type GraphResponse struct {
	Nodes []GraphNode `json:"nodes" validate:"required"`
	Links []GraphLink `json:"links" validate:"required"`
}

// ConnectionsResponse wraps connection suggestions for a note.
type ConnectionsResponse struct {
	Suggestions []models.ConnectionSuggestion `json:"suggestions" validate:"required"`
}

// TopicsResponse wraps writing-topic suggestions.
type TopicsResponse struct {
	Topics []models.TopicSuggestion `json:"topics" validate:"required"`
}

// OutlineResponse wraps a generated outline.
type OutlineResponse struct {
	Outline string `json:"outline" validate:"required"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/image.png" validate:"required"`
}

// NoteDetailDTO mirrors NoteDetail with explicit types for swag.
type NoteDetailDTO = NoteDetail

// NoteListItemDTO mirrors NoteListItem for swag.
type NoteListItemDTO struct {
	Path      string    `json:"path" example:"Permanent Notes/hello.md"`
	Title     string    `json:"title" example:"Hello"`
	Kind      string    `json:"kind" example:"permanent"`
	Checksum  string    `json:"checksum" example:"abc123..."`
	Tags      []string  `json:"tags" example:"tag1,tag2"`
	UpdatedAt time.Time `json:"updated_at"`
}
