package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/settings"
	"github.com/starford/ansuz/internal/storage"
)

// Deps carries everything the router mounts.
type Deps struct {
	Notes     *noteservice.Service
	Assistant *assistant.Service
	Settings  *settings.Store
	Store     storage.Provider

	AuthEnabled bool
	AuthToken   string

	// Events, if non-nil, is mounted at GET /events inside the auth group.
	Events http.Handler
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(d Deps) chi.Router {
	h := NewHandler(d.Notes)
	wh := NewWorkflowHandler(d.Assistant)
	sh := NewSettingsHandler(d.Settings)
	ah := NewAttachmentHandler(d.Store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(d.AuthEnabled, d.AuthToken))

	// Notes CRUD.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/*", h.GetNote)
	r.Put("/notes/*", h.UpdateNote)
	r.Delete("/notes/*", h.DeleteNote)

	// Search and graph.
	r.Get("/search", h.Search)
	r.Get("/graph", h.Graph)

	// Assistant workflows.
	r.Post("/capture", wh.Capture)
	r.Post("/promote", wh.Promote)
	r.Post("/connect", wh.Connect)
	r.Post("/connect/apply", wh.ApplyConnection)
	r.Post("/structure", wh.Structure)
	r.Post("/topics", wh.SuggestTopics)
	r.Post("/topics/outline", wh.Outline)
	r.Post("/topics/scaffold", wh.ScaffoldProject)
	r.Get("/review/daily", wh.DailyReview)

	// Settings.
	r.Get("/settings", sh.GetSettings)
	r.Put("/settings", sh.UpdateSettings)

	// Attachments.
	r.Post("/attachments", ah.Upload)
	r.Get("/attachments/{filename}", ah.ServeFile)

	// SSE endpoint (protected by the same auth middleware).
	if d.Events != nil {
		r.Get("/events", d.Events.ServeHTTP)
	}

	return r
}
