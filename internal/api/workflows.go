package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/assistant"
)

// WorkflowHandler exposes the assistant workflows over HTTP.
type WorkflowHandler struct {
	asst *assistant.Service
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(asst *assistant.Service) *WorkflowHandler {
	return &WorkflowHandler{asst: asst}
}

// workflowError maps assistant failures onto HTTP statuses. The wrapped
// message travels in the body verbatim so clients can surface it to the user.
func workflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrPrecondition):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrAlreadyExists),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrMissingAPIKey):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrTransport),
		errors.Is(err, apperr.ErrMalformedResponse):
		writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
	default:
		slog.Error("workflow failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Capture handles POST /api/capture.
//
//	@Summary		Capture a fleeting thought into the vault
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CaptureRequest	true	"Thought to capture"
//	@Success		201		{object}	models.NoteRef
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/capture [post]
func (h *WorkflowHandler) Capture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ref, err := h.asst.Capture(r.Context(), req.Text)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// Promote handles POST /api/promote.
//
//	@Summary		Promote a fleeting note into a permanent note
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PromoteRequest	true	"Fleeting note to promote"
//	@Success		200		{object}	models.PromoteResult
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/promote [post]
func (h *WorkflowHandler) Promote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.asst.Promote(r.Context(), req.Path, req.Elaboration)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Connect handles POST /api/connect.
//
//	@Summary		Suggest connections for a note
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ConnectRequest	true	"Note to find connections for"
//	@Success		200		{object}	ConnectionsResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/connect [post]
func (h *WorkflowHandler) Connect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	suggestions, err := h.asst.Connect(r.Context(), req.Path)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
	})
}

// ApplyConnection handles POST /api/connect/apply.
//
//	@Summary		Record an accepted connection in the note
//	@Tags			workflows
//	@Accept			json
//	@Param			body	body	ApplyConnectionRequest	true	"Connection to record"
//	@Success		204		"Connection recorded"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/connect/apply [post]
func (h *WorkflowHandler) ApplyConnection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ApplyConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.asst.ApplyConnection(r.Context(), req.Path, req.Target, req.Explanation); err != nil {
		workflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Structure handles POST /api/structure.
//
//	@Summary		Synthesise a structure note from permanent notes
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		StructureRequest	true	"Topic and source notes"
//	@Success		201		{object}	models.NoteRef
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/structure [post]
func (h *WorkflowHandler) Structure(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req StructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ref, err := h.asst.Structure(r.Context(), req.Topic, req.Paths)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// SuggestTopics handles POST /api/topics.
//
//	@Summary		Suggest writing topics from the permanent notes
//	@Tags			workflows
//	@Produce		json
//	@Success		200	{object}	TopicsResponse
//	@Failure		400	{object}	errResponse
//	@Failure		502	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/topics [post]
func (h *WorkflowHandler) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.asst.SuggestTopics(r.Context())
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"topics": topics,
	})
}

// Outline handles POST /api/topics/outline.
//
//	@Summary		Generate an outline for a writing topic
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TopicRequest	true	"Topic to outline"
//	@Success		200		{object}	OutlineResponse
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/topics/outline [post]
func (h *WorkflowHandler) Outline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req TopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	outline, err := h.asst.Outline(r.Context(), req.Topic)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outline": outline,
	})
}

// ScaffoldProject handles POST /api/topics/scaffold.
//
//	@Summary		Scaffold a writing project note for a topic
//	@Tags			workflows
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TopicRequest	true	"Topic and angle"
//	@Success		201		{object}	models.NoteRef
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/topics/scaffold [post]
func (h *WorkflowHandler) ScaffoldProject(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req TopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ref, err := h.asst.ScaffoldProject(r.Context(), req.Topic, req.Angle)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// DailyReview handles GET /api/review/daily.
//
//	@Summary		Build the daily review digest
//	@Tags			workflows
//	@Produce		json
//	@Success		200	{object}	models.ReviewDigest
//	@Security		BearerAuth
//	@Router			/review/daily [get]
func (h *WorkflowHandler) DailyReview(w http.ResponseWriter, r *http.Request) {
	digest, err := h.asst.DailyReview(r.Context())
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, digest)
}
