package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/starford/ansuz/internal/settings"
)

// SettingsHandler exposes the runtime settings document. The GET response
// carries the API key as stored: the document is the single source of truth,
// and a redacted read would wipe the key on the next round-trip PUT.
type SettingsHandler struct {
	store *settings.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings handles GET /api/settings.
//
//	@Summary		Read the active assistant settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	settings.Settings
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Current())
}

// UpdateSettings handles PUT /api/settings. Fields absent from the body keep
// their current values, so a client can change one knob without resending
// the API key.
//
//	@Summary		Update assistant settings
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		settings.Settings	true	"Settings to apply"
//	@Success		200		{object}	settings.Settings
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	next := h.store.Current()
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	updated, err := h.store.Update(func(s *settings.Settings) { *s = next })
	if err != nil {
		var verr validation.Errors
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("settings update failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
