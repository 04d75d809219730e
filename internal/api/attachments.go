package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ansuz/internal/storage"
)

const (
	attachDir      = "attachments"
	maxUploadBytes = 50 << 20 // 50 MB
)

// AttachmentHandler accepts and serves binary vault assets (pasted images
// and the like). Files live under the vault's attachments folder and pass
// through the storage provider, so its traversal checks and atomic writes
// apply here too.
type AttachmentHandler struct {
	store storage.Provider
}

// NewAttachmentHandler creates a handler backed by the vault store.
func NewAttachmentHandler(store storage.Provider) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the vault-relative path under attachments/.
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := path.Clean(name)
	if cleaned != path.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return path.Join(attachDir, cleaned), nil
}

// ServeFile handles GET /attachments/{filename}.
func (h *AttachmentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	rel, err := safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := h.store.Read(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to read attachment", http.StatusInternalServerError)
		return
	}
	// ServeContent picks the content type from the extension and handles
	// range requests; the zero modtime just skips Last-Modified.
	http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
}

// Upload handles POST /api/attachments (multipart/form-data, field "file").
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	rel, err := safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}
	if err := h.store.Write(rel, data); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store attachment"))
		return
	}

	writeJSON(w, http.StatusCreated, AttachmentUploadResponse{
		Filename: header.Filename,
		Size:     int64(len(data)),
		URL:      "/attachments/" + header.Filename,
	})
}
