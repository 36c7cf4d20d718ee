package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/afrozpasha123/Demo-Gradio/internal/imgcodec"
	"github.com/afrozpasha123/Demo-Gradio/internal/storage"
)

// ServeFile returns a previously generated image. Only files with the
// generated-output prefix are reachable; the store additionally rejects
// traversal in the key.
func (a *App) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || !strings.HasPrefix(name, storage.GeneratedPrefix) {
		a.error(w, http.StatusNotFound, "not_found", "unknown file")
		return
	}
	data, err := a.Files.Open(name)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unknown file")
		return
	}
	w.Header().Set("Content-Type", imgcodec.MIMEJPEG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
