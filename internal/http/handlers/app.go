package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/afrozpasha123/Demo-Gradio/internal/imagegen"
	"github.com/afrozpasha123/Demo-Gradio/internal/infra"
	"github.com/afrozpasha123/Demo-Gradio/internal/storage"
)

// Composer is the pipeline seam the handlers depend on.
type Composer interface {
	Compose(ctx context.Context, req imagegen.ComposeRequest) *imagegen.ComposeResult
}

// App is the handler container holding request-scoped dependencies.
type App struct {
	Composer Composer
	Files    *storage.FileStore
	Log      infra.Logger
}

func NewApp(composer Composer, files *storage.FileStore, log infra.Logger) *App {
	return &App{Composer: composer, Files: files, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]string{"error": code, "message": msg})
}
