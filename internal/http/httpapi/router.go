package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/afrozpasha123/Demo-Gradio/internal/http/handlers"
	"github.com/afrozpasha123/Demo-Gradio/internal/infra"
	"github.com/afrozpasha123/Demo-Gradio/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, log infra.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale),
	)

	r.Get("/", app.Index)
	r.Get("/v1/healthz", app.Health)
	r.Get("/files/{name}", app.ServeFile)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Post("/v1/compose", app.Compose)
	})

	return r
}
