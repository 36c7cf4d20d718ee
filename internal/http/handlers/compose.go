package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/afrozpasha123/Demo-Gradio/internal/imagegen"
	"github.com/afrozpasha123/Demo-Gradio/internal/middleware"
)

// maxUploadBytes bounds the whole multipart submission (two images plus
// text fields).
const maxUploadBytes = 32 << 20

type composeResponse struct {
	OK          bool               `json:"ok"`
	Status      imagegen.Status    `json:"status"`
	Message     string             `json:"message"`
	HTTPStatus  int                `json:"http_status,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	ImageBase64 string             `json:"image_base64,omitempty"`
	Metadata    *imagegen.Metadata `json:"metadata,omitempty"`
	Diagnostic  string             `json:"diagnostic,omitempty"`
}

// Compose accepts the UI form submission and runs the generation pipeline.
// Pipeline-level failures still respond 200: they are results, carried in
// the body; only a malformed submission is a client error.
func (a *App) Compose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	influencer, err := formFile(r, "influencer")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "influencer image is required")
		return
	}
	defer func() {
		_ = influencer.Close()
	}()

	product, err := formFile(r, "product")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "product image is required")
		return
	}
	defer func() {
		_ = product.Close()
	}()

	result := a.Composer.Compose(r.Context(), imagegen.ComposeRequest{
		APIKey:     r.FormValue("api_key"),
		Prompt:     r.FormValue("prompt"),
		Locale:     middleware.LocaleFromContext(r.Context()),
		Influencer: influencer,
		Product:    product,
	})

	resp := composeResponse{
		OK:          result.OK(),
		Status:      result.Status,
		Message:     result.Message,
		HTTPStatus:  result.HTTPStatus,
		ImageBase64: result.ImageBase64,
		Metadata:    result.Metadata,
		Diagnostic:  result.Diagnostic,
	}
	if result.FileName != "" {
		resp.ImageURL = "/files/" + result.FileName
	}
	a.json(w, http.StatusOK, resp)
}

func formFile(r *http.Request, field string) (multipart.File, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	return f, nil
}
