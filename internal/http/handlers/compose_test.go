package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/afrozpasha123/Demo-Gradio/internal/imagegen"
	"github.com/afrozpasha123/Demo-Gradio/internal/storage"
)

type stubComposer struct {
	got    imagegen.ComposeRequest
	result *imagegen.ComposeResult
}

func (s *stubComposer) Compose(ctx context.Context, req imagegen.ComposeRequest) *imagegen.ComposeResult {
	s.got = req
	return s.result
}

func newTestApp(t *testing.T, composer Composer) *App {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return NewApp(composer, store, zerolog.Nop())
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(name, name+".png")
		if err != nil {
			t.Fatalf("create file %s: %v", name, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestComposeHandlerSuccess(t *testing.T) {
	composer := &stubComposer{result: &imagegen.ComposeResult{
		Status:      imagegen.StatusSuccess,
		Message:     "Success",
		FileName:    "generated_abc.jpeg",
		ImageBase64: "ZmFrZQ==",
		Metadata: &imagegen.Metadata{
			ModelVersion: "model-x",
			ResponseID:   "resp-1",
			MIMEType:     "image/jpeg",
			Source:       "inlineData",
			FinalImage:   "/files/generated_abc.jpeg",
		},
	}}
	app := newTestApp(t, composer)

	body, contentType := multipartBody(t,
		map[string]string{"api_key": "k", "prompt": "place it"},
		map[string][]byte{"influencer": []byte("img-a"), "product": []byte("img-b")},
	)
	req := httptest.NewRequest(http.MethodPost, "/v1/compose", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Compose(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK          bool               `json:"ok"`
		Status      string             `json:"status"`
		Message     string             `json:"message"`
		ImageURL    string             `json:"image_url"`
		ImageBase64 string             `json:"image_base64"`
		Metadata    *imagegen.Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Status != "success" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ImageURL != "/files/generated_abc.jpeg" {
		t.Fatalf("image_url = %q", resp.ImageURL)
	}
	if resp.Metadata == nil || resp.Metadata.Source != "inlineData" {
		t.Fatalf("metadata mismatch: %+v", resp.Metadata)
	}

	if composer.got.APIKey != "k" || composer.got.Prompt != "place it" {
		t.Fatalf("composer request mismatch: %+v", composer.got)
	}
	influencer, err := io.ReadAll(composer.got.Influencer)
	if err != nil || string(influencer) != "img-a" {
		t.Fatalf("influencer upload mismatch: %q %v", influencer, err)
	}
	product, err := io.ReadAll(composer.got.Product)
	if err != nil || string(product) != "img-b" {
		t.Fatalf("product upload mismatch: %q %v", product, err)
	}
}

func TestComposeHandlerPipelineFailureStays200(t *testing.T) {
	composer := &stubComposer{result: &imagegen.ComposeResult{
		Status:     imagegen.StatusAPIError,
		Message:    "API error 403",
		HTTPStatus: 403,
		Diagnostic: `{"error":"forbidden"}`,
	}}
	app := newTestApp(t, composer)

	body, contentType := multipartBody(t, nil,
		map[string][]byte{"influencer": []byte("a"), "product": []byte("b")})
	req := httptest.NewRequest(http.MethodPost, "/v1/compose", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Compose(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp composeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK || resp.Status != imagegen.StatusAPIError {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.HTTPStatus != 403 || resp.Diagnostic == "" {
		t.Fatalf("diagnostic fields missing: %+v", resp)
	}
}

func TestComposeHandlerMissingFile(t *testing.T) {
	app := newTestApp(t, &stubComposer{result: &imagegen.ComposeResult{Status: imagegen.StatusSuccess}})

	body, contentType := multipartBody(t, nil, map[string][]byte{"influencer": []byte("a")})
	req := httptest.NewRequest(http.MethodPost, "/v1/compose", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Compose(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestComposeHandlerRejectsNonMultipart(t *testing.T) {
	app := newTestApp(t, &stubComposer{result: &imagegen.ComposeResult{Status: imagegen.StatusSuccess}})

	req := httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewBufferString(`{"prompt":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Compose(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServeFile(t *testing.T) {
	app := newTestApp(t, &stubComposer{})
	key, err := app.Files.Write(context.Background(), "generated_ok.jpeg", []byte{0xFF, 0xD8, 0xFF})
	if err != nil {
		t.Fatalf("seed file: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/files/{name}", app.ServeFile)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/"+key, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %q", ct)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/unrelated.jpeg", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status for unprefixed name = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &stubComposer{})
	rec := httptest.NewRecorder()
	app.Health(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
