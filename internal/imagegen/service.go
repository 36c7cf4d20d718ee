// Package imagegen composes the influencer/product generation pipeline:
// normalize both uploads to JPEG, call the Gemini image model, resolve the
// returned image (inline or via file reference), persist it and report a
// uniform result.
package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/afrozpasha123/Demo-Gradio/internal/imgcodec"
	"github.com/afrozpasha123/Demo-Gradio/internal/providers/gemini"
	"github.com/afrozpasha123/Demo-Gradio/internal/storage"
)

// Status classifies the outcome of one compose call.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusMissingKey Status = "missing_api_key"
	StatusAPIError   Status = "api_error"
	StatusNoImage    Status = "no_image"
	StatusFailed     Status = "failed"
)

const unknownField = "unknown"

// ComposeRequest carries one user submission. APIKey may be empty when the
// service was constructed with a fallback key.
type ComposeRequest struct {
	APIKey     string
	Prompt     string
	Locale     string
	Influencer io.Reader
	Product    io.Reader
}

// Metadata describes a successfully generated image.
type Metadata struct {
	ModelVersion string `json:"modelVersion"`
	ResponseID   string `json:"responseId"`
	MIMEType     string `json:"mimeType"`
	Source       string `json:"source"`
	FinalImage   string `json:"finalImage"`
}

// ComposeResult is the uniform outcome of a compose call. Failures are data,
// not errors: every field past Status is optional and populated only where
// it applies.
type ComposeResult struct {
	Status      Status
	Message     string
	HTTPStatus  int
	FileName    string
	ImageBase64 string
	Metadata    *Metadata
	Diagnostic  string
}

// OK reports whether the pipeline produced an image.
func (r *ComposeResult) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// Generator abstracts the Gemini client for handler and service tests.
type Generator interface {
	GenerateImage(ctx context.Context, apiKey, prompt string, images ...gemini.InlineData) (*gemini.GenerateResponse, error)
	FetchFile(ctx context.Context, uri string) ([]byte, error)
}

// Service wires the codec, the Gemini client and the file store together.
// It holds no per-call state.
type Service struct {
	client      Generator
	store       *storage.FileStore
	quality     int
	fallbackKey string
	log         zerolog.Logger
}

// NewService builds a Service. fallbackKey is used when a request carries no
// key of its own; it may be empty.
func NewService(client Generator, store *storage.FileStore, quality int, fallbackKey string, log zerolog.Logger) *Service {
	return &Service{
		client:      client,
		store:       store,
		quality:     quality,
		fallbackKey: strings.TrimSpace(fallbackKey),
		log:         log,
	}
}

// Compose runs the full encode, invoke, resolve, persist pipeline for one
// submission. All failure modes come back as result statuses; Compose never
// panics through to the caller.
func (s *Service) Compose(ctx context.Context, req ComposeRequest) *ComposeResult {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = s.fallbackKey
	}
	if apiKey == "" {
		return &ComposeResult{
			Status:  StatusMissingKey,
			Message: message(req.Locale, StatusMissingKey),
		}
	}

	influencer, err := imgcodec.EncodeBase64(req.Influencer, s.quality)
	if err != nil {
		return s.failure(req.Locale, err)
	}
	product, err := imgcodec.EncodeBase64(req.Product, s.quality)
	if err != nil {
		return s.failure(req.Locale, err)
	}

	resp, err := s.client.GenerateImage(ctx, apiKey, req.Prompt,
		gemini.InlineData{MIMEType: imgcodec.MIMEJPEG, Data: influencer},
		gemini.InlineData{MIMEType: imgcodec.MIMEJPEG, Data: product},
	)
	if err != nil {
		return s.errorResult(req.Locale, err)
	}

	part, ok := resp.FirstImagePart()
	if !ok {
		return &ComposeResult{
			Status:     StatusNoImage,
			Message:    message(req.Locale, StatusNoImage),
			Diagnostic: prettyJSON(resp.Raw),
		}
	}

	imgB64, mimeType, source, err := s.resolveImage(ctx, part)
	if err != nil {
		return s.errorResult(req.Locale, err)
	}

	// One lossy pass: the bytes written to disk are the bytes returned.
	jpegBytes, err := imgcodec.ReencodeBase64(imgB64, s.quality)
	if err != nil {
		return s.failure(req.Locale, err)
	}
	fileName, err := s.store.SaveGenerated(ctx, jpegBytes)
	if err != nil {
		return s.failure(req.Locale, err)
	}

	meta := &Metadata{
		ModelVersion: orUnknown(resp.ModelVersion),
		ResponseID:   orUnknown(resp.ResponseID),
		MIMEType:     mimeType,
		Source:       string(source),
		FinalImage:   "/files/" + fileName,
	}
	s.log.Info().
		Str("file", fileName).
		Str("source", meta.Source).
		Str("model_version", meta.ModelVersion).
		Msg("image composed")

	return &ComposeResult{
		Status:      StatusSuccess,
		Message:     message(req.Locale, StatusSuccess),
		FileName:    fileName,
		ImageBase64: base64.StdEncoding.EncodeToString(jpegBytes),
		Metadata:    meta,
	}
}

// resolveImage extracts base64 image data from a response part. Inline
// payloads are used as-is; file references cost one extra GET.
func (s *Service) resolveImage(ctx context.Context, part gemini.Part) (string, string, gemini.ImageSource, error) {
	if part.InlineData != nil {
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = imgcodec.MIMEJPEG
		}
		return part.InlineData.Data, mime, gemini.SourceInline, nil
	}
	data, err := s.client.FetchFile(ctx, part.FileData.FileURI)
	if err != nil {
		return "", "", "", err
	}
	mime := part.FileData.MIMEType
	if mime == "" {
		mime = imgcodec.MIMEJPEG
	}
	return base64.StdEncoding.EncodeToString(data), mime, gemini.SourceFileRef, nil
}

// errorResult maps client errors onto the result taxonomy.
func (s *Service) errorResult(locale string, err error) *ComposeResult {
	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return &ComposeResult{
			Status:  StatusMissingKey,
			Message: message(locale, StatusMissingKey),
		}
	}
	var statusErr *gemini.StatusError
	if errors.As(err, &statusErr) {
		return &ComposeResult{
			Status:     StatusAPIError,
			Message:    messagef(locale, StatusAPIError, statusErr.Code),
			HTTPStatus: statusErr.Code,
			Diagnostic: statusErr.PrettyBody(),
		}
	}
	return s.failure(locale, err)
}

func (s *Service) failure(locale string, err error) *ComposeResult {
	s.log.Error().Err(err).Msg("compose pipeline failed")
	return &ComposeResult{
		Status:  StatusFailed,
		Message: messagef(locale, StatusFailed, err),
	}
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return unknownField
	}
	return v
}

func prettyJSON(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
