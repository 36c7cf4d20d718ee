// Package gemini is a hand-rolled REST client for the Gemini generateContent
// endpoint, covering multimodal image generation and the follow-up fetch for
// file-reference results.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash-image-preview"
	defaultTimeout = 120 * time.Second

	// defaultAttempts bounds retries of transport-level failures. HTTP
	// status errors are surfaced immediately and never retried.
	defaultAttempts = 2

	snippetLimit = 1000
)

// Options configures a Client. The zero value of every field has a usable
// default.
type Options struct {
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Timeout     time.Duration
	MaxAttempts int
	Logger      zerolog.Logger
}

// Client issues generateContent calls. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	maxAttempts int
	log         zerolog.Logger
}

// NewClient builds a Client from Options.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	return &Client{
		httpClient:  client,
		baseURL:     base,
		model:       model,
		maxAttempts: attempts,
		log:         opts.Logger,
	}
}

// GenerateImage sends one user message holding the prompt text followed by
// the given inline images, and returns the decoded response. An empty apiKey
// short-circuits with ErrMissingAPIKey before any network activity.
func (c *Client) GenerateImage(ctx context.Context, apiKey, prompt string, images ...InlineData) (*GenerateResponse, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	parts := make([]Part, 0, len(images)+1)
	parts = append(parts, Part{Text: prompt})
	for i := range images {
		img := images[i]
		parts = append(parts, Part{InlineData: &img})
	}
	payload := generateRequest{
		Contents: []Content{{Role: "user", Parts: parts}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	raw, err := c.post(ctx, c.endpoint(), apiKey, body)
	if err != nil {
		return nil, err
	}

	var out GenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	out.Raw = raw
	return &out, nil
}

// FetchFile retrieves the bytes behind a file-reference part.
func (c *Client) FetchFile(ctx context.Context, uri string) ([]byte, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("gemini: file uri is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: build file request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: fetch file: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read file body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: data}
	}
	return data, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// post issues the request, retrying transport errors up to maxAttempts.
// A response with any status code, success or not, ends the loop.
func (c *Client) post(ctx context.Context, endpoint, apiKey string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gemini: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			c.log.Warn().Err(err).Int("attempt", attempt).Msg("gemini request failed")
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("snippet", snippet(data)).
			Msg("gemini response")

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Code: resp.StatusCode, Body: data}
		}
		return data, nil
	}
	return nil, fmt.Errorf("gemini: request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func snippet(data []byte) string {
	if len(data) > snippetLimit {
		return string(data[:snippetLimit])
	}
	return string(data)
}
