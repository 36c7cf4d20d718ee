package gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network activity when no API key
// was supplied for the call.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// ErrNoImage signals a well-formed response without a usable image part.
var ErrNoImage = errors.New("gemini: no image part in response")

// StatusError carries a non-2xx HTTP status and the verbatim response body
// for diagnostic display. The client never retries these.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: http %d", e.Code)
}

// PrettyBody returns the response body indented as JSON when possible,
// otherwise the raw text.
func (e *StatusError) PrettyBody() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Body, "", "  "); err != nil {
		return string(e.Body)
	}
	return buf.String()
}
