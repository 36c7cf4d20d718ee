package gemini

// Wire types for the generateContent REST endpoint. A response part is a
// tagged union: exactly one of Text, InlineData or FileData is set, and
// consumers branch on which pointer is non-nil instead of probing raw JSON.

// Content is a single role-tagged message in a generation exchange.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is one ordered element of a content block.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
	FileData   *FileData   `json:"fileData,omitempty"`
}

// InlineData carries image bytes directly, base64-encoded.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// FileData references an image by URI; the bytes must be fetched separately.
type FileData struct {
	FileURI  string `json:"fileUri"`
	MIMEType string `json:"mimeType,omitempty"`
}

// ImageSource records which part variant supplied a generated image.
type ImageSource string

const (
	SourceInline  ImageSource = "inlineData"
	SourceFileRef ImageSource = "fileData"
)

type generateRequest struct {
	Contents []Content `json:"contents"`
}

// GenerateResponse is the decoded generateContent reply.
type GenerateResponse struct {
	Candidates   []Candidate `json:"candidates"`
	ModelVersion string      `json:"modelVersion,omitempty"`
	ResponseID   string      `json:"responseId,omitempty"`
	Raw          []byte      `json:"-"`
}

// Candidate is one alternative generation returned by the model.
type Candidate struct {
	Content Content `json:"content"`
}

// FirstImagePart walks the first candidate's parts in order and returns the
// first one carrying an inline payload or a file reference. Later candidates
// are never consulted.
func (r *GenerateResponse) FirstImagePart() (Part, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return Part{}, false
	}
	for _, part := range r.Candidates[0].Content.Parts {
		if part.InlineData != nil || part.FileData != nil {
			return part, true
		}
	}
	return Part{}, false
}
