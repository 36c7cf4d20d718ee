// Package imgcodec normalizes arbitrary raster images into the canonical
// transport encoding used by the compose pipeline: an opaque RGB JPEG,
// optionally base64-encoded for inline transport.
package imgcodec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
)

// MIMEJPEG is the MIME type of every encoder output.
const MIMEJPEG = "image/jpeg"

// maxInputSize caps how much of an upload is read before decoding.
// Base64 inflation adds ~33%, so 15MB raw stays under typical API limits.
const maxInputSize = 15 * 1024 * 1024

// DecodeError wraps a failure to interpret input bytes as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("imgcodec: decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ToJPEG decodes any raster format registered with image.Decode, flattens
// transparency onto a white background and re-encodes as JPEG. The pass is
// lossy, so repeated round-trips are not byte-identical.
func ToJPEG(r io.Reader, quality int) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("imgcodec: read input: %w", err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("imgcodec: input exceeds %d bytes", maxInputSize)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return encodeJPEG(flatten(img), quality)
}

// EncodeBase64 runs ToJPEG and base64-encodes the result.
func EncodeBase64(r io.Reader, quality int) (string, error) {
	data, err := ToJPEG(r, quality)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ReencodeBase64 decodes base64 image bytes of any raster format and returns
// them as a single fresh JPEG pass.
func ReencodeBase64(b64 string, quality int) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("imgcodec: decode base64: %w", err)
	}
	return ToJPEG(bytes.NewReader(raw), quality)
}

// Dimensions reports the pixel width and height of an encoded image.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, &DecodeError{Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

// flatten drops alpha by drawing the image over an opaque white canvas.
// JPEG has no alpha channel; without this, premultiplied pixels would
// darken wherever the source was transparent.
func flatten(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Over)
	return canvas
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imgcodec: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
