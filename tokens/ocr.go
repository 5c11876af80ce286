//go:build ocr

package tokens

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// OCRSource produces page-attributed spans by running Tesseract over page
// images, for documents whose alternate rendering is a scan. Requires
// Tesseract to be installed and the "ocr" build tag.
//
// On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type OCRSource struct {
	client *gosseract.Client
}

// NewOCRSource creates an OCR span source. Close it when no longer needed
// to release Tesseract resources.
func NewOCRSource() (*OCRSource, error) {
	return &OCRSource{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (s *OCRSource) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g. "eng+fra").
func (s *OCRSource) SetLanguage(lang string) error {
	return s.client.SetLanguage(lang)
}

// RecognizePage runs OCR on one page image (PNG, TIFF, JPEG, etc.) and
// returns its spans, one per recognized non-blank line, attributed to the
// given 1-based page.
func (s *OCRSource) RecognizePage(page int, imageData []byte) ([]Span, error) {
	if err := s.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := s.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	var spans []Span
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		spans = append(spans, Span{Page: page, Text: line})
	}
	return spans, nil
}
