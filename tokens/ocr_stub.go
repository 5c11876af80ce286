//go:build !ocr

package tokens

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it; this
// requires Tesseract to be installed on the system.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// OCRSource is a stub span source that returns errors for all operations.
type OCRSource struct{}

// NewOCRSource returns an error indicating OCR support is not enabled.
func NewOCRSource() (*OCRSource, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub source. Safe to call on a nil source.
func (s *OCRSource) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (s *OCRSource) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// RecognizePage returns an error indicating OCR support is not enabled.
func (s *OCRSource) RecognizePage(page int, imageData []byte) ([]Span, error) {
	return nil, ErrOCRNotEnabled
}
