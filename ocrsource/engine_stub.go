//go:build !ocr

// Package ocrsource adapts scanned plan pages, which have no text layer,
// into the pipeline's page-source contract by running Tesseract OCR over
// page rasters and parsing the positioned hOCR output.
//
// This is the stub build used when the "ocr" build tag is not set; the
// engine constructor returns ErrNotEnabled. To enable OCR, install
// Tesseract and rebuild with:
//
//	go build -tags ocr
package ocrsource

import "errors"

// ErrNotEnabled is returned when OCR is requested but support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine is the stub OCR engine; every operation fails with ErrNotEnabled.
type Engine struct{}

// NewEngine returns ErrNotEnabled in the stub build.
func NewEngine() (*Engine, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op, safe on a nil engine.
func (e *Engine) Close() error { return nil }

// SetLanguage returns ErrNotEnabled in the stub build.
func (e *Engine) SetLanguage(lang string) error { return ErrNotEnabled }

// HOCR returns ErrNotEnabled in the stub build.
func (e *Engine) HOCR(imageData []byte) (string, error) { return "", ErrNotEnabled }
