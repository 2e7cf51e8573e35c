//go:build ocr

// Package ocrsource adapts scanned plan pages, which have no text layer,
// into the pipeline's page-source contract by running Tesseract OCR over
// page rasters and parsing the positioned hOCR output.
//
// This package wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system, plus the "ocr" build tag:
//
//	go build -tags ocr
//
// On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocrsource

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine wraps a Tesseract client for positioned word recognition.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine. Close it when no longer needed to
// release Tesseract resources.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	// Sparse segmentation suits construction plans: text is scattered
	// callouts and schedule blocks, not flowing paragraphs.
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting segmentation mode: %w", err)
	}
	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition language(s), "+"-separated for
// multiple (e.g. "eng+fra"). Default is "eng".
func (e *Engine) SetLanguage(lang string) error {
	return e.client.SetLanguage(lang)
}

// HOCR recognizes an image (PNG, TIFF, JPEG) and returns the hOCR
// markup with per-word bounding boxes.
func (e *Engine) HOCR(imageData []byte) (string, error) {
	if err := e.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	hocr, err := e.client.HOCRText()
	if err != nil {
		return "", fmt.Errorf("recognizing image: %w", err)
	}
	return hocr, nil
}
