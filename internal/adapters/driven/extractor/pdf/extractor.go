// Package pdf extracts plain text from downloaded paper PDFs.
package pdf

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads PDF files from disk and returns their text content.
type Extractor struct{}

// New creates a PDF text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the PDF at path.
func (e *Extractor) Extract(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", path, err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read text from %s: %w", path, err)
	}
	return string(text), nil
}
