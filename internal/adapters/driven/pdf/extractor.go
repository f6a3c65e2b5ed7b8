// Package pdf provides the PDF text-extraction adapter.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
)

// Ensure Extractor implements TextExtractor
var _ driven.TextExtractor = (*Extractor)(nil)

var pdfMagic = []byte("%PDF-")

// Extractor implements TextExtractor for PDF files.
type Extractor struct{}

// NewExtractor creates a new PDF Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of a PDF. The file content is checked, not
// just its name: a renamed .txt fails with ErrUnsupportedFileType before any
// parsing is attempted.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (text string, err error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", fmt.Errorf("%w: %s is not a PDF file", domain.ErrUnsupportedFileType, filename)
	}

	// The parser panics on some malformed cross-reference tables; a broken
	// upload must reject that file only, never the process.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, filename, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, filename, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, content); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, filename, err)
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return "", fmt.Errorf("%w: %s contains no extractable text", domain.ErrExtractionFailed, filename)
	}
	return extracted, nil
}
