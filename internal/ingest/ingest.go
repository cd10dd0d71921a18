// Package ingest turns uploaded bid documents into plain text for prompting.
// PDF and DOCX get structural extraction; anything else is treated as UTF-8
// text.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"bidtab/internal/domain"
)

// Extract converts a single uploaded file into an IngestedDoc based on its
// extension.
func Extract(filename string, data []byte) (domain.IngestedDoc, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = ExtractPDF(data)
	case ".docx":
		text, err = ExtractDOCX(data)
	default:
		if !utf8.Valid(data) {
			return domain.IngestedDoc{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filename)
		}
		text = string(data)
	}
	if err != nil {
		return domain.IngestedDoc{}, fmt.Errorf("extract %s: %w", filename, err)
	}
	return domain.IngestedDoc{Filename: filename, Text: text}, nil
}
