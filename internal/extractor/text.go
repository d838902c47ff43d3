package extractor

import (
	"fmt"
	"os"
	"strings"
)

// PlainTextSource reads text that was already extracted from a PDF, e.g. by
// pdftotext. Pages are separated by form feeds.
type PlainTextSource struct{}

func (PlainTextSource) Extract(path string) (*Document, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	// pdftotext ends the last page with a form feed too
	text = strings.TrimSuffix(text, "\f")

	doc := &Document{Path: path}
	for i, page := range strings.Split(text, "\f") {
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Text: strings.Trim(page, "\n")})
	}
	return doc, nil
}
