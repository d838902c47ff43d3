// Package extractor turns input documents into page-ordered plain text.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingInput is returned when an input document does not exist.
var ErrMissingInput = errors.New("input file not found")

// Page is the plain text of one page. Pages without extractable text have
// an empty Text.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Lines splits the page text into lines. An empty page has none.
func (p Page) Lines() []string {
	if p.Text == "" {
		return nil
	}
	return strings.Split(p.Text, "\n")
}

// Document is the extracted text of one input file.
type Document struct {
	Path  string
	Pages []Page
}

// Lines returns every line of the document in page order.
func (d *Document) Lines() []string {
	var lines []string
	for _, p := range d.Pages {
		lines = append(lines, p.Lines()...)
	}
	return lines
}

// TextSource extracts the text of a document at a path.
type TextSource interface {
	Extract(path string) (*Document, error)
}

// checkExists maps a missing path to ErrMissingInput.
func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return nil
}

// AutoSource reads .txt files as pre-extracted text and everything else as
// PDF.
type AutoSource struct {
	PDF  TextSource
	Text TextSource
}

// NewAutoSource returns an AutoSource with the default readers.
func NewAutoSource() *AutoSource {
	return &AutoSource{PDF: &PDFSource{}, Text: &PlainTextSource{}}
}

func (a *AutoSource) Extract(path string) (*Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return a.Text.Extract(path)
	}
	return a.PDF.Extract(path)
}
