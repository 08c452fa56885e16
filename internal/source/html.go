package source

import (
	"fmt"
	"os"
)

// HTMLFormat reads a saved chapter page as a one-chapter book.
type HTMLFormat struct{}

func init() {
	Register(&HTMLFormat{})
}

func (f *HTMLFormat) Name() string         { return "HTML" }
func (f *HTMLFormat) Extensions() []string { return []string{".html", ".htm", ".xhtml"} }

func (f *HTMLFormat) Open(filename string) (*Book, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	title := titleFromFilename(filename)
	return &Book{
		Title:    title,
		Chapters: []Chapter{{Index: 1, Title: title, HTML: data}},
	}, nil
}
