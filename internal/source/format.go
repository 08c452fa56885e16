// Package source reads chapters from local files: saved chapter pages and
// EPUB books.
package source

import (
	"path/filepath"
	"strings"
)

// Chapter is one chapter of a local source, still as HTML.
type Chapter struct {
	Index int // 1-based
	Title string
	HTML  []byte
}

// Book is the chapters of one local file.
type Book struct {
	Title    string
	Chapters []Chapter
}

// Format defines a local file format.
type Format interface {
	Name() string
	Extensions() []string
	Open(filename string) (*Book, error)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open reads filename with the format registered for its extension.
// Files with an unknown extension are read as a single HTML page.
func Open(filename string) (*Book, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Open(filename)
			}
		}
	}
	return (&HTMLFormat{}).Open(filename)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// titleFromFilename turns "black-tech_chapter-6.html" into "black tech chapter 6".
func titleFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}), " ")
}
