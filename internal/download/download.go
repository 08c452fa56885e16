// Package download turns a chapter URL into a cleaned text file.
package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/metcalfc/novdl/internal/clean"
	"github.com/metcalfc/novdl/internal/extract"
	"github.com/metcalfc/novdl/internal/fetch"
	"github.com/metcalfc/novdl/internal/naming"
)

// ErrEmptyURL is returned when no URL was entered.
var ErrEmptyURL = errors.New("empty URL")

// Fetcher retrieves a page body and its Content-Type.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Downloader saves one chapter per call.
type Downloader struct {
	Fetcher   Fetcher
	OutputDir string
	Log       zerolog.Logger
	// Now stamps fallback file names. Defaults to time.Now.
	Now func() time.Time
}

// Result describes a saved chapter.
type Result struct {
	URL      string
	Title    string
	Filename string
	Path     string
	Text     string
	Chars    int
	Words    int
}

func (d *Downloader) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Download fetches rawURL, extracts and cleans the chapter and writes it to
// OutputDir. Nothing is written when any step fails.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*Result, error) {
	url := fetch.NormalizeURL(rawURL)
	if url == "" {
		return nil, ErrEmptyURL
	}

	body, contentType, err := d.Fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := extract.FromHTML(body, contentType)
	if err != nil {
		return nil, err
	}
	d.Log.Debug().Str("url", url).Str("root", doc.Root).Int("raw_bytes", len(doc.Text)).Msg("extracted")

	res, err := d.save(url, doc.Title, doc.Text, naming.Filename(url, d.now()))
	if err != nil {
		return nil, err
	}
	d.Log.Info().Str("url", url).Str("path", res.Path).Int("words", res.Words).Msg("chapter saved")
	return res, nil
}

func (d *Downloader) save(url, title, text, filename string) (*Result, error) {
	text = clean.Clean(text)
	if text == "" {
		return nil, &extract.ExtractionError{Reason: "nothing left after cleaning"}
	}

	path := filepath.Join(d.OutputDir, filename)
	if err := writeFile(path, []byte(text+"\n")); err != nil {
		return nil, fmt.Errorf("save %s: %w", filename, err)
	}
	return &Result{
		URL:      url,
		Title:    title,
		Filename: filename,
		Path:     path,
		Text:     text,
		Chars:    utf8.RuneCountInString(text),
		Words:    len(strings.Fields(text)),
	}, nil
}
