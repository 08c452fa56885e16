package download

import (
	"context"
	"errors"
	"fmt"

	"github.com/metcalfc/novdl/internal/extract"
	"github.com/metcalfc/novdl/internal/naming"
	"github.com/metcalfc/novdl/internal/source"
)

// ImportFile runs every chapter of a local page or EPUB through the same
// extract and clean steps as Download and saves each one as
// "<Title>_Chapter_<n>.txt". Chapters with no text are skipped.
func (d *Downloader) ImportFile(ctx context.Context, filename string) ([]*Result, error) {
	book, err := source.Open(filename)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, ch := range book.Chapters {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		doc, err := extract.FromHTML(ch.HTML, "")
		if err != nil {
			d.Log.Warn().Err(err).Int("chapter", ch.Index).Str("title", ch.Title).Msg("skipping chapter")
			continue
		}
		res, err := d.save(filename, doc.Title, doc.Text, naming.ChapterFilename(book.Title, ch.Index))
		if err != nil {
			var extErr *extract.ExtractionError
			if errors.As(err, &extErr) {
				d.Log.Warn().Err(err).Int("chapter", ch.Index).Msg("skipping chapter")
				continue
			}
			return results, err
		}
		res.Title = ch.Title
		results = append(results, res)
	}

	if len(results) == 0 {
		return nil, &extract.ExtractionError{Reason: fmt.Sprintf("no chapter text in %s", filename)}
	}
	d.Log.Info().Str("file", filename).Int("chapters", len(results)).Msg("import finished")
	return results, nil
}
