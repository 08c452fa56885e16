package download

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metcalfc/novdl/internal/extract"
	"github.com/metcalfc/novdl/internal/fetch"
)

const (
	previewLines = 3
	previewWidth = 60
)

// StatusMessage renders err as the one-line status the UIs display.
func StatusMessage(err error) string {
	var netErr *fetch.NetworkError
	var extErr *extract.ExtractionError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyURL):
		return "Please enter a URL"
	case errors.As(err, &netErr):
		return "Network error: " + netErr.Err.Error()
	case errors.As(err, &extErr):
		return "Extraction error: " + extErr.Reason
	default:
		return "Error: " + err.Error()
	}
}

// Preview returns up to n non-empty lines, each cut to width runes with
// "..." appended when shortened.
func (r *Result) Preview(n, width int) []string {
	var out []string
	for _, line := range strings.Split(r.Text, "\n") {
		if len(out) == n {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if runes := []rune(line); len(runes) > width {
			line = string(runes[:width]) + "..."
		}
		out = append(out, line)
	}
	return out
}

// Summary is the success message: file, stats and a short preview.
func (r *Result) Summary() string {
	var b strings.Builder
	b.WriteString("Download successful!\n")
	fmt.Fprintf(&b, "Saved as: %s\n", r.Path)
	fmt.Fprintf(&b, "Stats: %d characters, %d words\n\n", r.Chars, r.Words)
	b.WriteString("Preview:\n")
	for _, line := range r.Preview(previewLines, previewWidth) {
		fmt.Fprintf(&b, "   %s\n", line)
	}
	if r.nonEmptyLines() > previewLines {
		b.WriteString("   ...\n")
	}
	return b.String()
}

func (r *Result) nonEmptyLines() int {
	n := 0
	for _, line := range strings.Split(r.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
