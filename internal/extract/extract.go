// Package extract pulls chapter text out of a novel page.
package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// ContentSelectors identify the chapter container, highest priority first.
var ContentSelectors = []string{"#chr-content", ".chr-content", "#chaptercontent"}

// removedTags never hold chapter text.
const removedTags = "script, style, nav, footer, header, aside"

// ExtractionError reports a page with nothing to extract.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string { return "extract: " + e.Reason }

// Document is the extracted page content.
type Document struct {
	Title string
	Text  string
	// Root is the selector that matched, or "body" for the fallback.
	Root string
}

// FromHTML parses body, decoding it according to contentType and any
// <meta charset>, and returns the chapter text one text node per line.
func FromHTML(body []byte, contentType string) (Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		r = bytes.NewReader(body)
	}

	node, err := html.Parse(r)
	if err != nil {
		return Document{}, &ExtractionError{Reason: "parse html: " + err.Error()}
	}
	return FromNode(node)
}

// FromNode extracts from an already parsed tree. The tree is modified:
// boilerplate elements are detached from it.
func FromNode(node *html.Node) (Document, error) {
	doc := goquery.NewDocumentFromNode(node)
	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(removedTags).Remove()

	root, name := contentRoot(doc)
	if root == nil {
		return Document{Title: title}, &ExtractionError{Reason: "no chapter container and no body"}
	}

	text := joinText(root.Get(0))
	if text == "" {
		return Document{Title: title, Root: name}, &ExtractionError{Reason: "no text in " + name}
	}
	return Document{Title: title, Text: text, Root: name}, nil
}

func contentRoot(doc *goquery.Document) (*goquery.Selection, string) {
	for _, sel := range ContentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s, sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body, "body"
	}
	return nil, ""
}

// joinText trims every descendant text node and joins the non-empty ones
// with newlines.
func joinText(n *html.Node) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(lines, "\n")
}
