package source

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat reads an EPUB book, one chapter per spine item.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// Open reads the spine in order. Items that cannot be read are skipped.
func (f *EPUBFormat) Open(filename string) (*Book, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	pkg := rc.Rootfiles[0]

	title := strings.TrimSpace(pkg.Metadata.Title)
	if title == "" {
		title = titleFromFilename(filename)
	}
	book := &Book{Title: title}

	titles := tocTitles(filename, pkg)
	for _, ref := range pkg.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		n := len(book.Chapters) + 1
		chTitle := fmt.Sprintf("Section %d", n)
		if t, ok := titles[ref.Item.HREF]; ok {
			chTitle = t
		} else if t, ok := titles[path.Base(ref.Item.HREF)]; ok {
			chTitle = t
		}
		book.Chapters = append(book.Chapters, Chapter{Index: n, Title: chTitle, HTML: data})
	}
	return book, nil
}

// tocTitles maps spine hrefs (full, fragment-free and base name) to NCX
// labels. A book without an NCX yields an empty map.
func tocTitles(filename string, pkg *epub.Rootfile) map[string]string {
	result := make(map[string]string)

	data, err := readNCX(filename, pkg)
	if err != nil {
		return result
	}
	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return result
	}

	add := func(key, title string) {
		if _, exists := result[key]; !exists {
			result[key] = title
		}
	}
	var walk func(points []navPoint)
	walk = func(points []navPoint) {
		for _, np := range points {
			href := np.Content.Src
			title := strings.TrimSpace(np.Label.Text)
			if i := strings.Index(href, "#"); i != -1 {
				href = href[:i]
			}
			add(href, title)
			add(path.Base(href), title)
			walk(np.Children)
		}
	}
	walk(toc.NavMap.NavPoints)
	return result
}

func readNCX(filename string, pkg *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range pkg.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
