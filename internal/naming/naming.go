// Package naming derives output file names for downloaded chapters.
package naming

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// novelSegment is the path segment that precedes the novel slug,
// as in https://novelbin.com/b/<slug>/chapter-6.
const novelSegment = "b"

const timestampLayout = "20060102_150405"

var chapterNumber = regexp.MustCompile(`(?i)chapter-?(\d+)`)

// Filename returns "<Novel_Name>_Chapter_<n>.txt" for URLs carrying a
// /b/<slug>/ segment, and "novel_<YYYYMMDD_HHMMSS>.txt" (stamped with now)
// for anything else.
func Filename(rawURL string, now time.Time) string {
	if name, ok := fromURL(rawURL); ok {
		return name
	}
	return Fallback(now)
}

// Fallback is the timestamped name used when a URL carries no novel slug.
func Fallback(now time.Time) string {
	return "novel_" + now.Format(timestampLayout) + ".txt"
}

func fromURL(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	slug := ""
	for i, seg := range segments {
		if seg == novelSegment && i+1 < len(segments) {
			slug = segments[i+1]
			break
		}
	}
	novel := NovelName(strings.ReplaceAll(slug, "-", " "))
	if novel == "" {
		return "", false
	}

	label := "Chapter"
	if m := chapterNumber.FindStringSubmatch(segments[len(segments)-1]); m != nil {
		label = "Chapter_" + m[1]
	}
	return novel + "_" + label + ".txt", true
}

// ChapterFilename names chapter n of a novel with a free-form title,
// e.g. ("The Wandering Inn", 3) -> "The_Wandering_Inn_Chapter_3.txt".
func ChapterFilename(title string, n int) string {
	novel := NovelName(title)
	if novel == "" {
		novel = "novel"
	}
	return fmt.Sprintf("%s_Chapter_%d.txt", novel, n)
}

// NovelName title-cases each word of s, drops characters that are not
// allowed in file names and joins the words with underscores.
func NovelName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			return -1
		}
		return r
	}, s)
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	// Title-case before joining: word breaking treats '_' as part of a word.
	titled := cases.Title(language.Und).String(strings.Join(words, " "))
	return strings.ReplaceAll(titled, " ", "_")
}
