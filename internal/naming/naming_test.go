package naming

import (
	"regexp"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "novelbin chapter",
			url:  "https://site.com/b/black-tech-internet-cafe-system/chapter-6",
			want: "Black_Tech_Internet_Cafe_System_Chapter_6.txt",
		},
		{
			name: "chapter without hyphen",
			url:  "https://site.com/b/my-novel/Chapter12",
			want: "My_Novel_Chapter_12.txt",
		},
		{
			name: "chapter number inside longer segment",
			url:  "https://site.com/b/my-novel/vol-1-chapter-103-the-return",
			want: "My_Novel_Chapter_103.txt",
		},
		{
			name: "chapter without digits",
			url:  "https://site.com/b/my-novel/chapterX",
			want: "My_Novel_Chapter.txt",
		},
		{
			name: "trailing slash",
			url:  "https://site.com/b/my-novel/chapter-7/",
			want: "My_Novel_Chapter_7.txt",
		},
		{
			name: "slug is final segment",
			url:  "https://site.com/b/my-novel",
			want: "My_Novel_Chapter.txt",
		},
		{
			name: "query string ignored",
			url:  "https://site.com/b/my-novel/chapter-2?ref=home",
			want: "My_Novel_Chapter_2.txt",
		},
		{
			name: "upper case slug",
			url:  "https://site.com/b/SHADOW-SLAVE/chapter-1",
			want: "Shadow_Slave_Chapter_1.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.url, fixedNow); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFilenameFallback(t *testing.T) {
	urls := []string{
		"https://site.com/no-b-segment/x",
		"https://site.com/b/",
		"https://site.com/book/x/chapter-1",
		"https://site.com",
		"http://[::1",
		"",
	}
	for _, u := range urls {
		if got := Filename(u, fixedNow); got != "novel_20240305_140709.txt" {
			t.Errorf("Filename(%q) = %q, want fallback", u, got)
		}
	}
}

func TestFilenameFallbackUsesCallTime(t *testing.T) {
	got := Filename("https://site.com/no-b-segment/x", time.Now())
	if !regexp.MustCompile(`^novel_\d{8}_\d{6}\.txt$`).MatchString(got) {
		t.Errorf("fallback %q does not match novel_<YYYYMMDD_HHMMSS>.txt", got)
	}
}

func TestChapterFilename(t *testing.T) {
	tests := []struct {
		title string
		n     int
		want  string
	}{
		{"The Wandering Inn", 3, "The_Wandering_Inn_Chapter_3.txt"},
		{"  spaced   out  ", 1, "Spaced_Out_Chapter_1.txt"},
		{`What? Why: "Now"`, 2, "What_Why_Now_Chapter_2.txt"},
		{"", 4, "novel_Chapter_4.txt"},
	}
	for _, tt := range tests {
		if got := ChapterFilename(tt.title, tt.n); got != tt.want {
			t.Errorf("ChapterFilename(%q, %d) = %q, want %q", tt.title, tt.n, got, tt.want)
		}
	}
}
