package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/metcalfc/novdl/internal/fetch"
	"github.com/metcalfc/novdl/internal/state"
)

func TestRegisterFlags(t *testing.T) {
	fs := flag.NewFlagSet("novdl", flag.ContinueOnError)
	o := registerFlags(fs)
	if err := fs.Parse([]string{"-o", "/tmp/out", "-timeout", "5s", "-v", "https://x/b/y/chapter-1"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.outputDir != "/tmp/out" || o.timeout != 5*time.Second || !o.verbose {
		t.Errorf("options = %+v", o)
	}
	if fs.Arg(0) != "https://x/b/y/chapter-1" {
		t.Errorf("Arg(0) = %q", fs.Arg(0))
	}

	usage := fs.Lookup("file").Usage
	for _, want := range []string{"EPUB (.epub)", "HTML (.html, .htm, .xhtml)"} {
		if !strings.Contains(usage, want) {
			t.Errorf("-file usage %q missing %q", usage, want)
		}
	}
}

func TestNewDownloaderFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("NOVDL_TIMEOUT", "20s")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	dl, err := newDownloader(&options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newDownloader: %v", err)
	}
	client := dl.Fetcher.(*fetch.Client)
	if client.Timeout != 20*time.Second {
		t.Errorf("Timeout = %s, want env value 20s", client.Timeout)
	}

	out := filepath.Join(dir, "custom")
	dl, err = newDownloader(&options{outputDir: out, timeout: 3 * time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newDownloader: %v", err)
	}
	if dl.OutputDir != out {
		t.Errorf("OutputDir = %q, want %q", dl.OutputDir, out)
	}
	if got := dl.Fetcher.(*fetch.Client).Timeout; got != 3*time.Second {
		t.Errorf("Timeout = %s, want flag value 3s", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("info logger output = %q", buf.String())
	}

	buf.Reset()
	verbose := newLogger(&buf, true)
	verbose.Debug().Msg("debug line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Errorf("verbose logger dropped debug: %q", buf.String())
	}
}

func TestInitialURL(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	store, err := state.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if got := initialURL("", nil); got != defaultURL {
		t.Errorf("no store: %q", got)
	}
	if got := initialURL("", store); got != defaultURL {
		t.Errorf("empty store: %q", got)
	}
	store.SetLastURL("https://example.com/b/x/chapter-9")
	if got := initialURL("", store); got != "https://example.com/b/x/chapter-9" {
		t.Errorf("stored: %q", got)
	}
	if got := initialURL("https://arg", store); got != "https://arg" {
		t.Errorf("arg: %q", got)
	}
}
