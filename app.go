package main

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/metcalfc/novdl/internal/config"
	"github.com/metcalfc/novdl/internal/download"
	"github.com/metcalfc/novdl/internal/fetch"
	"github.com/metcalfc/novdl/internal/source"
	"github.com/metcalfc/novdl/internal/state"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	appTitle   = "NOVEL DOWNLOADER"
	defaultURL = "https://novelbin.com/b/black-tech-internet-cafe-system/chapter-6"
	welcomeMsg = "Welcome to Novel Downloader!\n\nEnter a URL and click Download."
)

// options are the flags shared by the terminal and desktop builds. Zero
// values defer to the config file and environment.
type options struct {
	outputDir   string
	timeout     time.Duration
	configFile  string
	file        string
	verbose     bool
	showVersion bool
}

func registerFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.outputDir, "o", "", "Directory to save chapters in (default ~/Downloads/Novels)")
	fs.DurationVar(&o.timeout, "timeout", 0, "HTTP timeout (default 30s)")
	fs.StringVar(&o.configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&o.file, "file", "", "Clean a saved page or book instead of downloading: "+
		strings.Join(source.SupportedFormats(), ", "))
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&o.showVersion, "version", false, "Show version information")
	return o
}

// newLogger writes human-readable logs to w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if w != os.Stderr {
		out.NoColor = true
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// openLogFile returns the log file the interactive UIs write to, or
// io.Discard when it cannot be opened.
func openLogFile() io.Writer {
	if err := os.MkdirAll(state.Dir(), 0755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(state.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return io.Discard
	}
	return f
}

// newDownloader builds a Downloader from config, with flags taking precedence.
func newDownloader(o *options, log zerolog.Logger) (*download.Downloader, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.outputDir != "" {
		cfg.OutputDir = config.ExpandHome(o.outputDir)
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	log.Debug().
		Str("output_dir", cfg.OutputDir).
		Dur("timeout", cfg.Timeout).
		Str("user_agent", cfg.UserAgent).
		Msg("config loaded")

	return &download.Downloader{
		Fetcher:   fetch.NewClient(cfg.UserAgent, cfg.Timeout, log),
		OutputDir: cfg.OutputDir,
		Log:       log,
	}, nil
}

// initialURL prefills the URL field: the command line argument, then the
// last submitted URL, then the example chapter.
func initialURL(arg string, store *state.Store) string {
	if arg != "" {
		return arg
	}
	if store != nil {
		if u := store.LastURL(); u != "" {
			return u
		}
	}
	return defaultURL
}
