//go:build !gui

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/novdl/internal/download"
	"github.com/metcalfc/novdl/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)
)

type model struct {
	dl       *download.Downloader
	store    *state.Store
	input    textinput.Model
	spinner  spinner.Model
	busy     bool
	status   string
	failed   bool
	saved    bool
	quitting bool
}

type downloadDoneMsg struct {
	res *download.Result
	err error
}

func newModel(dl *download.Downloader, store *state.Store, url string) model {
	ti := textinput.New()
	ti.Placeholder = defaultURL
	ti.Prompt = "URL: "
	ti.SetValue(url)
	ti.Focus()
	ti.Width = 76

	return model{
		dl:      dl,
		store:   store,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		status:  welcomeMsg,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.busy {
				return m, nil
			}
			url := strings.TrimSpace(m.input.Value())
			if url == "" {
				m.status = download.StatusMessage(download.ErrEmptyURL)
				m.failed, m.saved = true, false
				return m, nil
			}
			if m.store != nil {
				if err := m.store.SetLastURL(url); err != nil {
					m.dl.Log.Warn().Err(err).Msg("save settings")
				}
			}
			m.busy = true
			m.failed, m.saved = false, false
			m.status = "Connecting..."
			return m, tea.Batch(m.spinner.Tick, m.download(url))
		}

	case downloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = download.StatusMessage(msg.err)
			m.failed = true
			return m, nil
		}
		m.status = msg.res.Summary()
		m.saved = true
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		if w := msg.Width - len(m.input.Prompt) - 4; w > 10 {
			m.input.Width = w
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) download(url string) tea.Cmd {
	dl := m.dl
	return func() tea.Msg {
		res, err := dl.Download(context.Background(), url)
		return downloadDoneMsg{res: res, err: err}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(appTitle))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(controlsStyle.Render("ENTER: download chapter  ESC: exit"))
	sb.WriteString("\n\n")

	switch {
	case m.busy:
		sb.WriteString(statusStyle.Render(m.spinner.View() + " " + m.status))
	case m.failed:
		sb.WriteString(errorStyle.Render(m.status))
	case m.saved:
		sb.WriteString(successStyle.Render(m.status))
	default:
		sb.WriteString(statusStyle.Render(m.status))
	}
	sb.WriteString("\n")
	return sb.String()
}

func main() {
	opts := registerFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "novdl - Novel Chapter Downloader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  novdl [options] [url]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  novdl                                   Interactive screen\n")
		fmt.Fprintf(os.Stderr, "  novdl novelbin.com/b/some-novel/chapter-6\n")
		fmt.Fprintf(os.Stderr, "                                          Save one chapter\n")
		fmt.Fprintf(os.Stderr, "  novdl -o ~/novels URL                   Save into ~/novels\n")
		fmt.Fprintf(os.Stderr, "  novdl -file book.epub                   Clean every chapter of a book\n")
	}
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("novdl %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: one URL at a time.")
		fmt.Fprintln(os.Stderr, "Try: novdl -h")
		os.Exit(1)
	}

	interactive := flag.NArg() == 0 && opts.file == ""
	var logOut io.Writer = os.Stderr
	if interactive {
		logOut = openLogFile()
	}
	log := newLogger(logOut, opts.verbose)

	dl, err := newDownloader(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !interactive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		code := runOnce(ctx, dl, opts.file, flag.Arg(0))
		stop()
		os.Exit(code)
	}

	store, err := state.NewStore()
	if err != nil {
		log.Warn().Err(err).Msg("settings unavailable")
	}

	p := tea.NewProgram(newModel(dl, store, initialURL("", store)))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runOnce downloads url, or imports file when set, and returns the exit code.
func runOnce(ctx context.Context, dl *download.Downloader, file, url string) int {
	if file != "" {
		results, err := dl.ImportFile(ctx, file)
		if err != nil {
			fmt.Fprintln(os.Stderr, download.StatusMessage(err))
			return 1
		}
		for _, res := range results {
			fmt.Printf("%s (%d words)\n", res.Path, res.Words)
		}
		return 0
	}

	res, err := dl.Download(ctx, url)
	if err != nil {
		fmt.Fprintln(os.Stderr, download.StatusMessage(err))
		return 1
	}
	fmt.Print(res.Summary())
	return 0
}
