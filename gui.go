//go:build gui

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/metcalfc/novdl/internal/download"
	"github.com/metcalfc/novdl/internal/state"
)

func main() {
	opts := registerFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "novdl - Novel Chapter Downloader (desktop)\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  novdl [options] [url]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("novdl %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	log := newLogger(openLogFile(), opts.verbose)
	dl, err := newDownloader(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := state.NewStore()
	if err != nil {
		log.Warn().Err(err).Msg("settings unavailable")
	}

	a := app.New()
	w := a.NewWindow("novdl - Novel Downloader")

	title := widget.NewLabelWithStyle(appTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder(defaultURL)
	urlEntry.SetText(initialURL(flag.Arg(0), store))

	output := widget.NewLabel(welcomeMsg)
	output.Wrapping = fyne.TextWrapWord

	var downloadBtn *widget.Button
	downloadBtn = widget.NewButton("Download Chapter", func() {
		url := strings.TrimSpace(urlEntry.Text)
		if url == "" {
			output.SetText(download.StatusMessage(download.ErrEmptyURL))
			return
		}
		if store != nil {
			if err := store.SetLastURL(url); err != nil {
				log.Warn().Err(err).Msg("save settings")
			}
		}

		// One download at a time: the button stays disabled until it ends.
		downloadBtn.Disable()
		output.SetText("Connecting...")

		go func() {
			res, err := dl.Download(context.Background(), url)
			fyne.Do(func() {
				if err != nil {
					output.SetText(download.StatusMessage(err))
				} else {
					output.SetText(res.Summary())
				}
				downloadBtn.Enable()
			})
		}()
	})
	downloadBtn.Importance = widget.HighImportance

	urlEntry.OnSubmitted = func(string) {
		if !downloadBtn.Disabled() {
			downloadBtn.OnTapped()
		}
	}

	exitBtn := widget.NewButton("Exit", func() {
		a.Quit()
	})

	header := container.NewVBox(
		title,
		urlEntry,
		container.NewGridWithColumns(2, downloadBtn, exitBtn),
	)

	w.SetContent(container.NewBorder(header, nil, nil, nil, container.NewVScroll(output)))
	w.Resize(fyne.NewSize(640, 520))
	w.Canvas().Focus(urlEntry)
	w.ShowAndRun()
}
