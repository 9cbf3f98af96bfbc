package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/handiism/yt2mp3/internal/config"
	"github.com/handiism/yt2mp3/internal/http"
	ioutils "github.com/handiism/yt2mp3/internal/io"
	"github.com/handiism/yt2mp3/internal/metadata"
	"github.com/handiism/yt2mp3/internal/pipeline"
	"github.com/handiism/yt2mp3/internal/tui"
	"github.com/handiism/yt2mp3/internal/youtube"
)

// convert wires the stages together and runs the pipeline for url.
func convert(ctx context.Context, url string, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}
	opts.apply(settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := ioutils.EnsureDir(settings.OutputDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := newLogger(settings.Verbose, stderr)
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := http.NewClient(settings.HTTPTimeout)
	deps := pipeline.Deps{
		Source: youtube.NewSource(client),
		Covers: client,
		Out:    stdout,
	}

	var hooks pipeline.Hooks
	if isTerminal(stdin) && isTerminal(stderr) {
		progress := tui.NewProgress(cancel, settings.Verbose, stderr, tea.WithInput(stdin))
		progress.Start()
		defer progress.Stop()

		hooks = progress.Hooks()
		forward := hooks.OnState
		hooks.OnState = func(s pipeline.State) {
			forward(s)
			// Prompts need the terminal; so does the final summary.
			if s == pipeline.StateTaggingMetadata || s.Terminal() {
				progress.Stop()
			}
		}
		deps.Prompter = tui.NewPrompter(cancel, tea.WithInput(stdin), tea.WithOutput(stderr))
	} else {
		hooks = newLineRenderer(stderr, settings.Verbose).hooks()
		deps.Prompter = metadata.NewLinePrompter(stdin, stderr)
	}

	logger.Debug("starting", zap.String("url", url), zap.Any("settings", settings))
	_, err = pipeline.New(settings, deps, logger, hooks).Run(ctx, url)
	return err
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
