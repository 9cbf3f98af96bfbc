package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/yt2mp3/internal/config"
	"github.com/handiism/yt2mp3/internal/pipeline"
)

var (
	errMissingURL  = errors.New("missing video URL")
	errTooManyArgs = errors.New("expected exactly one video URL")
)

// options are the command-line flags.
type options struct {
	keep      bool
	low       bool
	outputDir string
	verbose   bool
	noCover   bool
}

// apply copies the flags over the environment-derived settings.
func (o options) apply(settings *config.Settings) {
	if o.keep {
		settings.KeepVideo = true
	}
	if o.low {
		settings.LowQuality = true
	}
	if o.outputDir != "" {
		settings.OutputDir = o.outputDir
	}
	if o.verbose {
		settings.Verbose = true
	}
	if o.noCover {
		settings.EmbedCover = false
	}
}

// runFunc performs a conversion once the arguments are valid.
type runFunc func(ctx context.Context, cmd *cobra.Command, url string, opts options) error

func newRootCommand(run runFunc) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "yt2mp3 [flags] <url>",
		Short: "Download a video and convert it to a tagged MP3",
		Long: "yt2mp3 downloads a YouTube video, converts it to MP3 with ffmpeg,\n" +
			"asks for the tags to write and prints a summary of the result.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch {
			case len(args) == 0 || args[0] == "":
				err = errMissingURL
			case len(args) > 1:
				err = fmt.Errorf("%w: got %d", errTooManyArgs, len(args))
			}
			if err != nil {
				cmd.SetOut(cmd.ErrOrStderr())
				_ = cmd.Usage()
				return &pipeline.ExitError{Code: pipeline.ExitUsage, Err: err}
			}
			return run(cmd.Context(), cmd, args[0], opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.keep, "keep", "k", false, "Keep the downloaded video beside the MP3")
	flags.BoolVarP(&opts.low, "low", "l", false, "Download the lowest quality rendition")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Output directory (default \".\")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show debug logging")
	flags.BoolVar(&opts.noCover, "no-cover", false, "Do not embed the thumbnail as cover art")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.SetOut(cmd.ErrOrStderr())
		_ = cmd.Usage()
		return &pipeline.ExitError{Code: pipeline.ExitUsage, Err: err}
	})

	return rootCmd
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(func(ctx context.Context, cmd *cobra.Command, url string, opts options) error {
		return convert(ctx, url, opts, stdin, stdout, stderr)
	})
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return exitCode(cmd.ExecuteContext(ctx), stderr)
}

// exitCode maps err to an exit status, printing it unless a stage
// failure was already shown by the progress output.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return pipeline.ExitOK
	}

	code := pipeline.ExitSetup
	var exitErr *pipeline.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	switch {
	case code == pipeline.ExitFetch || code == pipeline.ExitConvert:
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted.")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}
