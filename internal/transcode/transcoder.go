package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	ioutils "github.com/handiism/yt2mp3/internal/io"
	"github.com/handiism/yt2mp3/internal/model"
)

// ErrConversion reports that ffmpeg did not produce the audio file.
var ErrConversion = errors.New("conversion failed")

// Options configures the ffmpeg invocation.
type Options struct {
	// FFmpeg is the binary name or path.
	FFmpeg string

	// Codec is the audio encoder, e.g. "libmp3lame".
	Codec string

	// Bitrate is the target audio bitrate, e.g. "192k".
	Bitrate string
}

// Args returns the ffmpeg arguments converting input to output.
func (o Options) Args(input, output string) []string {
	return []string{
		"-hide_banner",
		"-y",
		"-i", input,
		"-vn",
		"-codec:a", o.Codec,
		"-b:a", o.Bitrate,
		"-progress", "pipe:1",
		"-nostats",
		output,
	}
}

// Result describes a finished conversion.
type Result struct {
	// Output is the audio file path.
	Output string

	// Cleaned reports whether the intermediate file was removed.
	Cleaned bool

	// Kbps is the last bitrate ffmpeg reported.
	Kbps float64
}

// Transcoder runs ffmpeg on intermediate files.
type Transcoder struct {
	opts       Options
	runner     Runner
	logger     *zap.Logger
	onProgress func(Progress)
	remove     func(string) error
}

// New creates a Transcoder using the real ffmpeg. onProgress may be nil.
func New(opts Options, logger *zap.Logger, onProgress func(Progress)) *Transcoder {
	return NewWithRunner(opts, ExecRunner{}, logger, onProgress)
}

// NewWithRunner creates a Transcoder with a custom command runner.
func NewWithRunner(opts Options, runner Runner, logger *zap.Logger, onProgress func(Progress)) *Transcoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcoder{
		opts:       opts,
		runner:     runner,
		logger:     logger,
		onProgress: onProgress,
		remove:     os.Remove,
	}
}

// Convert transcodes paths.Video into paths.Audio.
//
// duration is the media length used to compute percentages; zero leaves
// the percent at 0 until ffmpeg reports the end. A failed conversion leaves
// any partial output in place.
func (t *Transcoder) Convert(ctx context.Context, paths model.Paths, duration time.Duration) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(paths.Audio), 0755); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %w", ErrConversion, err)
	}

	ticker := &Ticker{}
	var last Progress
	parser := newProgressParser(duration, ticker, func(p Progress) {
		last = p
		if t.onProgress != nil {
			t.onProgress(p)
		}
	})
	stderr := &tailBuffer{}

	args := t.opts.Args(paths.Video, paths.Audio)
	t.logger.Debug("running ffmpeg",
		zap.String("binary", t.opts.FFmpeg),
		zap.Strings("args", args),
		zap.Duration("duration", duration))

	if err := t.runner.Run(ctx, t.opts.FFmpeg, args, parser, stderr); err != nil {
		if tail := stderr.String(); tail != "" {
			return nil, fmt.Errorf("%w: %w: %s", ErrConversion, err, tail)
		}
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	// ffmpeg may exit without a final progress=end block.
	if !last.Done {
		parser.report(100, true)
	}

	// The intermediate is only disposable once the audio file is real.
	if err := ioutils.NonEmptyFile(paths.Audio); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	result := &Result{Output: paths.Audio, Kbps: last.Kbps}
	if !paths.KeepVideo {
		if err := t.remove(paths.Video); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.logger.Warn("failed to remove intermediate file",
				zap.String("path", paths.Video), zap.Error(err))
		} else {
			result.Cleaned = err == nil
		}
	}
	return result, nil
}
