package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/handiism/yt2mp3/internal/audio"
	"github.com/handiism/yt2mp3/internal/config"
	"github.com/handiism/yt2mp3/internal/fetch"
	"github.com/handiism/yt2mp3/internal/http"
	ioutils "github.com/handiism/yt2mp3/internal/io"
	"github.com/handiism/yt2mp3/internal/metadata"
	"github.com/handiism/yt2mp3/internal/model"
	"github.com/handiism/yt2mp3/internal/probe"
	"github.com/handiism/yt2mp3/internal/report"
	"github.com/handiism/yt2mp3/internal/transcode"
)

// TagWriter writes tags into a finished audio file.
type TagWriter interface {
	WriteTags(path string, tags model.Tags, artwork []byte) error
}

// Downloader fetches small resources such as thumbnails.
type Downloader interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Deps are the collaborators of a Pipeline. Source and Prompter are
// required; the others default to the real implementations.
type Deps struct {
	Source   fetch.Source
	Prompter metadata.Prompter

	FFmpeg transcode.Runner
	Prober report.Inspector
	Tagger TagWriter
	Covers Downloader

	// Out receives the final summary.
	Out io.Writer
}

// Outcome describes a completed run.
type Outcome struct {
	Video   *model.Video
	Paths   model.Paths
	Audio   string
	Tags    model.Tags
	Cleaned bool
	Summary report.Summary
	Timing  model.Timing
}

// Pipeline converts one URL into one tagged MP3 file.
type Pipeline struct {
	settings *config.Settings
	deps     Deps
	logger   *zap.Logger
	hooks    Hooks
	images   *ioutils.ImageService
	now      func() time.Time

	state State
}

// New creates a Pipeline in the Idle state.
func New(settings *config.Settings, deps Deps, logger *zap.Logger, hooks Hooks) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.FFmpeg == nil {
		deps.FFmpeg = transcode.ExecRunner{}
	}
	if deps.Prober == nil {
		deps.Prober = probe.New(settings.FFprobePath)
	}
	if deps.Tagger == nil {
		deps.Tagger = audio.NewTagger()
	}
	if deps.Covers == nil {
		deps.Covers = http.NewClient(settings.HTTPTimeout)
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Pipeline{
		settings: settings,
		deps:     deps,
		logger:   logger,
		hooks:    hooks,
		images:   ioutils.NewImageService(),
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes every stage for url. A Pipeline runs once.
//
// Fetch and conversion failures are returned as *ExitError with ExitFetch
// and ExitConvert. Tagging and probing problems are reported through
// OnProgress as warnings and do not fail the run.
func (p *Pipeline) Run(ctx context.Context, url string) (*Outcome, error) {
	if p.state != StateIdle {
		return nil, &ExitError{Code: ExitSetup, Err: fmt.Errorf("pipeline already %s", p.state)}
	}
	outcome := &Outcome{Timing: model.Timing{Start: p.now()}}

	// Fetch
	p.transition(StateFetching)
	video, err := p.fetch(ctx, url, outcome)
	if err != nil {
		p.progress(LevelError, "Download failed: %v", err)
		p.transition(StateFetchFailed)
		return nil, &ExitError{Code: ExitFetch, Err: err}
	}

	// Transcode
	p.transition(StateTranscoding)
	if err := p.transcode(ctx, video, outcome); err != nil {
		p.progress(LevelError, "Conversion failed: %v", err)
		p.transition(StateConvertFailed)
		return nil, &ExitError{Code: ExitConvert, Err: err}
	}

	// Tag
	p.transition(StateTaggingMetadata)
	p.tag(ctx, video, outcome)

	// Report
	p.transition(StateReporting)
	outcome.Timing.End = p.now()
	summary, err := report.New(p.deps.Prober, p.deps.Out, p.logger).
		Report(ctx, outcome.Audio, outcome.Timing.Elapsed())
	if err != nil {
		p.logger.Warn("failed to print summary", zap.Error(err))
	}
	outcome.Summary = summary

	p.transition(StateDone)
	p.progress(LevelSuccess, "Saved %s", outcome.Audio)
	return outcome, nil
}

func (p *Pipeline) fetch(ctx context.Context, url string, outcome *Outcome) (*model.Video, error) {
	src := p.settings.ToSource(url)
	p.progress(LevelVerbose, "Resolving %s", src.URL)

	fetcher := fetch.NewFetcher(p.deps.Source, p.logger, func(e fetch.Event) {
		switch e.Kind {
		case fetch.EventMetadataReady:
			p.progress(LevelInfo, "Found %q by %s", e.Video.Title, e.Video.Author)
		case fetch.EventResponseStarted:
			size := "unknown size"
			if e.Total > 0 {
				size = humanize.Bytes(uint64(e.Total))
			}
			p.progress(LevelVerbose, "Downloading %s %s (%s)", e.Rendition.Container(), e.Rendition.QualityLabel, size)
		}
		if p.hooks.OnFetch != nil {
			p.hooks.OnFetch(e)
		}
	})

	result, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	outcome.Video = result.Video
	outcome.Paths = p.settings.ToPaths(result.Video.Title)
	if err := result.Save(outcome.Paths.Video); err != nil {
		return nil, fmt.Errorf("write %s: %w", outcome.Paths.Video, err)
	}
	p.progress(LevelInfo, "Downloaded %s", humanize.Bytes(uint64(result.Buffer.Len())))
	p.logger.Debug("intermediate written", zap.String("path", outcome.Paths.Video))

	// The buffer is no longer needed once it is on disk.
	result.Buffer = nil
	return result.Video, nil
}

func (p *Pipeline) transcode(ctx context.Context, video *model.Video, outcome *Outcome) error {
	duration := video.Duration
	if duration <= 0 {
		if probed, err := p.deps.Prober.Inspect(ctx, outcome.Paths.Video); err == nil {
			duration = probed.Duration()
		} else {
			p.logger.Debug("duration unknown", zap.Error(err))
		}
	}

	p.progress(LevelInfo, "Converting to MP3")
	t := transcode.NewWithRunner(transcode.Options{
		FFmpeg:  p.settings.FFmpegPath,
		Codec:   p.settings.AudioCodec,
		Bitrate: p.settings.AudioBitrate,
	}, p.deps.FFmpeg, p.logger, p.hooks.OnTranscode)

	result, err := t.Convert(ctx, outcome.Paths, duration)
	if err != nil {
		return err
	}

	outcome.Audio = result.Output
	outcome.Cleaned = result.Cleaned
	return nil
}

// tag collects and writes tags, then renames the file after the final
// title. Every failure here is a warning.
func (p *Pipeline) tag(ctx context.Context, video *model.Video, outcome *Outcome) {
	tags, err := metadata.Collect(p.deps.Prompter, metadata.Defaults(video.Title))
	if err != nil {
		p.progress(LevelWarning, "Tags not written: %v", err)
		return
	}
	outcome.Tags = tags

	var cover []byte
	if p.settings.EmbedCover {
		cover = p.cover(ctx, video)
	}

	if err := p.deps.Tagger.WriteTags(outcome.Audio, tags, cover); err != nil {
		p.progress(LevelWarning, "Failed to write tags: %v", err)
		return
	}
	p.progress(LevelVerbose, "Tags written")

	target := model.AudioPath(p.settings.OutputDir, tags.Title)
	if target == outcome.Audio {
		return
	}
	if err := ioutils.MoveFile(outcome.Audio, target); err != nil {
		p.progress(LevelWarning, "Failed to rename to %s: %v", target, err)
		return
	}
	outcome.Audio = target
}

func (p *Pipeline) cover(ctx context.Context, video *model.Video) []byte {
	thumb, ok := video.BestThumbnail()
	if !ok {
		return nil
	}

	data, err := p.deps.Covers.Get(ctx, thumb.URL)
	if err != nil {
		p.progress(LevelWarning, "Cover art unavailable: %v", err)
		return nil
	}
	cover, err := p.images.PrepareCover(ctx, data, p.settings.CoverMaxSize)
	if err != nil {
		p.progress(LevelWarning, "Cover art unusable: %v", err)
		return nil
	}
	return cover
}

func (p *Pipeline) transition(to State) {
	if !CanTransition(p.state, to) {
		// Stage order is fixed in Run; reaching this is a programming error.
		p.logger.Error("invalid state transition",
			zap.Stringer("from", p.state), zap.Stringer("to", to))
	}
	p.logger.Debug("state", zap.Stringer("from", p.state), zap.Stringer("to", to))
	p.state = to
	if p.hooks.OnState != nil {
		p.hooks.OnState(to)
	}
}

func (p *Pipeline) progress(level ProgressLevel, format string, args ...any) {
	if p.hooks.OnProgress != nil {
		p.hooks.OnProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
