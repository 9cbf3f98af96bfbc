package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/yt2mp3/internal/http"
	"github.com/handiism/yt2mp3/internal/model"
)

const chunkSize = 32 * 1024

// EventKind identifies a fetch event.
type EventKind int

const (
	// EventMetadataReady carries the Video.
	EventMetadataReady EventKind = iota

	// EventResponseStarted carries the selected Rendition and Total.
	EventResponseStarted

	// EventChunkReceived carries Chunk, Received and Rate.
	EventChunkReceived
)

// Event is one step of a fetch.
type Event struct {
	Kind      EventKind
	Video     *model.Video
	Rendition model.Rendition

	// Total is the expected size in bytes, or -1 when unknown.
	Total int64

	// Chunk is the size of the chunk just received.
	Chunk int

	// Received is the running byte count.
	Received int64

	// Rate is Received divided by the elapsed seconds, floored at one second.
	Rate float64
}

// Result is the output of a successful fetch.
type Result struct {
	Video     *model.Video
	Rendition model.Rendition
	Total     int64
	Buffer    *Buffer
}

// Save writes the buffered stream to path, creating parent directories.
func (r *Result) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, r.Buffer.Bytes(), 0644)
}

// Fetcher downloads one rendition of one video.
type Fetcher struct {
	source  Source
	logger  *zap.Logger
	onEvent func(Event)
	now     func() time.Time
}

// NewFetcher creates a Fetcher. onEvent may be nil.
func NewFetcher(source Source, logger *zap.Logger, onEvent func(Event)) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		source:  source,
		logger:  logger,
		onEvent: onEvent,
		now:     time.Now,
	}
}

// Fetch resolves src, selects a rendition and reads it fully into memory.
//
// Events are delivered on the calling goroutine, one at a time, in arrival
// order.
func (f *Fetcher) Fetch(ctx context.Context, src model.Source) (*Result, error) {
	video, err := f.source.Lookup(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", src.URL, err)
	}
	f.emit(Event{Kind: EventMetadataReady, Video: video})

	rendition, err := SelectRendition(video.Renditions, src)
	if err != nil {
		return nil, fmt.Errorf("%w: container %q among %d renditions", err, src.Container, len(video.Renditions))
	}
	f.logger.Debug("selected rendition",
		zap.Int("itag", rendition.Itag),
		zap.String("mime", rendition.MimeType),
		zap.String("quality", rendition.QualityLabel),
		zap.Stringer("preference", src.Quality))

	body, total, err := f.source.Open(ctx, video, rendition)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer body.Close()

	if total <= 0 {
		total = -1
	}
	f.emit(Event{Kind: EventResponseStarted, Video: video, Rendition: rendition, Total: total})

	buffer := &Buffer{}
	start := f.now()
	var previous int64
	pw := &http.ProgressWriter{
		Writer: buffer,
		Total:  total,
		OnUpdate: func(written, total int64) {
			chunk := int(written - previous)
			previous = written
			if chunk == 0 {
				return
			}
			f.emit(Event{
				Kind:     EventChunkReceived,
				Total:    total,
				Chunk:    chunk,
				Received: written,
				Rate:     Rate(written, f.now().Sub(start)),
			})
		},
	}

	if _, err := io.CopyBuffer(pw, body, make([]byte, chunkSize)); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	f.logger.Debug("stream ended",
		zap.Int("bytes", buffer.Len()),
		zap.Int("chunks", buffer.Chunks()))

	return &Result{
		Video:     video,
		Rendition: rendition,
		Total:     total,
		Buffer:    buffer,
	}, nil
}

// Rate returns bytes per second, treating anything under one second as one.
func Rate(received int64, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds < 1 {
		seconds = 1
	}
	return float64(received) / seconds
}

func (f *Fetcher) emit(e Event) {
	if f.onEvent != nil {
		f.onEvent(e)
	}
}
