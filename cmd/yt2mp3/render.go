package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/handiism/yt2mp3/internal/fetch"
	"github.com/handiism/yt2mp3/internal/pipeline"
	"github.com/handiism/yt2mp3/internal/transcode"
	"github.com/handiism/yt2mp3/internal/tui"
)

const (
	// Progress lines are printed every this many percent...
	percentStep = 10
	// ...or every this many bytes when the size is unknown.
	byteStep = 4 << 20
)

// lineRenderer prints progress as plain lines, for pipes and log files.
type lineRenderer struct {
	w       io.Writer
	verbose bool

	total       int64
	nextPercent int
	nextBytes   int64
	converted   int
}

func newLineRenderer(w io.Writer, verbose bool) *lineRenderer {
	return &lineRenderer{w: w, verbose: verbose}
}

func (r *lineRenderer) hooks() pipeline.Hooks {
	return pipeline.Hooks{
		OnProgress:  r.event,
		OnFetch:     r.fetch,
		OnTranscode: r.transcode,
	}
}

func (r *lineRenderer) event(e pipeline.ProgressEvent) {
	if e.Level == pipeline.LevelVerbose && !r.verbose {
		return
	}
	fmt.Fprintln(r.w, tui.RenderEvent(e))
}

func (r *lineRenderer) fetch(e fetch.Event) {
	switch e.Kind {
	case fetch.EventResponseStarted:
		r.total = e.Total
		r.nextPercent = percentStep
		r.nextBytes = byteStep

	case fetch.EventChunkReceived:
		if r.total > 0 {
			percent := int(e.Received * 100 / r.total)
			if percent < r.nextPercent {
				return
			}
			r.nextPercent = (percent/percentStep + 1) * percentStep
			fmt.Fprintf(r.w, "  downloaded %3d%% (%s / %s, %s/s)\n", percent,
				humanize.Bytes(uint64(e.Received)), humanize.Bytes(uint64(r.total)), humanize.Bytes(uint64(e.Rate)))
			return
		}
		if e.Received < r.nextBytes {
			return
		}
		r.nextBytes = (e.Received/byteStep + 1) * byteStep
		fmt.Fprintf(r.w, "  downloaded %s (%s/s)\n", humanize.Bytes(uint64(e.Received)), humanize.Bytes(uint64(e.Rate)))
	}
}

func (r *lineRenderer) transcode(p transcode.Progress) {
	if p.Delta == 0 {
		return
	}
	before := r.converted / percentStep
	r.converted += p.Delta
	if r.converted/percentStep == before {
		return
	}
	if p.Kbps > 0 {
		fmt.Fprintf(r.w, "  converted %3d%% (%.0f kbps)\n", r.converted, p.Kbps)
	} else {
		fmt.Fprintf(r.w, "  converted %3d%%\n", r.converted)
	}
}
