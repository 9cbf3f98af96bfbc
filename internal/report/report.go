package report

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"

	"github.com/handiism/yt2mp3/internal/probe"
)

// UnreadableMessage replaces the probed fields when ffprobe fails.
const UnreadableMessage = "unable to read file"

// Inspector probes a media file.
type Inspector interface {
	Inspect(ctx context.Context, path string) (probe.Result, error)
}

// Summary is what the reporter prints.
type Summary struct {
	File     string
	Duration time.Duration
	BitRate  int64 // bits per second
	Size     int64 // bytes
	Elapsed  time.Duration

	// Readable is false when the probe failed; the probed fields are then zero.
	Readable bool
}

// Reporter probes finished files and writes summaries.
type Reporter struct {
	inspector Inspector
	out       io.Writer
	logger    *zap.Logger
}

// New creates a Reporter writing to out.
func New(inspector Inspector, out io.Writer, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{inspector: inspector, out: out, logger: logger}
}

// Summarize probes path. A probe failure yields an unreadable Summary,
// never an error.
func (r *Reporter) Summarize(ctx context.Context, path string, elapsed time.Duration) Summary {
	summary := Summary{File: path, Elapsed: elapsed}

	result, err := r.inspector.Inspect(ctx, path)
	if err != nil {
		r.logger.Debug("probe failed", zap.String("path", path), zap.Error(err))
		return summary
	}

	summary.Readable = true
	summary.Duration = result.Duration()
	summary.BitRate = result.BitRate()
	summary.Size = result.SizeBytes()
	return summary
}

// Report probes path and writes the rendered summary.
func (r *Reporter) Report(ctx context.Context, path string, elapsed time.Duration) (Summary, error) {
	summary := r.Summarize(ctx, path, elapsed)
	_, err := fmt.Fprintln(r.out, summary.Render())
	return summary, err
}

// Render formats the summary as a table.
func (s Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	tw.AppendRow(table.Row{"File", filepath.Base(s.File)})
	if s.Readable {
		tw.AppendRow(table.Row{"Duration", FormatDuration(s.Duration)})
		tw.AppendRow(table.Row{"Bit rate", formatBitRate(s.BitRate)})
		tw.AppendRow(table.Row{"Size", formatSize(s.Size)})
	}
	tw.AppendRow(table.Row{"Elapsed", FormatElapsed(s.Elapsed)})

	rendered := tw.Render()
	if !s.Readable {
		rendered = UnreadableMessage + "\n" + rendered
	}
	return rendered
}

// FormatElapsed renders d as "Xm Ys", or "Xh Ym Zs" from one hour.
//
// Any positive duration shorter than a second is shown as one second.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	if total == 0 && d > 0 {
		total = 1
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatDuration renders a media length as m:ss or h:mm:ss.
func FormatDuration(d time.Duration) string {
	total := int64(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatBitRate(bps int64) string {
	if bps <= 0 {
		return "unknown"
	}
	value, prefix := humanize.ComputeSI(float64(bps))
	return fmt.Sprintf("%.0f %sbps", value, prefix)
}

func formatSize(size int64) string {
	if size <= 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(size))
}
