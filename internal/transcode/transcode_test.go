package transcode

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yt2mp3/internal/model"
)

func TestTicker(t *testing.T) {
	ticker := &Ticker{}
	var got []int
	for _, p := range []float64{0, 5, 5, 12, 12, 12, 100} {
		got = append(got, ticker.Tick(p))
	}
	assert.Equal(t, []int{0, 5, 0, 7, 0, 0, 88}, got)
	assert.Equal(t, 100, ticker.Counted())
}

func TestTickerNeverNegative(t *testing.T) {
	ticker := &Ticker{}
	assert.Equal(t, 1, ticker.Tick(0.2))
	assert.Equal(t, 0, ticker.Tick(0.1))
	assert.Equal(t, 50, ticker.Tick(50.5))
	assert.Equal(t, 0, ticker.Tick(10))
	assert.Equal(t, 49, ticker.Tick(140))
}

// fakeRunner replays ffmpeg output and, on success, writes the file named by
// the last argument unless noOutput is set.
type fakeRunner struct {
	stdout   string
	stderr   string
	err      error
	noOutput bool

	name string
	args []string
}

func (r *fakeRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	r.name = name
	r.args = args
	// Split writes so lines arrive in pieces.
	for _, part := range strings.SplitAfter(r.stdout, "=") {
		if _, err := io.WriteString(stdout, part); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(stderr, r.stderr); err != nil {
		return err
	}
	if r.err != nil || r.noOutput {
		return r.err
	}
	out := args[len(args)-1]
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte("ID3"), 0644)
}

func block(outTimeUs, bitrate, state string) string {
	return "bitrate=" + bitrate + "\nout_time_us=" + outTimeUs + "\nprogress=" + state + "\n"
}

func testOptions() Options {
	return Options{FFmpeg: "ffmpeg", Codec: "libmp3lame", Bitrate: "192k"}
}

func testPaths(t *testing.T, keep bool) model.Paths {
	t.Helper()
	dir := t.TempDir()
	paths := model.NewPaths("Song", filepath.Join(dir, "out"), dir, keep)
	require.NoError(t, os.MkdirAll(filepath.Dir(paths.Video), 0755))
	require.NoError(t, os.WriteFile(paths.Video, []byte("video"), 0644))
	return paths
}

func TestArgs(t *testing.T) {
	args := testOptions().Args("in.mp4", "out.mp3")
	assert.Equal(t, []string{
		"-hide_banner", "-y", "-i", "in.mp4", "-vn",
		"-codec:a", "libmp3lame", "-b:a", "192k",
		"-progress", "pipe:1", "-nostats", "out.mp3",
	}, args)
}

func TestConvertReportsProgress(t *testing.T) {
	paths := testPaths(t, false)
	runner := &fakeRunner{stdout: block("0", "N/A", "continue") +
		block("5000000", "128.0kbits/s", "continue") +
		block("5000000", "128.0kbits/s", "continue") +
		block("12000000", "130.5kbits/s", "continue") +
		block("100000000", "131.0kbits/s", "end")}

	var reports []Progress
	tr := NewWithRunner(testOptions(), runner, nil, func(p Progress) {
		reports = append(reports, p)
	})

	res, err := tr.Convert(context.Background(), paths, 100*time.Second)
	require.NoError(t, err)

	var deltas []int
	total := 0
	for _, p := range reports {
		deltas = append(deltas, p.Delta)
		total += p.Delta
	}
	assert.Equal(t, []int{0, 5, 0, 7, 88}, deltas)
	assert.Equal(t, 100, total)
	assert.InDelta(t, 128.0, reports[1].Kbps, 0.001)
	assert.True(t, reports[len(reports)-1].Done)
	assert.InDelta(t, 131.0, res.Kbps, 0.001)

	assert.Equal(t, "ffmpeg", runner.name)
	assert.Equal(t, paths.Audio, res.Output)
	assert.True(t, res.Cleaned)
	assert.NoFileExists(t, paths.Video)
}

func TestConvertUnknownDuration(t *testing.T) {
	paths := testPaths(t, false)
	runner := &fakeRunner{stdout: block("5000000", "N/A", "continue") + block("9000000", "N/A", "end")}

	var deltas []int
	tr := NewWithRunner(testOptions(), runner, nil, func(p Progress) {
		deltas = append(deltas, p.Delta)
	})

	_, err := tr.Convert(context.Background(), paths, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 100}, deltas)
}

func TestConvertWithoutEndBlock(t *testing.T) {
	paths := testPaths(t, false)
	runner := &fakeRunner{stdout: block("50000000", "N/A", "continue")}

	var reports []Progress
	tr := NewWithRunner(testOptions(), runner, nil, func(p Progress) {
		reports = append(reports, p)
	})

	_, err := tr.Convert(context.Background(), paths, 100*time.Second)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 50, reports[0].Delta)
	assert.Equal(t, 50, reports[1].Delta)
	assert.True(t, reports[1].Done)
}

func TestConvertKeepsVideo(t *testing.T) {
	paths := testPaths(t, true)
	tr := NewWithRunner(testOptions(), &fakeRunner{stdout: block("1", "N/A", "end")}, nil, nil)

	res, err := tr.Convert(context.Background(), paths, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Cleaned)
	assert.FileExists(t, paths.Video)
}

func TestConvertRemovesOnce(t *testing.T) {
	paths := testPaths(t, false)
	tr := NewWithRunner(testOptions(), &fakeRunner{stdout: block("1", "N/A", "end")}, nil, nil)

	var removed []string
	tr.remove = func(path string) error {
		removed = append(removed, path)
		return os.Remove(path)
	}

	_, err := tr.Convert(context.Background(), paths, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{paths.Video}, removed)
}

func TestConvertFailure(t *testing.T) {
	paths := testPaths(t, false)
	runner := &fakeRunner{
		stderr: "Input #0\nInvalid data found when processing input\n",
		err:    errors.New("exit status 1"),
	}
	tr := NewWithRunner(testOptions(), runner, nil, nil)

	res, err := tr.Convert(context.Background(), paths, time.Second)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Contains(t, err.Error(), "Invalid data found")
	assert.FileExists(t, paths.Video, "intermediate stays on failure")
}

func TestParseKbps(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"128.0kbits/s", 128},
		{"N/A", 0},
		{"", 0},
		{"-1kbits/s", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseKbps(tt.in), 0.001, tt.in)
	}
}

func TestTailBuffer(t *testing.T) {
	tb := &tailBuffer{}
	for i := 0; i < 1000; i++ {
		_, _ = tb.Write([]byte("line\n"))
	}
	assert.LessOrEqual(t, len(tb.buf), tailSize)
	assert.Equal(t, "line\nline\nline\nline\nline", tb.String())
}

func TestConvertEmptyOutputKeepsVideo(t *testing.T) {
	paths := testPaths(t, false)
	tr := NewWithRunner(testOptions(), &fakeRunner{stdout: block("1", "N/A", "end"), noOutput: true}, nil, nil)

	var removed []string
	tr.remove = func(path string) error {
		removed = append(removed, path)
		return os.Remove(path)
	}

	res, err := tr.Convert(context.Background(), paths, time.Second)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Empty(t, removed)
	assert.FileExists(t, paths.Video, "intermediate stays without audio")

	// A zero-byte file is no better than none.
	require.NoError(t, os.WriteFile(paths.Audio, nil, 0644))
	_, err = tr.Convert(context.Background(), paths, time.Second)
	assert.ErrorIs(t, err, ErrConversion)
	assert.FileExists(t, paths.Video)
}
