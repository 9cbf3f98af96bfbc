package transcode

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// Progress is one ffmpeg progress report.
type Progress struct {
	// Percent is the cumulative completion, 0 to 100.
	Percent float64

	// Delta is the number of whole percents gained since the last report.
	Delta int

	// Kbps is the current output bitrate, zero when ffmpeg reports N/A.
	Kbps float64

	// Done is set on the final report.
	Done bool
}

// progressParser is an io.Writer fed with ffmpeg's -progress output.
//
// It buffers partial lines and calls emit at the end of every block
// (the "progress=" line).
type progressParser struct {
	duration time.Duration
	ticker   *Ticker
	emit     func(Progress)

	partial []byte
	outTime time.Duration
	kbps    float64
}

func newProgressParser(duration time.Duration, ticker *Ticker, emit func(Progress)) *progressParser {
	return &progressParser{duration: duration, ticker: ticker, emit: emit}
}

func (p *progressParser) Write(b []byte) (int, error) {
	p.partial = append(p.partial, b...)
	for {
		i := bytes.IndexByte(p.partial, '\n')
		if i < 0 {
			break
		}
		p.line(string(bytes.TrimSpace(p.partial[:i])))
		p.partial = p.partial[i+1:]
	}
	return len(b), nil
}

func (p *progressParser) line(line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	switch strings.TrimSpace(key) {
	case "out_time_us", "out_time_ms":
		// Both keys carry microseconds.
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
			p.outTime = time.Duration(us) * time.Microsecond
		}
	case "bitrate":
		p.kbps = parseKbps(value)
	case "progress":
		done := value == "end"
		percent := p.percent()
		if done {
			percent = 100
		}
		p.report(percent, done)
	}
}

func (p *progressParser) percent() float64 {
	if p.duration <= 0 {
		return 0
	}
	percent := float64(p.outTime) / float64(p.duration) * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}

func (p *progressParser) report(percent float64, done bool) {
	delta := p.ticker.Tick(percent)
	if p.emit != nil {
		p.emit(Progress{Percent: percent, Delta: delta, Kbps: p.kbps, Done: done})
	}
}

// parseKbps reads values such as "128.0kbits/s".
func parseKbps(value string) float64 {
	value = strings.TrimSuffix(value, "kbits/s")
	kbps, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || kbps < 0 {
		return 0
	}
	return kbps
}
