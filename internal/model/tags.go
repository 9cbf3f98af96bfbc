package model

import "time"

// Tags is the tag record written into the final audio file.
//
// Title and Artist are required from the user; Album, Genre and Year are
// optional. An empty field means "do not write this frame".
type Tags struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   string
}

// Timing bounds the whole operation and is only used for the final report.
type Timing struct {
	Start time.Time
	End   time.Time
}

// Elapsed returns End minus Start, or zero if either bound is missing.
func (t Timing) Elapsed() time.Duration {
	if t.Start.IsZero() || t.End.IsZero() {
		return 0
	}
	return t.End.Sub(t.Start)
}
