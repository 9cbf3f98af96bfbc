package model

import (
	"strings"
)

// Quality selects which matching rendition the fetcher picks.
type Quality int

const (
	// QualityHighest picks the best matching rendition.
	QualityHighest Quality = iota

	// QualityLowest picks the smallest matching rendition.
	QualityLowest
)

// String returns "highest" or "lowest".
func (q Quality) String() string {
	if q == QualityLowest {
		return "lowest"
	}
	return "highest"
}

// DefaultContainer is the only container format renditions are accepted in.
const DefaultContainer = "mp4"

// Source describes what to download. It is immutable once parsed from
// command-line input.
type Source struct {
	// URL is the requested video URL (or bare video ID).
	URL string

	// Quality is the rendition preference.
	Quality Quality

	// Container is the required container, e.g. "mp4".
	Container string
}

// NewSource creates a Source with the default container filter.
func NewSource(url string, quality Quality) Source {
	return Source{
		URL:       strings.TrimSpace(url),
		Quality:   quality,
		Container: DefaultContainer,
	}
}
