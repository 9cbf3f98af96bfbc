package model

import (
	"strings"
	"time"
)

// Video is the metadata supplied by the remote host when a stream is opened.
//
// A Video is read-only after receipt. Its Title seeds the output file names
// and the default tag values.
type Video struct {
	// ID is the host's identifier for the video.
	ID string

	// Title is the video title as published.
	Title string

	// Author is the channel or uploader name.
	Author string

	// Duration is the advertised play length. Zero when unknown.
	Duration time.Duration

	// Thumbnails lists the available preview images.
	Thumbnails []Thumbnail

	// Renditions lists every encoded variant on offer.
	Renditions []Rendition
}

// Thumbnail is a preview image of the video.
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// BestThumbnail returns the largest thumbnail, or false if there is none.
func (v *Video) BestThumbnail() (Thumbnail, bool) {
	var best Thumbnail
	found := false
	for _, t := range v.Thumbnails {
		if t.URL == "" {
			continue
		}
		if !found || t.Width*t.Height > best.Width*best.Height {
			best = t
			found = true
		}
	}
	return best, found
}

// Rendition is one encoded variant (quality/container) of a video.
type Rendition struct {
	// Itag is the host's format identifier.
	Itag int

	// MimeType is the full mime type, e.g. `video/mp4; codecs="avc1.42001E, mp4a.40.2"`.
	MimeType string

	// QualityLabel is a display label such as "720p".
	QualityLabel string

	// Bitrate is the encoded bit rate in bits per second.
	Bitrate int

	Width  int
	Height int

	// AudioChannels is zero for video-only renditions.
	AudioChannels int

	// ContentLength is the advertised size in bytes. Zero when unknown.
	ContentLength int64
}

// Container returns the container sub-type of the mime type:
// "video/mp4; codecs=..." yields "mp4".
func (r Rendition) Container() string {
	mime := r.MimeType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if i := strings.Index(mime, "/"); i >= 0 {
		mime = mime[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// HasAudio reports whether the rendition carries an audio track.
func (r Rendition) HasAudio() bool {
	return r.AudioChannels > 0
}
