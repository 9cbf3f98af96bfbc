package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// VideoExt is the extension of the intermediate file.
	VideoExt = ".mp4"

	// AudioExt is the extension of the final file.
	AudioExt = ".mp3"

	untitled = "untitled"
)

// Paths holds the intermediate (video) and final (audio) file locations.
//
// Both are derived deterministically from the title. The video file lives in
// the temporary directory unless KeepVideo is set, in which case it is placed
// beside the audio output and never deleted.
//
// Example:
//
//	paths := NewPaths("Artist - Song", "/music", "/tmp", false)
//	// paths.Video = "/tmp/Artist - Song.mp4"
//	// paths.Audio = "/music/Artist - Song.mp3"
type Paths struct {
	// Video is the intermediate media file written by the fetcher.
	Video string

	// Audio is the transcoder's output file.
	Audio string

	// KeepVideo reports whether Video survives the run.
	KeepVideo bool
}

// NewPaths computes the file paths for a title.
//
// Invalid filename characters are replaced with underscores.
func NewPaths(title, outputDir, tempDir string, keepVideo bool) Paths {
	videoDir := tempDir
	if keepVideo {
		videoDir = outputDir
	}
	return Paths{
		Video:     filePath(videoDir, title, VideoExt),
		Audio:     filePath(outputDir, title, AudioExt),
		KeepVideo: keepVideo,
	}
}

// AudioPath returns the final audio path for a (possibly edited) title.
func AudioPath(outputDir, title string) string {
	return filePath(outputDir, title, AudioExt)
}

// filePath joins dir with the sanitized title and extension.
func filePath(dir, title, ext string) string {
	fileName := sanitizeFileName(title)
	if fileName == "" {
		fileName = untitled
	}
	path := filepath.Join(dir, fileName+ext)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(path) >= 260 {
		maxLen := 259 - len(filepath.Join(dir, ext))
		if maxLen > 0 && maxLen < len(fileName) {
			path = filepath.Join(dir, truncateUTF8(fileName, maxLen)+ext)
		}
	}

	return path
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune. Invalid
// bytes before the cut are kept as they are.
func truncateUTF8(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var (
	invalidChars    = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots    = regexp.MustCompile(`\.+$`)
	repeatedSpacing = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpacing.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
