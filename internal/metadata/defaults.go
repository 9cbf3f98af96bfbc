package metadata

import (
	"regexp"
	"strings"

	"github.com/handiism/yt2mp3/internal/model"
)

// titlePattern splits "Artist - Title" at the leftmost hyphen.
var titlePattern = regexp.MustCompile(`^(.+?)-(.+)$`)

// Defaults derives default tags from a video title.
//
// A title of the form "<left>-<right>" gives Artist=left and Title=right,
// both trimmed. Any other title becomes the Title as is, with no Artist.
// The parse is a best-effort guess; the user confirms every field.
//
//	Defaults("Daft Punk - Around the World")
//	// Tags{Artist: "Daft Punk", Title: "Around the World"}
func Defaults(title string) model.Tags {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return model.Tags{Title: title}
	}
	return model.Tags{
		Title:  strings.TrimSpace(m[2]),
		Artist: strings.TrimSpace(m[1]),
	}
}
