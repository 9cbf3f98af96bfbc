package fetch

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/handiism/yt2mp3/internal/model"
)

// ErrNoRendition is returned when no rendition matches the container filter.
var ErrNoRendition = errors.New("no matching rendition")

// Source resolves videos and opens rendition streams.
type Source interface {
	// Lookup returns the metadata and renditions for a video URL.
	Lookup(ctx context.Context, url string) (*model.Video, error)

	// Open starts the transfer of one rendition. The returned size is the
	// expected byte count, or a non-positive value when the host did not
	// announce one.
	Open(ctx context.Context, video *model.Video, rendition model.Rendition) (io.ReadCloser, int64, error)
}

// SelectRendition picks the rendition matching the source's container and
// quality preference.
func SelectRendition(renditions []model.Rendition, src model.Source) (model.Rendition, error) {
	var candidates []model.Rendition
	for _, r := range renditions {
		if r.Container() == src.Container && r.HasAudio() {
			candidates = append(candidates, r)
		}
	}

	if len(candidates) == 0 {
		return model.Rendition{}, ErrNoRendition
	}

	sortRenditions(candidates)

	if src.Quality == model.QualityLowest {
		return candidates[len(candidates)-1], nil
	}
	return candidates[0], nil
}

// sortRenditions orders renditions best first.
func sortRenditions(renditions []model.Rendition) {
	sort.SliceStable(renditions, func(i, j int) bool {
		a, b := renditions[i], renditions[j]
		resA := a.Width * a.Height
		resB := b.Width * b.Height
		if resA != resB {
			return resA > resB
		}
		if a.Bitrate != b.Bitrate {
			return a.Bitrate > b.Bitrate
		}
		return a.Itag > b.Itag
	})
}
