package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kkdai/youtube/v2"

	"github.com/handiism/yt2mp3/internal/http"
	"github.com/handiism/yt2mp3/internal/model"
)

// Source implements fetch.Source for YouTube.
//
// The raw library video is remembered between Lookup and Open because the
// stream URL has to be deciphered against the same player response.
type Source struct {
	client *youtube.Client
	videos map[string]*youtube.Video
}

// NewSource creates a Source that shares the transport of client.
func NewSource(client *http.Client) *Source {
	return &Source{
		client: &youtube.Client{HTTPClient: client.HTTPClient()},
		videos: make(map[string]*youtube.Video),
	}
}

// Lookup fetches the video metadata and its formats.
func (s *Source) Lookup(ctx context.Context, url string) (*model.Video, error) {
	video, err := s.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, describe(err)
	}
	s.videos[video.ID] = video
	return toVideo(video), nil
}

// Open starts streaming the rendition with the given itag.
func (s *Source) Open(ctx context.Context, video *model.Video, rendition model.Rendition) (io.ReadCloser, int64, error) {
	raw, ok := s.videos[video.ID]
	if !ok {
		return nil, 0, fmt.Errorf("video %s was not looked up", video.ID)
	}

	for i := range raw.Formats {
		if raw.Formats[i].ItagNo == rendition.Itag {
			return s.client.GetStreamContext(ctx, raw, &raw.Formats[i])
		}
	}

	return nil, 0, fmt.Errorf("itag %d not offered for video %s", rendition.Itag, video.ID)
}

// describe prefixes library errors with the reason class a user can act on.
func describe(err error) error {
	switch {
	case errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return fmt.Errorf("restricted content: %w", err)
	case errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return fmt.Errorf("invalid video URL: %w", err)
	}

	var statusErr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return fmt.Errorf("video not playable: %w", err)
	}

	return err
}
