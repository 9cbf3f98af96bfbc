package youtube

import (
	"github.com/kkdai/youtube/v2"

	"github.com/handiism/yt2mp3/internal/model"
)

// toVideo converts a library video to a model.Video.
func toVideo(v *youtube.Video) *model.Video {
	video := &model.Video{
		ID:       v.ID,
		Title:    v.Title,
		Author:   v.Author,
		Duration: v.Duration,
	}

	for _, t := range v.Thumbnails {
		video.Thumbnails = append(video.Thumbnails, model.Thumbnail{
			URL:    t.URL,
			Width:  int(t.Width),
			Height: int(t.Height),
		})
	}

	for _, f := range v.Formats {
		video.Renditions = append(video.Renditions, toRendition(f))
	}

	return video
}

// toRendition converts a library format to a model.Rendition.
func toRendition(f youtube.Format) model.Rendition {
	return model.Rendition{
		Itag:          f.ItagNo,
		MimeType:      f.MimeType,
		QualityLabel:  f.QualityLabel,
		Bitrate:       f.Bitrate,
		Width:         f.Width,
		Height:        f.Height,
		AudioChannels: f.AudioChannels,
		ContentLength: int64(f.ContentLength),
	}
}
