package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yt2mp3/internal/model"
)

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("YT2MP3_FFMPEG", "/opt/ffmpeg")
	t.Setenv("YT2MP3_AUDIO_BITRATE", "320k")
	t.Setenv("YT2MP3_COVER_MAX_SIZE", "800")
	t.Setenv("YT2MP3_HTTP_TIMEOUT", "30s")

	settings, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg", settings.FFmpegPath)
	assert.Equal(t, "320k", settings.AudioBitrate)
	assert.Equal(t, 800, settings.CoverMaxSize)
	assert.Equal(t, 30*time.Second, settings.HTTPTimeout)
	assert.Equal(t, "ffprobe", settings.FFprobePath)
}

func TestFromEnv_Defaults(t *testing.T) {
	settings, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().AudioCodec, settings.AudioCodec)
	assert.Equal(t, model.DefaultContainer, settings.Container)
	assert.NoError(t, settings.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty ffmpeg", func(s *Settings) { s.FFmpegPath = " " }},
		{"empty ffprobe", func(s *Settings) { s.FFprobePath = "" }},
		{"empty codec", func(s *Settings) { s.AudioCodec = "" }},
		{"empty container", func(s *Settings) { s.Container = "" }},
		{"zero cover size", func(s *Settings) { s.CoverMaxSize = 0 }},
		{"negative timeout", func(s *Settings) { s.HTTPTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)
			assert.Error(t, settings.Validate())
		})
	}
}

func TestToSource(t *testing.T) {
	settings := DefaultSettings()
	settings.LowQuality = true
	settings.Container = " MP4 "

	src := settings.ToSource("https://youtu.be/abc")
	assert.Equal(t, model.QualityLowest, src.Quality)
	assert.Equal(t, "mp4", src.Container)
}
