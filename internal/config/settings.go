package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/yt2mp3/internal/model"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "YT2MP3"

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir string `mapstructure:"output_dir"`
	TempDir   string `mapstructure:"temp_dir"`
	KeepVideo bool   `mapstructure:"keep_video"`

	// Source settings
	LowQuality bool   `mapstructure:"low_quality"`
	Container  string `mapstructure:"container"`

	// Transcoding
	FFmpegPath   string `mapstructure:"ffmpeg"`
	FFprobePath  string `mapstructure:"ffprobe"`
	AudioCodec   string `mapstructure:"audio_codec"`
	AudioBitrate string `mapstructure:"audio_bitrate"`

	// Cover art
	EmbedCover   bool `mapstructure:"embed_cover"`
	CoverMaxSize int  `mapstructure:"cover_max_size"`

	// Network
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	Verbose bool `mapstructure:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir: ".",
		TempDir:   os.TempDir(),
		KeepVideo: false,

		LowQuality: false,
		Container:  model.DefaultContainer,

		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		AudioCodec:   "libmp3lame",
		AudioBitrate: "192k",

		EmbedCover:   true,
		CoverMaxSize: 500,

		HTTPTimeout: 0,
	}
}

// FromEnv returns the default settings overridden by YT2MP3_* variables,
// e.g. YT2MP3_FFMPEG or YT2MP3_COVER_MAX_SIZE.
func FromEnv() (*Settings, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Settings, error) {
	settings := DefaultSettings()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("output_dir", settings.OutputDir)
	v.SetDefault("temp_dir", settings.TempDir)
	v.SetDefault("keep_video", settings.KeepVideo)
	v.SetDefault("low_quality", settings.LowQuality)
	v.SetDefault("container", settings.Container)
	v.SetDefault("ffmpeg", settings.FFmpegPath)
	v.SetDefault("ffprobe", settings.FFprobePath)
	v.SetDefault("audio_codec", settings.AudioCodec)
	v.SetDefault("audio_bitrate", settings.AudioBitrate)
	v.SetDefault("embed_cover", settings.EmbedCover)
	v.SetDefault("cover_max_size", settings.CoverMaxSize)
	v.SetDefault("http_timeout", settings.HTTPTimeout)
	v.SetDefault("verbose", settings.Verbose)

	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return settings, nil
}

// Validate reports the first setting that cannot work.
func (s *Settings) Validate() error {
	switch {
	case strings.TrimSpace(s.FFmpegPath) == "":
		return errors.New("ffmpeg binary must not be empty")
	case strings.TrimSpace(s.FFprobePath) == "":
		return errors.New("ffprobe binary must not be empty")
	case strings.TrimSpace(s.AudioCodec) == "":
		return errors.New("audio codec must not be empty")
	case strings.TrimSpace(s.Container) == "":
		return errors.New("container must not be empty")
	case s.EmbedCover && s.CoverMaxSize <= 0:
		return fmt.Errorf("cover max size must be positive, got %d", s.CoverMaxSize)
	case s.HTTPTimeout < 0:
		return fmt.Errorf("http timeout must not be negative, got %s", s.HTTPTimeout)
	}
	return nil
}

// ToSource converts settings and the requested URL to a model.Source.
func (s *Settings) ToSource(url string) model.Source {
	quality := model.QualityHighest
	if s.LowQuality {
		quality = model.QualityLowest
	}
	src := model.NewSource(url, quality)
	src.Container = strings.ToLower(strings.TrimSpace(s.Container))
	return src
}

// ToPaths converts settings to the file paths for a video title.
func (s *Settings) ToPaths(title string) model.Paths {
	return model.NewPaths(title, s.OutputDir, s.TempDir, s.KeepVideo)
}
