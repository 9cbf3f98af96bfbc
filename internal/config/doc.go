// Package config provides configuration management for yt2mp3.
//
// This package handles:
//   - Default configuration values
//   - Overrides from YT2MP3_* environment variables
//   - Validation before the pipeline starts
//
// Nothing is read from or written to disk: settings live for one run only.
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Writes to the current directory
//	// Intermediate video goes to os.TempDir()
//	// ffmpeg/ffprobe resolved from PATH
//
// # Environment
//
//	settings, err := config.FromEnv()
//	// YT2MP3_FFMPEG=/opt/ffmpeg/bin/ffmpeg
//	// YT2MP3_AUDIO_BITRATE=320k
//
// Command-line flags are applied on top by the caller.
package config
