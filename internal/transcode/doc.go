// Package transcode converts the downloaded video into an MP3 file by
// running ffmpeg as a subprocess.
//
// ffmpeg is started with "-progress pipe:1", so its stdout carries
// key=value blocks. Each block becomes one Progress report holding the
// cumulative percent, the whole-percent delta since the previous report and
// the current bitrate. Deltas come from a Ticker and never go backwards.
//
//	t := transcode.New(transcode.Options{FFmpeg: "ffmpeg", Codec: "libmp3lame", Bitrate: "192k"}, logger,
//	    func(p transcode.Progress) { bar.Add(p.Delta) })
//	res, err := t.Convert(ctx, paths, video.Duration)
//	if errors.Is(err, transcode.ErrConversion) {
//	    // ffmpeg failed; any partial output is left in place
//	}
//
// On success the intermediate video is deleted exactly once unless
// paths.KeepVideo is set.
package transcode
