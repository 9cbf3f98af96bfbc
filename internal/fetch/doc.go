// Package fetch resolves a video URL to a rendition and downloads it into
// memory.
//
// # Fetcher
//
// The Fetcher runs one download from start to finish and reports what
// happens through a callback:
//
//  1. EventMetadataReady once the video metadata is known
//  2. EventResponseStarted with the expected size (-1 when unknown)
//  3. EventChunkReceived for every chunk, in arrival order
//
// It returns either a Result holding the complete Buffer or an error. There
// is exactly one attempt; nothing is retried.
//
//	f := fetch.NewFetcher(youtube.NewSource(client), logger, func(e fetch.Event) {
//	    if e.Kind == fetch.EventChunkReceived {
//	        fmt.Printf("%d bytes at %.0f B/s\n", e.Received, e.Rate)
//	    }
//	})
//	res, err := f.Fetch(ctx, src)
//	if errors.Is(err, fetch.ErrNoRendition) {
//	    // nothing in the requested container
//	}
//	err = res.Save(paths.Video)
//
// # Rendition Selection
//
// Only renditions whose container equals Source.Container and which carry
// audio are candidates. QualityHighest picks the largest by resolution, then
// bitrate; QualityLowest picks the smallest.
package fetch
