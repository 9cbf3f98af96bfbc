// Package youtube adapts github.com/kkdai/youtube/v2 to the fetch.Source
// interface.
//
// Lookup resolves a watch URL (or bare video ID) to model.Video with every
// format mapped to a model.Rendition. Open streams one of those renditions,
// deciphering the URL through the library.
//
//	src := youtube.NewSource(http.NewClient(0))
//	video, err := src.Lookup(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	body, size, err := src.Open(ctx, video, video.Renditions[0])
package youtube
