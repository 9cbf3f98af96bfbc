// Package http provides the HTTP client shared by every network stage.
//
// The Client in this package handles:
//   - A User-Agent header on plain GET requests
//   - An optional overall timeout (zero keeps transfers unbounded)
//   - Byte counting through ProgressWriter
//
// # Basic Usage
//
//	client := http.NewClient(0)
//
//	// Hand the underlying client to the video resolver
//	yt := youtube.NewSource(client)
//
//	// Fetch a small resource such as a thumbnail
//	data, err := client.Get(ctx, thumbnailURL)
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   buf,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
