// Package model defines the core data structures used throughout
// the yt2mp3 application.
//
// # Source
//
// Source is the parsed command-line request:
//
//	src := model.NewSource("https://youtu.be/abc", model.QualityHighest)
//	fmt.Println(src.Container) // "mp4"
//
// # Video
//
// Video is the metadata the remote host returns when a stream is opened,
// including every Rendition it offers:
//
//	for _, r := range video.Renditions {
//	    fmt.Println(r.Itag, r.Container(), r.QualityLabel)
//	}
//
// # Paths
//
// Paths computes where the intermediate video and the final audio file live:
//
//	paths := model.NewPaths(video.Title, "/music", os.TempDir(), false)
//	fmt.Println(paths.Audio) // "/music/<title>.mp3"
//
// # Tags
//
// Tags holds the ID3 fields written into the finished file. Empty fields are
// never written.
package model
