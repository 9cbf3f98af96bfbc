// Package ioutils provides the file and image helpers used around the
// pipeline stages.
//
// # Files
//
//	// Move the tagged file to its final name, replacing any existing file
//	err := ioutils.MoveFile("/music/Song.mp3", "/music/New Title.mp3")
//
//	// Ensure the output directory exists
//	err := ioutils.EnsureDir("/music")
//
// # Cover Art
//
// The ImageService turns a downloaded thumbnail into an embeddable cover:
//
//	svc := ioutils.NewImageService()
//	cover, err := svc.PrepareCover(ctx, thumbnail, 500)
//
// JPEG, PNG and WebP inputs are accepted; output is always JPEG.
package ioutils
