// Package metadata derives default tags from a video title and collects the
// final tag values from the user.
package metadata
