// Package report prints the summary shown after a successful run.
//
// The finished file is probed with ffprobe; duration, bitrate and size are
// rendered in a table together with the wall-clock time of the whole run.
// When the probe fails only the elapsed time is shown, next to the message
// "unable to read file".
//
// Reporting the same file twice prints the same values.
package report
