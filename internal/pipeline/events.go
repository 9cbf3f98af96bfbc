package pipeline

import (
	"github.com/handiism/yt2mp3/internal/fetch"
	"github.com/handiism/yt2mp3/internal/transcode"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is a user-facing status line.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Hooks receive pipeline activity. Any of them may be nil. All hooks are
// called on the goroutine running Pipeline.Run.
type Hooks struct {
	OnProgress  func(ProgressEvent)
	OnState     func(State)
	OnFetch     func(fetch.Event)
	OnTranscode func(transcode.Progress)
}
