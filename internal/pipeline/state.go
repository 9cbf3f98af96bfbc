package pipeline

import "fmt"

// State is the stage a Pipeline is in.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateTranscoding
	StateTaggingMetadata
	StateReporting
	StateDone
	StateFetchFailed
	StateConvertFailed
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StateFetching:        "fetching",
	StateTranscoding:     "transcoding",
	StateTaggingMetadata: "tagging metadata",
	StateReporting:       "reporting",
	StateDone:            "done",
	StateFetchFailed:     "fetch failed",
	StateConvertFailed:   "convert failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFetchFailed || s == StateConvertFailed
}

// transitions lists the only moves allowed out of each state.
var transitions = map[State][]State{
	StateIdle:            {StateFetching},
	StateFetching:        {StateTranscoding, StateFetchFailed},
	StateTranscoding:     {StateTaggingMetadata, StateConvertFailed},
	StateTaggingMetadata: {StateReporting},
	StateReporting:       {StateDone},
}

// CanTransition reports whether the machine may move from one state to another.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
