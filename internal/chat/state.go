package chat

import "fmt"

// State is the position of a session in its turn pipeline.
type State int32

const (
	StateIdle State = iota
	StateClassifying
	StateExtracting
	StateMerging
	StateGenerating
	StateFailed
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateClassifying: "classifying",
	StateExtracting:  "extracting",
	StateMerging:     "merging",
	StateGenerating:  "generating",
	StateFailed:      "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int32(s))
	}
	return stateNames[s]
}
