// Package lifecycle implements the fetch state machine for a remote list:
// idle, loading, success and failure, plus item removal.
package lifecycle

import "github.com/fragmede/hnsearch/internal/story"

// Status is the coarse state derived from State's flags.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the list state. The zero value is Idle with no items.
// IsLoading and IsError are never both true.
type State struct {
	Items     []story.Item
	IsLoading bool
	IsError   bool
	// Err is the last transport failure, set only while IsError is true.
	Err error
	// Gen is the generation of the most recent BeginFetch.
	Gen uint64

	settled bool
}

// Status derives the machine state.
func (s State) Status() Status {
	switch {
	case s.IsLoading:
		return Loading
	case s.IsError:
		return Failure
	case s.settled:
		return Success
	default:
		return Idle
	}
}

// Policy decides which fetch completions are allowed to commit.
type Policy int

const (
	// PolicyLatestOnly commits a completion only if it belongs to the most
	// recent BeginFetch and the machine is still loading.
	PolicyLatestOnly Policy = iota
	// PolicyLastWriteWins commits every completion in arrival order, so a slow
	// superseded response can overwrite newer state.
	PolicyLastWriteWins
)

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "latest":
		return PolicyLatestOnly, true
	case "last-write-wins":
		return PolicyLastWriteWins, true
	}
	return 0, false
}

func (p Policy) String() string {
	if p == PolicyLastWriteWins {
		return "last-write-wins"
	}
	return "latest"
}
