package lifecycle

import (
	"fmt"

	"github.com/fragmede/hnsearch/internal/story"
)

// Action is a transition request for the fetch state machine. The set of
// actions is closed: only the types in this file implement it.
type Action interface {
	action()
}

// BeginFetch marks the start of fetch generation Gen.
type BeginFetch struct {
	Gen uint64
}

// FetchSucceeded carries the payload of fetch generation Gen.
type FetchSucceeded struct {
	Gen   uint64
	Items []story.Item
}

// FetchFailed reports that fetch generation Gen failed with Err.
type FetchFailed struct {
	Gen uint64
	Err error
}

// RemoveItem drops the item with the given ID from the current list.
type RemoveItem struct {
	ID string
}

func (BeginFetch) action()     {}
func (FetchSucceeded) action() {}
func (FetchFailed) action()    {}
func (RemoveItem) action()     {}

// UnknownActionError is the panic value for an action the reducer does not
// handle. It indicates a wiring bug, never a runtime condition.
type UnknownActionError struct {
	Action Action
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("lifecycle: unknown action %T", e.Action)
}
