package lifecycle

import "github.com/fragmede/hnsearch/internal/story"

// Reduce applies a to s and returns the new state. It never mutates s.Items.
// It panics with *UnknownActionError for an action it does not recognise.
func Reduce(s State, a Action, p Policy) State {
	switch a := a.(type) {
	case BeginFetch:
		s.IsLoading = true
		s.IsError = false
		s.Err = nil
		s.Gen = a.Gen
		return s

	case FetchSucceeded:
		if !s.accepts(a.Gen, p) {
			return s
		}
		s.Items = a.Items
		s.IsLoading = false
		s.IsError = false
		s.Err = nil
		s.settled = true
		return s

	case FetchFailed:
		if !s.accepts(a.Gen, p) {
			return s
		}
		s.IsLoading = false
		s.IsError = true
		s.Err = a.Err
		s.settled = true
		return s

	case RemoveItem:
		if len(s.Items) == 0 {
			return s
		}
		s.Items = story.RemoveByID(s.Items, a.ID)
		return s

	default:
		panic(&UnknownActionError{Action: a})
	}
}

func (s State) accepts(gen uint64, p Policy) bool {
	if p == PolicyLastWriteWins {
		// Any completion after some BeginFetch commits, stale or not.
		return s.IsLoading || s.settled
	}
	return s.IsLoading && gen == s.Gen
}
