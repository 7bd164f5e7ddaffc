package listview

import (
	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/story"
)

// Dispatcher accepts lifecycle actions.
type Dispatcher interface {
	Dispatch(lifecycle.Action)
}

// View binds the derivation to a dispatcher for removal.
type View struct {
	Mode  Mode
	Where *Predicate
	d     Dispatcher
}

// NewView returns a View that sends removals to d.
func NewView(d Dispatcher, mode Mode, where *Predicate) *View {
	return &View{Mode: mode, Where: where, d: d}
}

// Items computes the visible list from s and the live term.
func (v *View) Items(s lifecycle.State, term string) []story.Item {
	return Visible(s.Items, term, v.Mode, v.Where)
}

// Remove asks the lifecycle to drop it.
func (v *View) Remove(it story.Item) {
	v.d.Dispatch(lifecycle.RemoveItem{ID: it.ID})
}
