// Package listview derives the displayed list from fetched items.
package listview

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fragmede/hnsearch/internal/story"
)

// Mode selects where list narrowing happens.
type Mode int

const (
	// ServerFiltered shows fetched items as-is; the query already narrowed them.
	ServerFiltered Mode = iota
	// ClientFiltered narrows fetched items by the live typed term.
	ClientFiltered
)

// ParseMode maps "server" or "client" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "server":
		return ServerFiltered, nil
	case "client":
		return ClientFiltered, nil
	}
	return 0, fmt.Errorf("unknown filter mode %q (want server or client)", s)
}

func (m Mode) String() string {
	if m == ClientFiltered {
		return "client"
	}
	return "server"
}

// Filter keeps items whose title contains term, ignoring case. Case folding
// is Unicode-aware. An empty term returns items unchanged.
func Filter(items []story.Item, term string) []story.Item {
	if term == "" {
		return items
	}
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]story.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Visible is the list to display for mode. where may be nil.
func Visible(items []story.Item, term string, mode Mode, where *Predicate) []story.Item {
	out := items
	if mode == ClientFiltered {
		out = Filter(out, term)
	}
	if where != nil {
		out = where.Filter(out)
	}
	return out
}
