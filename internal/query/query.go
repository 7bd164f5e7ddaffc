// Package query separates the term being typed from the query last submitted.
package query

import (
	"net/url"

	"github.com/fragmede/hnsearch/internal/persist"
)

// Query is an immutable request description.
type Query struct {
	Endpoint string
	Term     string
}

// URL is the endpoint followed by the escaped term.
func (q Query) URL() string {
	return q.Endpoint + url.QueryEscape(q.Term)
}

// Controller owns the typed term and the active query.
type Controller struct {
	endpoint string
	term     *persist.Value[string]
	active   Query
}

// NewController builds a controller whose first active query uses the
// persisted term.
func NewController(endpoint string, term *persist.Value[string]) *Controller {
	return &Controller{
		endpoint: endpoint,
		term:     term,
		active:   Query{Endpoint: endpoint, Term: term.Get()},
	}
}

// UpdateTerm records a keystroke-level edit. It never starts a fetch.
func (c *Controller) UpdateTerm(text string) {
	c.term.Set(text)
}

// Term is the currently typed text.
func (c *Controller) Term() string { return c.term.Get() }

// Active is the last submitted query.
func (c *Controller) Active() Query { return c.active }

// CanSubmit reports whether a submission control should be enabled.
// Submit itself accepts an empty term.
func (c *Controller) CanSubmit() bool { return c.term.Get() != "" }

// Submit makes the typed term the active query and returns it. The caller
// starts a fetch for the returned query.
func (c *Controller) Submit() Query {
	c.active = Query{Endpoint: c.endpoint, Term: c.term.Get()}
	return c.active
}
