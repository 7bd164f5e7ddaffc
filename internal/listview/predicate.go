package listview

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/fragmede/hnsearch/internal/story"
)

// env is the variable set visible to a predicate expression.
type env struct {
	Title    string
	URL      string
	Author   string
	Text     string
	Comments int
	Points   int
}

// Predicate is a compiled boolean expression over an item, for example
// `Points > 100 && Author != "pg"`.
type Predicate struct {
	source  string
	program *vm.Program
}

// CompilePredicate compiles source once. An empty source yields nil.
func CompilePredicate(source string) (*Predicate, error) {
	if source == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.Env(env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", source, err)
	}
	return &Predicate{source: source, program: program}, nil
}

// String returns the expression source.
func (p *Predicate) String() string { return p.source }

// Match evaluates the predicate. Evaluation errors count as no match.
func (p *Predicate) Match(it story.Item) bool {
	out, err := expr.Run(p.program, env{
		Title:    it.Title,
		URL:      it.URL,
		Author:   it.Author,
		Text:     it.Text,
		Comments: it.CommentCount,
		Points:   it.Score,
	})
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Filter keeps the items that match.
func (p *Predicate) Filter(items []story.Item) []story.Item {
	out := make([]story.Item, 0, len(items))
	for _, it := range items {
		if p.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
