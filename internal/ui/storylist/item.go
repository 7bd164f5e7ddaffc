package storylist

import (
	"fmt"
	"strings"

	"github.com/fragmede/hnsearch/internal/render"
	"github.com/fragmede/hnsearch/internal/story"
)

// StoryItem wraps a search hit for the bubbles list.
type StoryItem struct {
	story.Item
	Index int
}

func (s StoryItem) Title() string {
	if s.Item.Title != "" {
		return s.Item.Title
	}
	return "[untitled]"
}

func (s StoryItem) Description() string {
	parts := make([]string, 0, 4)

	parts = append(parts, fmt.Sprintf("%d points", s.Item.Score))
	if s.Item.Author != "" {
		parts = append(parts, fmt.Sprintf("by %s", s.Item.Author))
	}
	if ago := render.TimeAgo(s.Item.CreatedAt); ago != "" {
		parts = append(parts, ago)
	}
	parts = append(parts, fmt.Sprintf("%d comments", s.Item.CommentCount))

	desc := strings.Join(parts, " | ")
	if host := render.Host(s.Item.URL); host != "" {
		desc += "  (" + host + ")"
	}
	return desc
}

func (s StoryItem) FilterValue() string {
	return s.Item.Title
}
