// Package story holds the search result record shared by every layer.
package story

// Item is a single search hit. Items are treated as immutable once received;
// ID is the identity.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Author       string `json:"author"`
	CommentCount int    `json:"comment_count"`
	Score        int    `json:"score"`
	CreatedAt    int64  `json:"created_at,omitempty"`
	// Text is the story or comment body with markup removed, if any.
	Text string `json:"text,omitempty"`
}

// RemoveByID returns a copy of items without the entry whose ID equals id.
// Removing an absent id returns an equal copy.
func RemoveByID(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// IDs returns the identifiers of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
