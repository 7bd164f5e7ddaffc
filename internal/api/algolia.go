package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fragmede/hnsearch/internal/render"
	"github.com/fragmede/hnsearch/internal/story"
)

// AlgoliaResponse is the search response from the Algolia HN API.
type AlgoliaResponse struct {
	Hits    []AlgoliaHit `json:"hits"`
	Page    int          `json:"page"`
	NbPages int          `json:"nbPages"`
}

// AlgoliaHit is a single search result.
type AlgoliaHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CreatedAtI  int64  `json:"created_at_i"`
	StoryTitle  string `json:"story_title"`
	StoryURL    string `json:"story_url"`
	StoryText   string `json:"story_text"`
	CommentText string `json:"comment_text"`
}

// PayloadError reports a hit that cannot be turned into an item.
type PayloadError struct {
	Index  int
	Reason string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid hit %d: %s", e.Index, e.Reason)
}

// Permanent is always true; the same payload will fail again.
func (e *PayloadError) Permanent() bool { return true }

// ToItem converts an Algolia hit to a story.Item.
func (h AlgoliaHit) ToItem() story.Item {
	title, link, body := h.Title, h.URL, h.StoryText
	if title == "" {
		// Comment hits carry the parent story's title.
		title, link, body = h.StoryTitle, h.StoryURL, h.CommentText
	}
	return story.Item{
		ID:           h.ObjectID,
		Title:        render.Title(title),
		URL:          link,
		Author:       h.Author,
		CommentCount: h.NumComments,
		Score:        h.Points,
		CreatedAt:    h.CreatedAtI,
		Text:         render.PlainText(body),
	}
}

func (h AlgoliaHit) validate(i int) error {
	switch {
	case h.ObjectID == "":
		return &PayloadError{Index: i, Reason: "missing objectID"}
	case h.NumComments < 0:
		return &PayloadError{Index: i, Reason: fmt.Sprintf("negative num_comments %d", h.NumComments)}
	}
	return nil
}

// Fetch runs a search and returns its hits as items in server order.
func (c *Client) Fetch(ctx context.Context, url string) ([]story.Item, error) {
	var resp AlgoliaResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	if resp.Hits == nil {
		return nil, &PayloadError{Index: -1, Reason: "missing hits"}
	}

	items := make([]story.Item, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		if err := hit.validate(i); err != nil {
			return nil, err
		}
		items = append(items, hit.ToItem())
	}
	return items, nil
}

// pageURL sets the page parameter on a search URL.
func pageURL(raw string, page int) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing search url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPages fetches result pages 0..pages-1 concurrently and concatenates
// them in page order. Items repeated across pages keep their first position.
func (c *Client) FetchPages(ctx context.Context, rawURL string, pages int) ([]story.Item, error) {
	if pages <= 1 {
		return c.Fetch(ctx, rawURL)
	}
	urls := make([]string, pages)
	for p := range urls {
		u, err := pageURL(rawURL, p)
		if err != nil {
			return nil, err
		}
		urls[p] = u
	}

	results := make([][]story.Item, pages)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for p := 0; p < pages; p++ {
		p := p
		g.Go(func() error {
			items, err := c.Fetch(ctx, urls[p])
			if err != nil {
				return fmt.Errorf("page %d: %w", p, err)
			}
			mu.Lock()
			results[p] = items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := make([]story.Item, 0)
	for _, page := range results {
		for _, it := range page {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			out = append(out, it)
		}
	}
	return out, nil
}

// Paged is a Fetcher that always reads Pages result pages.
type Paged struct {
	Client *Client
	Pages  int
}

func (p Paged) Fetch(ctx context.Context, url string) ([]story.Item, error) {
	return p.Client.FetchPages(ctx, url, p.Pages)
}
