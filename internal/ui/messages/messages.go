package messages

import "github.com/fragmede/hnsearch/internal/search"

// Data messages.
type (
	// FetchResultMsg carries a finished fetch back to the UI goroutine.
	FetchResultMsg struct {
		Result search.Result
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
