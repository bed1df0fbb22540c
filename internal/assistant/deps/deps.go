package deps

import (
	"context"

	"book-assistant/internal/model"
)

// BookSearcher abstracts the book-metadata search API.
type BookSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.BookRecord, error)
}

// TextGenerator abstracts the hosted text-generation API.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
