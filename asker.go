package siteqa

import "context"

// Asker provides natural language question answering over scraped sites.
type Asker interface {
	// Ask answers a free-text question by retrieving relevant chunks
	// from the vector index and synthesizing an answer.
	// Returns ENOTFOUND if no relevant chunks exist for the filter.
	Ask(ctx context.Context, question string, topK int, filter *SearchFilter) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
