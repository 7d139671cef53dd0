package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.Asker = (*Asker)(nil)

// Asker is a mock implementation of siteqa.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string, topK int, filter *siteqa.SearchFilter) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string, topK int, filter *siteqa.SearchFilter) (string, error) {
	return a.AskFn(ctx, question, topK, filter)
}

var _ siteqa.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of siteqa.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}
