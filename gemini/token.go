package gemini

import (
	"context"

	"github.com/mstolarski/siteqa"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ siteqa.TokenCounter = (*TokenCounter)(nil)

// TokenCounter tallies chunk tokens with a local Gemini tokenizer, no
// API round trip. The embed pipeline uses it for the token total the
// embed command reports.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for the given model. The model
// must be one the local tokenizer ships vocabularies for.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens implements siteqa.TokenCounter. Empty text counts as zero
// without touching the tokenizer.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
