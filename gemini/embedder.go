// Package gemini implements embeddings, question answering and the
// schema extraction agent on top of the Google Gemini API.
package gemini

import (
	"context"

	"github.com/mstolarski/siteqa"
	"google.golang.org/genai"
)

const (
	defaultEmbeddingModel = "gemini-embedding-001"
	defaultEmbeddingDims  = int32(768)
)

// Ensure Embedder implements siteqa.Embedder at compile time.
var _ siteqa.Embedder = (*Embedder)(nil)

// Embedder implements siteqa.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
	dims   int32
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithEmbeddingModel overrides the embedding model.
func WithEmbeddingModel(model string) EmbedderOption {
	return func(e *Embedder) { e.model = model }
}

// WithEmbeddingDimensions overrides the output dimensionality. Vectors
// embedded with different dimensionality are not comparable, so this
// must match what the index was populated with.
func WithEmbeddingDimensions(dims int32) EmbedderOption {
	return func(e *Embedder) { e.dims = dims }
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client: client,
		model:  defaultEmbeddingModel,
		dims:   defaultEmbeddingDims,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "text required")
	}

	dims := e.dims
	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, "user")},
		&genai.EmbedContentConfig{OutputDimensionality: &dims},
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "gemini returned empty embedding")
	}

	return result.Embeddings[0].Values, nil
}
