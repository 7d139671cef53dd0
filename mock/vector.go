package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of siteqa.VectorIndex.
type VectorIndex struct {
	UpsertFn         func(ctx context.Context, chunkID string, embedding []float32, meta siteqa.ChunkMetadata, text string) error
	QueryFn          func(ctx context.Context, embedding []float32, topK int, filter *siteqa.SearchFilter) ([]siteqa.SearchResult, error)
	DeleteByDomainFn func(ctx context.Context, domain string) error
}

func (v *VectorIndex) Upsert(ctx context.Context, chunkID string, embedding []float32, meta siteqa.ChunkMetadata, text string) error {
	return v.UpsertFn(ctx, chunkID, embedding, meta, text)
}

func (v *VectorIndex) Query(ctx context.Context, embedding []float32, topK int, filter *siteqa.SearchFilter) ([]siteqa.SearchResult, error) {
	return v.QueryFn(ctx, embedding, topK, filter)
}

func (v *VectorIndex) DeleteByDomain(ctx context.Context, domain string) error {
	return v.DeleteByDomainFn(ctx, domain)
}

var _ siteqa.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of siteqa.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}
