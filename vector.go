package siteqa

import "context"

// ChunkMetadata is the metadata stored alongside each embedded chunk.
type ChunkMetadata struct {
	Domain   string `json:"domain"`
	SiteName string `json:"site_name"`
	PageName string `json:"page_name"`
	PageURL  string `json:"page_url"`
}

// SearchResult represents one vector search match.
type SearchResult struct {
	ChunkID  string        `json:"chunk_id"`
	Metadata ChunkMetadata `json:"metadata"`
	Text     string        `json:"text"`
	Score    float64       `json:"score"`
}

// SearchFilter restricts a vector query by metadata.
type SearchFilter struct {
	Domain   string
	SiteName string
}

// VectorIndex is the abstract nearest-neighbor search capability over
// embedded chunks. The orchestration logic depends only on this
// interface; backends are selected by configuration.
type VectorIndex interface {
	// Upsert stores a chunk under its deterministic ID, overwriting any
	// existing entry with the same ID.
	Upsert(ctx context.Context, chunkID string, embedding []float32, meta ChunkMetadata, text string) error

	// Query returns up to topK chunks ranked by descending similarity
	// to the embedding, optionally restricted by filter.
	Query(ctx context.Context, embedding []float32, topK int, filter *SearchFilter) ([]SearchResult, error)

	// DeleteByDomain removes every chunk stored for a domain.
	DeleteByDomain(ctx context.Context, domain string) error
}

// Embedder generates vector embeddings for text. The same text must
// always be embeddable; no determinism across calls is assumed.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
