package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mstolarski/siteqa"
)

// Ensure LoggingVectorIndex implements siteqa.VectorIndex.
var _ siteqa.VectorIndex = (*LoggingVectorIndex)(nil)

// LoggingVectorIndex wraps a VectorIndex with operation logging.
type LoggingVectorIndex struct {
	next   siteqa.VectorIndex
	logger *slog.Logger
}

// NewLoggingVectorIndex creates a new LoggingVectorIndex.
func NewLoggingVectorIndex(next siteqa.VectorIndex, logger *slog.Logger) *LoggingVectorIndex {
	return &LoggingVectorIndex{next: next, logger: logger}
}

// Upsert delegates to the wrapped index and logs the operation at debug
// level; a scrape upserts hundreds of chunks.
func (v *LoggingVectorIndex) Upsert(ctx context.Context, chunkID string, embedding []float32, meta siteqa.ChunkMetadata, text string) (err error) {
	defer func(begin time.Time) {
		v.logger.Debug("vector upsert",
			"chunk_id", chunkID,
			"domain", meta.Domain,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.Upsert(ctx, chunkID, embedding, meta, text)
}

// Query delegates to the wrapped index and logs the operation.
func (v *LoggingVectorIndex) Query(ctx context.Context, embedding []float32, topK int, filter *siteqa.SearchFilter) (results []siteqa.SearchResult, err error) {
	defer func(begin time.Time) {
		v.logger.Info("vector query",
			"top_k", topK,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.Query(ctx, embedding, topK, filter)
}

// DeleteByDomain delegates to the wrapped index and logs the operation.
func (v *LoggingVectorIndex) DeleteByDomain(ctx context.Context, domain string) (err error) {
	defer func(begin time.Time) {
		v.logger.Info("vector delete",
			"domain", domain,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.DeleteByDomain(ctx, domain)
}
