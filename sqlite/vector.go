package sqlite

import (
	"context"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.VectorIndex = (*VectorIndex)(nil)

// VectorIndex implements siteqa.VectorIndex on SQLite. Embeddings are
// stored as raw float32 blobs and queries run an exact brute-force
// cosine scan. That is linear in corpus size, which is fine at the scale
// of scraped sites: a few thousand chunks score in single-digit
// milliseconds, and results are exact rather than approximate.
type VectorIndex struct {
	db *DB
}

// NewVectorIndex creates a new VectorIndex.
func NewVectorIndex(db *DB) *VectorIndex {
	return &VectorIndex{db: db}
}

// Upsert implements siteqa.VectorIndex. Writing the same chunk ID again
// replaces the previous row, so re-embedding a page is idempotent.
func (v *VectorIndex) Upsert(ctx context.Context, chunkID string, embedding []float32, meta siteqa.ChunkMetadata, text string) error {
	if chunkID == "" {
		return siteqa.Errorf(siteqa.EINVALID, "chunk ID required")
	}
	if len(embedding) == 0 {
		return siteqa.Errorf(siteqa.EINVALID, "embedding required")
	}

	_, err := v.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO chunks (chunk_id, domain, site_name, page_name, page_url, text, embedding, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, chunkID, meta.Domain, meta.SiteName, meta.PageName, meta.PageURL, text,
		encodeEmbedding(embedding), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Query implements siteqa.VectorIndex.
func (v *VectorIndex) Query(ctx context.Context, embedding []float32, topK int, filter *siteqa.SearchFilter) ([]siteqa.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "embedding required")
	}
	if topK <= 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "topK must be positive")
	}

	query := "SELECT chunk_id, domain, site_name, page_name, page_url, text, embedding FROM chunks WHERE 1=1"
	var args []any
	if filter != nil {
		if filter.Domain != "" {
			query += " AND domain = ?"
			args = append(args, filter.Domain)
		}
		if filter.SiteName != "" {
			query += " AND site_name = ?"
			args = append(args, filter.SiteName)
		}
	}

	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []siteqa.SearchResult
	for rows.Next() {
		var r siteqa.SearchResult
		var blob []byte
		if err := rows.Scan(&r.ChunkID, &r.Metadata.Domain, &r.Metadata.SiteName,
			&r.Metadata.PageName, &r.Metadata.PageURL, &r.Text, &blob); err != nil {
			return nil, err
		}

		stored := decodeEmbedding(blob)
		if len(stored) != len(embedding) {
			// Dimension mismatch, row was embedded with a different model.
			continue
		}
		r.Score = cosineSimilarity(embedding, stored)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteByDomain implements siteqa.VectorIndex.
func (v *VectorIndex) DeleteByDomain(ctx context.Context, domain string) error {
	if domain == "" {
		return siteqa.Errorf(siteqa.EINVALID, "domain required")
	}
	_, err := v.db.ExecContext(ctx, "DELETE FROM chunks WHERE domain = ?", domain)
	return err
}

// encodeEmbedding packs a float32 vector into a little-endian blob.
func encodeEmbedding(embedding []float32) []byte {
	buf := make([]byte, 4*len(embedding))
	for i, f := range embedding {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

// decodeEmbedding unpacks a blob written by encodeEmbedding.
func decodeEmbedding(blob []byte) []float32 {
	embedding := make([]float32, len(blob)/4)
	for i := range embedding {
		embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return embedding
}

// cosineSimilarity computes the cosine of the angle between a and b.
// Zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
