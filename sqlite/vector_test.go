package sqlite_test

import (
	"context"
	"testing"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorIndex_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()

		meta := siteqa.ChunkMetadata{
			Domain:   "example.com",
			SiteName: "example.com__20250301_100000",
			PageName: "about",
			PageURL:  "https://example.com/about",
		}
		err := idx.Upsert(ctx, "chunk-1", []float32{1, 0, 0}, meta, "About us.")
		require.NoError(t, err)

		results, err := idx.Query(ctx, []float32{1, 0, 0}, 5, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "chunk-1", results[0].ChunkID)
		assert.Equal(t, meta, results[0].Metadata)
		assert.Equal(t, "About us.", results[0].Text)
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	})

	t.Run("OverwritesExistingChunk", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()
		meta := siteqa.ChunkMetadata{Domain: "example.com"}

		require.NoError(t, idx.Upsert(ctx, "chunk-1", []float32{1, 0}, meta, "old text"))
		require.NoError(t, idx.Upsert(ctx, "chunk-1", []float32{0, 1}, meta, "new text"))

		results, err := idx.Query(ctx, []float32{0, 1}, 5, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "new text", results[0].Text)
	})

	t.Run("EmptyChunkID", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		err := idx.Upsert(context.Background(), "", []float32{1}, siteqa.ChunkMetadata{}, "text")
		assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
	})

	t.Run("EmptyEmbedding", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		err := idx.Upsert(context.Background(), "chunk-1", nil, siteqa.ChunkMetadata{}, "text")
		assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
	})
}

func TestVectorIndex_Query(t *testing.T) {
	t.Parallel()

	t.Run("RanksByCosineSimilarity", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()
		meta := siteqa.ChunkMetadata{Domain: "example.com"}

		require.NoError(t, idx.Upsert(ctx, "far", []float32{0, 1, 0}, meta, "far"))
		require.NoError(t, idx.Upsert(ctx, "near", []float32{1, 0.1, 0}, meta, "near"))
		require.NoError(t, idx.Upsert(ctx, "exact", []float32{1, 0, 0}, meta, "exact"))

		results, err := idx.Query(ctx, []float32{1, 0, 0}, 5, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "exact", results[0].ChunkID)
		assert.Equal(t, "near", results[1].ChunkID)
		assert.Equal(t, "far", results[2].ChunkID)
		assert.True(t, results[0].Score > results[1].Score)
		assert.True(t, results[1].Score > results[2].Score)
	})

	t.Run("TruncatesToTopK", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()
		meta := siteqa.ChunkMetadata{Domain: "example.com"}

		require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}, meta, "a"))
		require.NoError(t, idx.Upsert(ctx, "b", []float32{0.9, 0.1}, meta, "b"))
		require.NoError(t, idx.Upsert(ctx, "c", []float32{0, 1}, meta, "c"))

		results, err := idx.Query(ctx, []float32{1, 0}, 2, nil)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a", results[0].ChunkID)
		assert.Equal(t, "b", results[1].ChunkID)
	})

	t.Run("FiltersByDomain", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "a.com"}, "from a"))
		require.NoError(t, idx.Upsert(ctx, "b", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "b.com"}, "from b"))

		results, err := idx.Query(ctx, []float32{1, 0}, 5, &siteqa.SearchFilter{Domain: "a.com"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].ChunkID)
	})

	t.Run("FiltersBySiteName", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, "old", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "a.com", SiteName: "a.com__old"}, "old"))
		require.NoError(t, idx.Upsert(ctx, "new", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "a.com", SiteName: "a.com__new"}, "new"))

		results, err := idx.Query(ctx, []float32{1, 0}, 5,
			&siteqa.SearchFilter{SiteName: "a.com__new"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "new", results[0].ChunkID)
	})

	t.Run("SkipsMismatchedDimensions", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()
		meta := siteqa.ChunkMetadata{Domain: "example.com"}

		require.NoError(t, idx.Upsert(ctx, "small", []float32{1, 0}, meta, "small"))
		require.NoError(t, idx.Upsert(ctx, "match", []float32{1, 0, 0}, meta, "match"))

		results, err := idx.Query(ctx, []float32{1, 0, 0}, 5, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "match", results[0].ChunkID)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		results, err := idx.Query(context.Background(), []float32{1, 0}, 5, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("InvalidTopK", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		_, err := idx.Query(context.Background(), []float32{1}, 0, nil)
		assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
	})
}

func TestVectorIndex_DeleteByDomain(t *testing.T) {
	t.Parallel()

	t.Run("RemovesOnlyMatchingDomain", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, "a1", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "a.com"}, "a1"))
		require.NoError(t, idx.Upsert(ctx, "a2", []float32{0, 1},
			siteqa.ChunkMetadata{Domain: "a.com"}, "a2"))
		require.NoError(t, idx.Upsert(ctx, "b1", []float32{1, 0},
			siteqa.ChunkMetadata{Domain: "b.com"}, "b1"))

		require.NoError(t, idx.DeleteByDomain(ctx, "a.com"))

		results, err := idx.Query(ctx, []float32{1, 0}, 10, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "b1", results[0].ChunkID)
	})

	t.Run("UnknownDomainIsNoOp", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		assert.NoError(t, idx.DeleteByDomain(context.Background(), "missing.com"))
	})

	t.Run("EmptyDomain", func(t *testing.T) {
		t.Parallel()

		idx := sqlite.NewVectorIndex(mustOpenDB(t))
		err := idx.DeleteByDomain(context.Background(), "")
		assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
	})
}
