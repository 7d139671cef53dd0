//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/gemini"
	"github.com/mstolarski/siteqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newIntegrationClient(t *testing.T, ctx context.Context) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestEmbedder_Integration_ReturnsVector(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	embedder := gemini.NewEmbedder(newIntegrationClient(t, ctx))

	embedding, err := embedder.Embed(ctx, "A gym offering yoga classes.")

	require.NoError(t, err)
	assert.Len(t, embedding, 768)
}

func TestAsker_Integration_ReturnsAnswer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := newIntegrationClient(t, ctx)
	embedder := gemini.NewEmbedder(client)

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	defer db.Close()
	index := sqlite.NewVectorIndex(db)

	text := "The studio opens at 7am on weekdays and offers yoga, pilates and spin classes."
	embedding, err := embedder.Embed(ctx, text)
	require.NoError(t, err)
	require.NoError(t, index.Upsert(ctx, "example.com_home_0", embedding,
		siteqa.ChunkMetadata{
			Domain:   "example.com",
			PageName: "home",
			PageURL:  "https://example.com/",
		}, text))

	asker := gemini.NewAsker(client, embedder, index)

	answer, err := asker.Ask(ctx, "What classes does the studio offer?", 3, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "yoga")
}
