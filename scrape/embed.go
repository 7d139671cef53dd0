package scrape

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mstolarski/siteqa"
)

// Indexer embeds a stored site artifact into the vector index.
type Indexer struct {
	Sites    siteqa.SiteStore
	Embedder siteqa.Embedder
	Index    siteqa.VectorIndex

	// TokenCounter, when set, tallies the token footprint of the
	// embedded text. Counting is best effort and never fails the run.
	TokenCounter siteqa.TokenCounter

	// ChunkSize overrides the target chunk size. Zero selects
	// siteqa.DefaultChunkSize.
	ChunkSize int

	Logger *slog.Logger
}

// EmbedResult holds the outcome of embedding one site artifact.
type EmbedResult struct {
	Pages  int
	Chunks int
	Tokens int

	// Truncated counts chunks cut at the hard length ceiling; their
	// trailing content is not embedded.
	Truncated int
}

// EmbedProgressFunc is a callback invoked after each embedded page.
type EmbedProgressFunc func(pageURL string, chunks int)

// EmbedSite chunks, embeds and upserts every page of the named site
// artifact. Chunk IDs are deterministic, so re-embedding the same
// artifact overwrites rather than duplicates.
func (ix *Indexer) EmbedSite(ctx context.Context, name string, progress EmbedProgressFunc) (*EmbedResult, error) {
	site, err := ix.Sites.LoadSite(ctx, name)
	if err != nil {
		return nil, err
	}

	domain := siteqa.HostOf(site.Website)
	if domain == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "artifact %q has no valid website URL", name)
	}
	siteName := site.SiteName
	if siteName == "" {
		siteName = strings.TrimSuffix(name, ".json")
	}

	var result EmbedResult
	for _, page := range site.Pages {
		chunks := siteqa.SplitMarkdown(page.Markdown, page.PageName, ix.ChunkSize)
		for i, chunk := range chunks {
			if chunk.Truncated {
				result.Truncated++
				ix.logger().Warn("chunk truncated",
					"page", page.PageURL,
					"chunk", i,
				)
			}

			embedding, err := ix.Embedder.Embed(ctx, chunk.Text)
			if err != nil {
				return nil, err
			}

			meta := siteqa.ChunkMetadata{
				Domain:   domain,
				SiteName: siteName,
				PageName: page.PageName,
				PageURL:  page.PageURL,
			}
			id := siteqa.ChunkID(domain, page.PageName, i)
			if err := ix.Index.Upsert(ctx, id, embedding, meta, chunk.Text); err != nil {
				return nil, err
			}

			if ix.TokenCounter != nil {
				if n, err := ix.TokenCounter.CountTokens(ctx, chunk.Text); err == nil {
					result.Tokens += n
				}
			}
		}

		result.Pages++
		result.Chunks += len(chunks)
		if progress != nil {
			progress(page.PageURL, len(chunks))
		}
	}

	return &result, nil
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return slog.Default()
}
