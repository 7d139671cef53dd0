package scrape_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/scrape"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(1000, 0.01)

	link := siteqa.DiscoveredLink{
		URL:      "https://example.com/about",
		Priority: siteqa.PriorityNavigation,
	}

	// First push should succeed
	ok := f.Push(link)
	assert.True(t, ok, "first push should succeed")

	// Second push of same URL should be rejected
	ok = f.Push(link)
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Push_dedups_normalized_variants(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(1000, 0.01)

	ok := f.Push(siteqa.DiscoveredLink{URL: "https://example.com/about", Priority: siteqa.PriorityContent})
	assert.True(t, ok)

	// Fragment and trailing-slash variants are the same URL
	assert.False(t, f.Push(siteqa.DiscoveredLink{URL: "https://example.com/about#team", Priority: siteqa.PriorityContent}))
	assert.False(t, f.Push(siteqa.DiscoveredLink{URL: "https://example.com/about/", Priority: siteqa.PriorityContent}))
	assert.False(t, f.Push(siteqa.DiscoveredLink{URL: "https://EXAMPLE.com/about", Priority: siteqa.PriorityContent}))

	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Pop_returns_highest_priority_first(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(1000, 0.01)

	// Push links in random priority order
	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/terms", Priority: siteqa.PriorityFallback})
	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/about", Priority: siteqa.PriorityNavigation})
	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/blog/post", Priority: siteqa.PriorityContent})

	// Pop should return in priority order (highest first)
	link, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, siteqa.PriorityNavigation, link.Priority)
	assert.Equal(t, "https://example.com/about", link.URL)

	link, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, siteqa.PriorityContent, link.Priority)

	link, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, siteqa.PriorityFallback, link.Priority)

	// Queue should now be empty
	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/a", Priority: siteqa.PriorityContent})
	assert.Equal(t, 1, f.Len())

	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/b", Priority: siteqa.PriorityContent})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Push(siteqa.DiscoveredLink{URL: "https://example.com/page", Priority: siteqa.PriorityContent})

	assert.True(t, f.Seen("https://example.com/page"), "pushed URL should be seen")

	// Pop the URL - it should still be seen
	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped URL should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := scrape.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	// Start pushers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				url := fmt.Sprintf("https://example.com/%d/%d", id, j)
				f.Push(siteqa.DiscoveredLink{
					URL:      url,
					Priority: siteqa.PriorityContent,
				})
			}
		}(i)
	}

	// Start poppers
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	// Verify no panic occurred and state is consistent
	// All pushed URLs should be seen
	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://example.com/%d/%d", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}
