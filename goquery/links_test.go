package goquery_test

import (
	"testing"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkURLs(links []siteqa.DiscoveredLink) []string {
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return urls
}

func TestLinkSelector_ExtractLinks_ResolvesRelative(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="docs/intro">Intro</a>
		<a href="https://example.com/pricing">Pricing</a>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/docs/intro",
		"https://example.com/pricing",
	}, linkURLs(links))
}

func TestLinkSelector_ExtractLinks_Priorities(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<nav><a href="/docs">Docs</a></nav>
		<main><a href="/guide">Guide</a></main>
		<div><a href="/misc">Misc</a></div>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	require.Len(t, links, 3)

	byURL := make(map[string]siteqa.DiscoveredLink)
	for _, l := range links {
		byURL[l.URL] = l
	}
	assert.Equal(t, siteqa.PriorityNavigation, byURL["https://example.com/docs"].Priority)
	assert.Equal(t, siteqa.PriorityContent, byURL["https://example.com/guide"].Priority)
	assert.Equal(t, siteqa.PriorityFallback, byURL["https://example.com/misc"].Priority)
}

func TestLinkSelector_ExtractLinks_DuplicateKeepsHighestPriority(t *testing.T) {
	t.Parallel()

	// The same URL appears both in the nav and in the body. One entry,
	// navigation priority.
	html := `<html><body>
		<nav><a href="/docs">Docs</a></nav>
		<div><a href="/docs">Read the docs</a></div>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/docs", links[0].URL)
	assert.Equal(t, siteqa.PriorityNavigation, links[0].Priority)
	assert.Equal(t, "Docs", links[0].Text)
}

func TestLinkSelector_ExtractLinks_FiltersExternalHosts(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="https://other.com/page">Other</a>
		<a href="https://sub.example.com/page">Subdomain</a>
		<a href="/internal">Internal</a>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/internal"}, linkURLs(links))
}

func TestLinkSelector_ExtractLinks_FiltersResourcesAndSchemes(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/logo.png">Logo</a>
		<a href="/styles.css">Styles</a>
		<a href="/feed.xml">Feed</a>
		<a href="/whitepaper.pdf">Whitepaper</a>
		<a href="mailto:team@example.com">Email</a>
		<a href="javascript:void(0)">Toggle</a>
		<a href="tel:+15551234567">Call</a>
		<a href="#section">Anchor</a>
		<a href="/blog">Blog</a>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/blog"}, linkURLs(links))
}

func TestLinkSelector_ExtractLinks_DropsSelfReference(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/">Home</a>
		<a href="/#top">Top</a>
		<a href="/contact">Contact</a>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/contact"}, linkURLs(links))
}

func TestLinkSelector_ExtractLinks_NormalizesURLs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/About/">First</a>
		<a href="/about">Second</a>
	</body></html>`

	links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	require.Len(t, links, 2, "path case is significant, trailing slash is not")
	assert.Equal(t, []string{
		"https://example.com/About",
		"https://example.com/about",
	}, linkURLs(links))
}

func TestLinkSelector_ExtractLinks_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkSelector().ExtractLinks("<html></html>", "://bad")

	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}
