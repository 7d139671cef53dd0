// Package scrape coordinates URL discovery, fetching, cleaning and
// persistence of scrape sessions, plus the downstream embedding of
// stored site artifacts.
package scrape

import (
	"context"

	"github.com/mstolarski/siteqa"
)

// Frontier configuration for the homepage crawl fallback.
const (
	// DefaultCrawlPageLimit bounds how many first-level pages the
	// homepage crawl fetches to discover deeper links.
	DefaultCrawlPageLimit = 10

	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// URLDiscoverer resolves a scrape request into the list of page URLs to
// fetch.
type URLDiscoverer interface {
	DiscoverURLs(ctx context.Context, url string, mode siteqa.ScrapeMode) ([]string, error)
}

var _ URLDiscoverer = (*Discoverer)(nil)

// Discoverer finds the pages of a site. In whole-site mode it runs the
// strategy chain: sitemaps first, then a bounded depth-2 crawl from the
// homepage, and finally just the homepage when nothing else works.
type Discoverer struct {
	Sitemaps    siteqa.SitemapService
	Fetcher     siteqa.Fetcher
	Links       siteqa.LinkSelector
	RateLimiter siteqa.DomainLimiter

	// CrawlPageLimit bounds the first-level pages fetched by the
	// homepage crawl. Zero selects DefaultCrawlPageLimit.
	CrawlPageLimit int
}

// DiscoverURLs returns the URLs to scrape for the request.
// Single-page mode returns only the given URL with no network traffic.
// Whole-site mode never fails outright: when neither sitemaps nor the
// homepage crawl yield anything, the homepage alone is returned.
func (d *Discoverer) DiscoverURLs(ctx context.Context, rawURL string, mode siteqa.ScrapeMode) ([]string, error) {
	seed := siteqa.NormalizeURL(rawURL)
	domain := siteqa.DomainOf(seed)
	if domain == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "invalid URL %q", rawURL)
	}

	if mode == siteqa.ModeSinglePage {
		return []string{seed}, nil
	}

	homepage := siteqa.NormalizeURL(domain)

	// Sitemap discovery errors fall through to crawling; a site with a
	// broken robots.txt can still be scraped. Sitemap results are
	// returned as-is: the sitemap is the site's own index and the
	// homepage is only injected on the crawl path, which starts there.
	urls, err := d.Sitemaps.DiscoverURLs(ctx, domain, nil)
	if err == nil && len(urls) > 0 {
		return dedupNormalized(urls), nil
	}

	return d.crawlFromHomepage(ctx, homepage)
}

// dedupNormalized normalizes urls and drops duplicates, preserving
// first-seen order.
func dedupNormalized(urls []string) []string {
	var out []string
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		u = siteqa.NormalizeURL(u)
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// crawlFromHomepage discovers URLs by following links from the homepage.
// First-level links are collected in priority order; up to CrawlPageLimit
// of them are fetched to discover second-level links, which are recorded
// but not fetched further.
func (d *Discoverer) crawlFromHomepage(ctx context.Context, homepage string) ([]string, error) {
	limit := d.CrawlPageLimit
	if limit <= 0 {
		limit = DefaultCrawlPageLimit
	}

	urls := []string{homepage}
	host := siteqa.HostOf(homepage)

	if err := d.RateLimiter.Wait(ctx, host); err != nil {
		return urls, nil
	}
	html, err := d.Fetcher.Fetch(ctx, homepage)
	if err != nil {
		// Last resort: the orchestrator can still scrape the homepage.
		return urls, nil
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(siteqa.DiscoveredLink{URL: homepage, Priority: siteqa.PriorityNavigation})
	frontier.Pop()

	if links, err := d.Links.ExtractLinks(html, homepage); err == nil {
		for _, link := range links {
			frontier.Push(link)
		}
	}

	// Highest-priority links first; only these are fetched for deeper
	// discovery.
	var firstLevel []siteqa.DiscoveredLink
	for len(firstLevel) < limit {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		firstLevel = append(firstLevel, link)
	}

	var overflow []string
	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		overflow = append(overflow, link.URL)
	}

	for _, link := range firstLevel {
		urls = append(urls, link.URL)

		if ctx.Err() != nil {
			break
		}
		if err := d.RateLimiter.Wait(ctx, host); err != nil {
			break
		}
		pageHTML, err := d.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			continue
		}
		deeper, err := d.Links.ExtractLinks(pageHTML, link.URL)
		if err != nil {
			continue
		}
		for _, found := range deeper {
			if frontier.Push(found) {
				overflow = append(overflow, found.URL)
			}
		}
	}

	return append(urls, overflow...), nil
}
