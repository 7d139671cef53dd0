package http

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/mstolarski/siteqa"
)

// maxSitemapDepth bounds sitemap-index recursion. Sitemap indexes that
// reference themselves or nest absurdly deep must not hang the crawl.
const maxSitemapDepth = 3

// commonSitemapPaths are well-known sitemap locations probed in order
// when robots.txt declares no sitemap.
var commonSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/sitemap1.xml",
	"/post-sitemap.xml",
	"/page-sitemap.xml",
}

// Ensure SitemapService implements siteqa.SitemapService.
var _ siteqa.SitemapService = (*SitemapService)(nil)

// SitemapService discovers content URLs from website sitemaps via HTTP.
//
// Discovery order: Sitemap: directives in robots.txt win; only when
// robots.txt yields nothing are the common sitemap paths probed.
// Sitemap indexes are resolved recursively up to maxSitemapDepth, and a
// malformed or unreachable branch yields an empty result for that
// branch without losing the others.
type SitemapService struct {
	fetcher siteqa.Fetcher
}

// NewSitemapService creates a new SitemapService using the given
// fetcher for all HTTP access. If fetcher is nil, a default HTTP
// Fetcher is used.
func NewSitemapService(fetcher siteqa.Fetcher) *SitemapService {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs finds all content URLs declared by the site's sitemaps.
// Returns an empty slice (not nil) if no sitemaps are found; the caller
// decides whether to fall back to link crawling.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *siteqa.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "invalid base URL %q", baseURL)
	}

	// Sitemaps live at the domain root regardless of the request path.
	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	urls := s.discoverFromRobots(ctx, &root)
	if len(urls) == 0 {
		urls = s.discoverFromCommonPaths(ctx, &root)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if filter.Match(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

// discoverFromRobots fetches {domain}/robots.txt, extracts every
// Sitemap: directive, and resolves each declared sitemap recursively.
// Any failure yields an empty result so the caller can fall through to
// the next strategy.
func (s *SitemapService) discoverFromRobots(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()

	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil || body == "" {
		return nil
	}

	sitemaps := ParseRobotsSitemaps(body)
	if len(sitemaps) == 0 {
		return nil
	}

	var all []string
	seen := make(map[string]bool)
	for _, sitemapURL := range sitemaps {
		for _, u := range s.fetchAndParse(ctx, sitemapURL, 0) {
			// Order-preserving dedup across branches; first occurrence wins.
			if !seen[u] {
				seen[u] = true
				all = append(all, u)
			}
		}
	}
	return all
}

// discoverFromCommonPaths probes the fixed list of well-known sitemap
// paths; the first one that fetches and parses to a non-empty URL list
// wins.
func (s *SitemapService) discoverFromCommonPaths(ctx context.Context, root *url.URL) []string {
	for _, path := range commonSitemapPaths {
		if ctx.Err() != nil {
			return nil
		}

		candidate := root.ResolveReference(&url.URL{Path: path}).String()
		urls := s.fetchAndParse(ctx, candidate, 0)
		if len(urls) == 0 {
			continue
		}

		seen := make(map[string]bool)
		out := make([]string, 0, len(urls))
		for _, u := range urls {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
		return out
	}
	return nil
}

// fetchAndParse fetches one sitemap document and returns its content
// URLs in document order, recursing into nested sitemaps when the
// document is a sitemap index. Fetch failures, empty bodies, and
// malformed XML all yield an empty result, never an error: a single bad
// branch must not abort discovery.
func (s *SitemapService) fetchAndParse(ctx context.Context, sitemapURL string, depth int) []string {
	if depth >= maxSitemapDepth || ctx.Err() != nil {
		return nil
	}

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil || strings.TrimSpace(body) == "" {
		return nil
	}

	locs, isIndex, err := ParseSitemapXML(body)
	if err != nil {
		return nil
	}

	if isIndex {
		var all []string
		for _, loc := range locs {
			all = append(all, s.fetchAndParse(ctx, loc, depth+1)...)
		}
		return all
	}
	return locs
}

// ParseSitemapXML parses a sitemap document and returns its <loc>
// entries in document order. isIndex reports whether the document is a
// sitemap index: in that case the returned entries are nested sitemap
// URLs (every <loc> ending in .xml) to be fetched recursively; for a
// regular urlset the entries are content URLs (every <loc> NOT ending
// in .xml). Both namespaced and bare tag names are tolerated.
func ParseSitemapXML(content string) (locs []string, isIndex bool, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, false, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, false, fmt.Errorf("empty sitemap XML")
	}

	// etree's Tag holds the local name, so namespaced documents
	// compare the same as bare ones.
	isIndex = root.Tag == "sitemapindex"

	var all []string
	collectLocs(root, &all)

	for _, loc := range all {
		xml := strings.HasSuffix(strings.ToLower(loc), ".xml")
		if isIndex == xml {
			locs = append(locs, loc)
		}
	}
	return locs, isIndex, nil
}

// collectLocs appends the trimmed text of every <loc> element under el,
// in document order.
func collectLocs(el *etree.Element, out *[]string) {
	for _, child := range el.ChildElements() {
		if child.Tag == "loc" {
			if text := strings.TrimSpace(child.Text()); text != "" {
				*out = append(*out, text)
			}
			continue
		}
		collectLocs(child, out)
	}
}

// ParseRobotsSitemaps extracts every Sitemap: directive from a
// robots.txt body. The match is case-insensitive and the line is split
// on the first colon only, tolerating URLs that contain colons.
func ParseRobotsSitemaps(robots string) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(robots))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps
}
