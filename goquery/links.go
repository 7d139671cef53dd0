package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mstolarski/siteqa"
)

// selectorConfig pairs a CSS selector with the priority assigned to the
// links it matches.
type selectorConfig struct {
	selector string
	priority siteqa.LinkPriority
}

// linkSelectors are tried in order. Duplicate URLs keep the highest
// priority seen.
var linkSelectors = []selectorConfig{
	{"nav a[href]", siteqa.PriorityNavigation},
	{"main a[href], article a[href]", siteqa.PriorityContent},
	{"a[href]", siteqa.PriorityFallback},
}

// resourceExtensions lists URL suffixes that identify non-HTML resources
// and are excluded from link discovery.
var resourceExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp",
	".css", ".js", ".json",
	".pdf", ".doc", ".docx", ".xls", ".xlsx",
	".zip", ".tar", ".gz",
	".mp4", ".avi", ".mov",
	".mp3", ".wav",
	".xml",
}

var _ siteqa.LinkSelector = (*LinkSelector)(nil)

// LinkSelector extracts same-host page links from HTML for the crawl
// fallback used when a site publishes no sitemap.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks implements siteqa.LinkSelector. Links are deduplicated by
// normalized URL, keeping the highest-priority occurrence; document order
// of first occurrence is otherwise preserved. Links to other hosts, to
// non-HTML resources, and to the base URL itself are dropped.
func (s *LinkSelector) ExtractLinks(rawHTML string, baseURL string) ([]siteqa.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]int)
	var links []siteqa.DiscoveredLink

	for _, config := range linkSelectors {
		doc.Find(config.selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			if !isSameHost(base, resolved) || isResourceURL(resolved) {
				return
			}

			link := siteqa.DiscoveredLink{
				URL:      resolved,
				Priority: config.priority,
				Text:     strings.TrimSpace(sel.Text()),
			}

			if idx, ok := seen[resolved]; ok {
				if config.priority > links[idx].Priority {
					links[idx] = link
				}
				return
			}
			seen[resolved] = len(links)
			links = append(links, link)
		})
	}

	return links, nil
}

// resolveURL resolves href against base and normalizes the result.
// Returns empty string for unparseable hrefs and for links that resolve
// back to the base URL itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := siteqa.NormalizeURL(base.ResolveReference(ref).String())
	if resolved == siteqa.NormalizeURL(base.String()) {
		return ""
	}
	return resolved
}

// isSameHost reports whether resolved shares base's host. Exact match
// only, subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

// isResourceURL reports whether the URL path ends in a known non-HTML
// resource extension.
func isResourceURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range resourceExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// isNonHTTPLink reports whether href uses a scheme that cannot yield a
// page, such as javascript: or mailto:.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
