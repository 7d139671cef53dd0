package siteqa

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for deduplication and visited-tracking.
// The scheme and host are lowercased, the fragment is stripped, and a
// trailing slash is removed from the path (the root path is kept as "/").
// Query strings are preserved since query parameters may be semantically
// significant (e.g. pagination). Invalid URLs are returned unchanged.
//
// NormalizeURL is idempotent: two URLs differing only by the removed
// elements normalize to the same string.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.Path == "" {
		if u.Host != "" {
			u.Path = "/"
		}
	} else if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// DomainOf returns the scheme and host portion of a URL
// (e.g. "https://example.com"). Returns "" for unparseable URLs.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

// HostOf returns the lowercased host of a URL, without scheme or port
// manipulation. Returns "" for unparseable URLs.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// PageName derives a stable page identifier from a URL path.
// It uses the last non-empty path segment with its file extension
// stripped; if that segment is empty after stripping, the second-to-last
// segment is used. An empty path yields "home".
//
// Examples:
//
//	https://site.com/blog/my-post.html → "my-post"
//	https://site.com/blog/             → "blog"
//	https://site.com/                  → "home"
func PageName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "home"
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "home"
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	if idx := strings.LastIndex(last, "."); idx != -1 {
		last = last[:idx]
	}

	if last == "" && len(segments) > 1 {
		last = segments[len(segments)-2]
	}

	if last == "" {
		return "home"
	}
	return last
}
