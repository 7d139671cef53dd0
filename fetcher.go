package siteqa

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits outgoing requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}

// Serialized reports whether a fetcher requires one-at-a-time use.
// A browser-backed fetcher owns a single shared browser context that
// cannot safely multiplex independent navigations, so callers must not
// fetch concurrently through it. Fetchers that do not implement this
// interface are assumed safe for concurrent use.
type Serialized interface {
	Serialized() bool
}
