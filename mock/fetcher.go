// Package mock provides function-field mock implementations of the
// siteqa interfaces for use in tests.
package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of siteqa.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ siteqa.Fetcher = (*SerializedFetcher)(nil)
var _ siteqa.Serialized = (*SerializedFetcher)(nil)

// SerializedFetcher is a mock fetcher that reports a shared browser
// context, forcing callers to serialize page fetches.
type SerializedFetcher struct {
	Fetcher
}

func (f *SerializedFetcher) Serialized() bool { return true }
