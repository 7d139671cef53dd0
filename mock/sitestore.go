package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.SiteStore = (*SiteStore)(nil)

// SiteStore is a mock implementation of siteqa.SiteStore.
type SiteStore struct {
	SaveSiteFn  func(ctx context.Context, sessionID string, site *siteqa.Site) (string, error)
	LoadSiteFn  func(ctx context.Context, name string) (*siteqa.Site, error)
	ListSitesFn func(ctx context.Context) ([]string, error)
}

func (s *SiteStore) SaveSite(ctx context.Context, sessionID string, site *siteqa.Site) (string, error) {
	return s.SaveSiteFn(ctx, sessionID, site)
}

func (s *SiteStore) LoadSite(ctx context.Context, name string) (*siteqa.Site, error) {
	return s.LoadSiteFn(ctx, name)
}

func (s *SiteStore) ListSites(ctx context.Context) ([]string, error) {
	return s.ListSitesFn(ctx)
}
