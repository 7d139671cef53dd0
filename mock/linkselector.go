package mock

import "github.com/mstolarski/siteqa"

var _ siteqa.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of siteqa.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]siteqa.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]siteqa.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
