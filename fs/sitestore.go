package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mstolarski/siteqa"
)

var _ siteqa.SiteStore = (*SiteStore)(nil)

// SiteStore keeps cleaned-markdown site artifacts as
// {domain}__{session_id}.json files in a shared directory. The artifacts
// are the handoff point between scraping and embedding: a scrape writes
// one, the embed stage reads them back.
type SiteStore struct {
	dir string
}

// NewSiteStore creates a SiteStore rooted at dir, creating the directory
// if needed.
func NewSiteStore(dir string) (*SiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "creating artifact directory: %v", err)
	}
	return &SiteStore{dir: dir}, nil
}

// SaveSite implements siteqa.SiteStore. Pages without a content hash get
// one computed from their markdown, so re-scrapes of unchanged pages are
// recognizable without diffing content.
func (s *SiteStore) SaveSite(ctx context.Context, sessionID string, site *siteqa.Site) (string, error) {
	host := siteqa.HostOf(site.Website)
	if host == "" {
		return "", siteqa.Errorf(siteqa.EINVALID, "site has no valid website URL")
	}

	for _, page := range site.Pages {
		if page.ContentHash == "" {
			page.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(page.Markdown))
		}
	}

	name := host + "__" + sessionID + ".json"
	if err := writeJSON(filepath.Join(s.dir, name), site); err != nil {
		return "", siteqa.Errorf(siteqa.EINTERNAL, "writing artifact %s: %v", name, err)
	}
	return name, nil
}

// LoadSite implements siteqa.SiteStore.
func (s *SiteStore) LoadSite(ctx context.Context, name string) (*siteqa.Site, error) {
	var site siteqa.Site
	if err := readJSON(filepath.Join(s.dir, name), &site); err != nil {
		if os.IsNotExist(err) {
			return nil, siteqa.Errorf(siteqa.ENOTFOUND, "artifact %q not found", name)
		}
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "reading artifact %s: %v", name, err)
	}
	return &site, nil
}

// ListSites implements siteqa.SiteStore. Artifacts are ordered newest
// first by modification time.
func (s *SiteStore) ListSites(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "listing artifacts: %v", err)
	}

	type artifact struct {
		name    string
		modTime int64
	}
	artifacts := []artifact{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") || entry.Name()[0] == '.' {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, artifact{entry.Name(), info.ModTime().UnixNano()})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		if artifacts[i].modTime != artifacts[j].modTime {
			return artifacts[i].modTime > artifacts[j].modTime
		}
		return artifacts[i].name > artifacts[j].name
	})

	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.name
	}
	return names, nil
}
