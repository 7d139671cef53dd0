package siteqa

import "context"

// Page represents a fetched page before cleaning. It is created by the
// fetch step and consumed immediately by the cleaner; the raw HTML is
// not persisted beyond the session's raw_html.json artifact.
type Page struct {
	URL     string `json:"page_url"`
	RawHTML string `json:"raw_html"`
}

// MarkdownPage is a cleaned page ready for chunking and embedding.
type MarkdownPage struct {
	PageURL     string `json:"page_url"`
	PageName    string `json:"page_name"`
	Markdown    string `json:"markdown_content"`
	ContentHash string `json:"content_hash,omitempty"`
}

// Site is the cleaned-markdown artifact for a scraped site. It is the
// sole input of the embedding stage.
type Site struct {
	Website  string          `json:"website"`
	SiteName string          `json:"site_name"`
	Pages    []*MarkdownPage `json:"pages"`
}

// SiteStore persists cleaned-markdown site artifacts in a shared
// directory keyed by {domain}__{session_id}.
type SiteStore interface {
	// SaveSite writes the artifact for a session. Returns the artifact
	// file name.
	SaveSite(ctx context.Context, sessionID string, site *Site) (string, error)

	// LoadSite reads an artifact by file name.
	// Returns ENOTFOUND if it does not exist.
	LoadSite(ctx context.Context, name string) (*Site, error)

	// ListSites returns all artifact file names, newest first.
	ListSites(ctx context.Context) ([]string, error)
}
