package main

import (
	"context"
	"io"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sessions     siteqa.SessionService
	Sites        siteqa.SiteStore
	Orchestrator *scrape.Orchestrator
	Indexer      *scrape.Indexer
	Index        siteqa.VectorIndex
	Embedder     siteqa.Embedder
	Asker        siteqa.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a website into a session"`
	Sessions SessionsCmd `cmd:"" help:"Inspect and manage scrape sessions"`
	Sites    SitesCmd    `cmd:"" help:"List stored site artifacts"`
	Embed    EmbedCmd    `cmd:"" help:"Embed a site artifact into the vector index"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about indexed content"`
	Search   SearchCmd   `cmd:"" help:"Search indexed chunks"`
	Delete   DeleteCmd   `cmd:"" help:"Delete indexed chunks for a domain"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string `arg:"" help:"Website URL to scrape"`
	Purpose     string `short:"p" help:"Extraction purpose; enables schema-driven data extraction"`
	SinglePage  bool   `help:"Scrape only the given URL"`
	Render      bool   `help:"Render pages in a headless browser before extraction"`
	Concurrency int    `short:"c" default:"3" help:"Concurrent fetch limit"`
}

// SessionsCmd groups the session management subcommands.
type SessionsCmd struct {
	List   SessionsListCmd   `cmd:"" default:"1" help:"List all sessions"`
	Show   SessionsShowCmd   `cmd:"" help:"Show session details"`
	Delete SessionsDeleteCmd `cmd:"" help:"Delete a session and its artifacts"`
}

// SessionsListCmd is the "sessions list" subcommand.
type SessionsListCmd struct{}

// SessionsShowCmd is the "sessions show" subcommand.
type SessionsShowCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// SessionsDeleteCmd is the "sessions delete" subcommand.
type SessionsDeleteCmd struct {
	ID    string `arg:"" help:"Session ID"`
	Force bool   `help:"Confirm deletion"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// EmbedCmd is the "embed" subcommand.
type EmbedCmd struct {
	Name      string `arg:"" help:"Site artifact name (see 'siteqa sites')"`
	ChunkSize int    `help:"Target chunk size in characters"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the indexed content"`
	TopK     int    `name:"top-k" default:"5" help:"Number of chunks to retrieve"`
	Domain   string `help:"Restrict retrieval to a domain"`
	Site     string `help:"Restrict retrieval to a site artifact"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	TopK   int    `name:"top-k" default:"5" help:"Number of results"`
	Domain string `help:"Restrict results to a domain"`
	Site   string `help:"Restrict results to a site artifact"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Domain string `arg:"" help:"Domain whose chunks to delete"`
	Force  bool   `help:"Confirm deletion"`
}

// searchFilter builds the retrieval filter from the shared domain/site
// flags. Nil means no filtering.
func searchFilter(domain, site string) *siteqa.SearchFilter {
	if domain == "" && site == "" {
		return nil
	}
	return &siteqa.SearchFilter{Domain: domain, SiteName: site}
}
