package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	mode := siteqa.ModeWholeSite
	if c.SinglePage {
		mode = siteqa.ModeSinglePage
	}
	req := &siteqa.ScrapeRequest{
		URL:     c.URL,
		Purpose: c.Purpose,
		Mode:    mode,
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case scrape.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
		}
	}

	session, err := deps.Orchestrator.Run(deps.Ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	if session.Status == siteqa.StatusFailed {
		fmt.Fprintf(deps.Stderr, "error: %s\n", session.ErrorMessage)
		return siteqa.Errorf(siteqa.EINTERNAL, "scrape failed: %s", session.ErrorMessage)
	}

	fmt.Fprintf(deps.Stdout, "Session %s completed: scraped %d of %d pages\n",
		session.ID, session.PagesScraped, session.TotalPages)
	if c.Purpose != "" && session.Extracted == nil {
		fmt.Fprintln(deps.Stderr, "warning: data extraction produced no output")
	}
	return nil
}
