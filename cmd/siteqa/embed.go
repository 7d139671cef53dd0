package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
)

// Run executes the embed command.
func (c *EmbedCmd) Run(deps *Dependencies) error {
	if c.ChunkSize > 0 {
		deps.Indexer.ChunkSize = c.ChunkSize
	}

	result, err := deps.Indexer.EmbedSite(deps.Ctx, c.Name, func(pageURL string, chunks int) {
		fmt.Fprintf(deps.Stdout, "  %s: %d chunks\n", pageURL, chunks)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Embedded %d pages (%d chunks", result.Pages, result.Chunks)
	if result.Tokens > 0 {
		fmt.Fprintf(deps.Stdout, ", %d tokens", result.Tokens)
	}
	if result.Truncated > 0 {
		fmt.Fprintf(deps.Stdout, ", %d truncated", result.Truncated)
	}
	fmt.Fprintln(deps.Stdout, ")")
	return nil
}
