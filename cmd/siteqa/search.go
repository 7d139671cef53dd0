package main

import (
	"fmt"
	"strings"

	"github.com/mstolarski/siteqa"
)

// searchSnippetLen bounds how much chunk text a search result prints.
const searchSnippetLen = 120

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	embedding, err := deps.Embedder.Embed(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	results, err := deps.Index.Query(deps.Ctx, embedding, c.TopK, searchFilter(c.Domain, c.Site))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results. Use 'siteqa embed' to index a site first.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%.3f  %s\n      %s\n", r.Score, r.Metadata.PageURL, snippet(r.Text))
	}

	return nil
}

// snippet collapses a chunk to a single display line.
func snippet(text string) string {
	line := strings.Join(strings.Fields(text), " ")
	if len(line) > searchSnippetLen {
		line = line[:searchSnippetLen] + "..."
	}
	return line
}
