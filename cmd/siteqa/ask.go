package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question, c.TopK, searchFilter(c.Domain, c.Site))
	if err != nil {
		if siteqa.ErrorCode(err) == siteqa.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "error: no indexed content found. Use 'siteqa embed' to index a site first.")
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
