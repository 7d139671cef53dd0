package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	names, err := deps.Sites.ListSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No site artifacts found. Use 'siteqa scrape' to create one.")
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}

	return nil
}
