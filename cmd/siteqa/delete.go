package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return siteqa.Errorf(siteqa.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Index.DeleteByDomain(deps.Ctx, c.Domain); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted indexed chunks for %q\n", c.Domain)
	return nil
}
