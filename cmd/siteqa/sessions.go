package main

import (
	"fmt"

	"github.com/mstolarski/siteqa"
)

// Run executes the sessions list command.
func (c *SessionsListCmd) Run(deps *Dependencies) error {
	ids, err := deps.Sessions.ListSessions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions found. Use 'siteqa scrape' to create one.")
		return nil
	}

	for _, id := range ids {
		session, err := deps.Sessions.FindSessionByID(deps.Ctx, id)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", id, siteqa.ErrorMessage(err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %-12s  %d/%d  %s\n",
			session.ID, session.Status, session.PagesScraped, session.TotalPages, session.URL)
	}

	return nil
}

// Run executes the sessions show command.
func (c *SessionsShowCmd) Run(deps *Dependencies) error {
	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Session:  %s\n", session.ID)
	fmt.Fprintf(deps.Stdout, "Status:   %s\n", session.Status)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", session.URL)
	fmt.Fprintf(deps.Stdout, "Mode:     %s\n", session.Mode)
	if session.Purpose != "" {
		fmt.Fprintf(deps.Stdout, "Purpose:  %s\n", session.Purpose)
	}
	fmt.Fprintf(deps.Stdout, "Pages:    %d/%d scraped\n", session.PagesScraped, session.TotalPages)
	fmt.Fprintf(deps.Stdout, "Created:  %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.ErrorMessage != "" {
		fmt.Fprintf(deps.Stdout, "Error:    %s\n", session.ErrorMessage)
	}

	if len(session.Sources) > 0 {
		fmt.Fprintf(deps.Stdout, "\nSources (%d):\n", len(session.Sources))
		for _, u := range session.Sources {
			fmt.Fprintf(deps.Stdout, "  %s\n", u)
		}
	}

	return nil
}

// Run executes the sessions delete command.
func (c *SessionsDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return siteqa.Errorf(siteqa.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Sessions.DeleteSession(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted session %q\n", c.ID)
	return nil
}
