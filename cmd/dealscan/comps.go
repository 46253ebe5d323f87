package main

import (
	"fmt"

	"github.com/fwojciec/dealscan"
)

// Run executes the comps command.
func (c *CompsCmd) Run(deps *Dependencies) error {
	query := c.Query
	if query == "" {
		query = deps.Session.Identity()
	}
	if query == "" {
		fmt.Fprintln(deps.Stderr, "error: no search term. Pass a query or run 'dealscan analyze' first.")
		return dealscan.Errorf(dealscan.EINVALID, "search term required")
	}

	fmt.Fprintln(deps.Stdout, dealscan.SoldCompsURL(query))
	return nil
}
