package main

import (
	"fmt"

	"github.com/fwojciec/dealscan"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return dealscan.Errorf(dealscan.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.History.DeleteItems(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "History cleared")
	return nil
}
