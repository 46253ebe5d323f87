package main

import (
	"fmt"

	"github.com/fwojciec/dealscan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	items, err := deps.History.FindItems(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses yet. Use 'dealscan analyze' to run one.")
		return nil
	}

	for _, item := range items {
		verdict := ""
		if item.Result != nil {
			verdict = item.Result.Verdict
		}
		fmt.Fprintf(deps.Stdout, "%s  %-30s %s\n",
			item.CreatedAt.Format("2006-01-02 15:04"), item.Product, verdict)

		if c.Full && item.Result != nil {
			if item.Result.AskingPrice != "" {
				fmt.Fprintf(deps.Stdout, "    asking %s", item.Result.AskingPrice)
				if item.Result.MaxToPay != "" {
					fmt.Fprintf(deps.Stdout, ", max %s", item.Result.MaxToPay)
				}
				fmt.Fprintln(deps.Stdout)
			}
			if item.Result.FinalVerdict != "" {
				fmt.Fprintf(deps.Stdout, "    %s\n", item.Result.FinalVerdict)
			}
		}
	}

	return nil
}
