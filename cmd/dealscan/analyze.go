package main

import (
	"fmt"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	doc, err := deps.Opener.Open(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
		return err
	}

	progress := func(event analyze.ProgressEvent) {
		switch event.Type {
		case analyze.ProgressExtracted:
			fmt.Fprintf(deps.Stdout, "  Extracted %q\n", event.Detail)
		case analyze.ProgressIdentified:
			fmt.Fprintf(deps.Stdout, "  Identified as %s\n", event.Detail)
		case analyze.ProgressMarketChecked:
			fmt.Fprintln(deps.Stdout, "  Checked market prices")
		case analyze.ProgressWarning:
			if event.Err != nil {
				fmt.Fprintf(deps.Stderr, "  warn: %s: %v\n", event.Detail, event.Err)
			} else {
				fmt.Fprintf(deps.Stderr, "  warn: %s\n", event.Detail)
			}
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, doc, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
		return err
	}

	printResult(deps, result)

	if identity := deps.Session.Identity(); identity != "" {
		fmt.Fprintf(deps.Stdout, "\nSold comps: %s\n", dealscan.SoldCompsURL(identity))
	}

	return nil
}

// printResult renders the verdict. All fields are optional; empty ones
// are skipped.
func printResult(deps *Dependencies, result *dealscan.AnalysisResult) {
	fmt.Fprintln(deps.Stdout)
	if result.Verdict != "" {
		fmt.Fprintf(deps.Stdout, "%s", result.Verdict)
		if result.FinalVerdict != "" {
			fmt.Fprintf(deps.Stdout, " / %s", result.FinalVerdict)
		}
		fmt.Fprintln(deps.Stdout)
	}

	rows := []struct{ label, value string }{
		{"Product", result.ExactProduct},
		{"Asking", result.AskingPrice},
		{"New retail", result.NewRetailPrice},
		{"Retail link", result.NewRetailLink},
		{"Used average", result.UsedMarketAverage},
		{"Ideal offer", result.IdealOffer},
		{"Realistic offer", result.RealisticOffer},
		{"Max to pay", result.MaxToPay},
		{"Est. profit", result.EstimatedProfit},
	}
	for _, row := range rows {
		if row.value != "" {
			fmt.Fprintf(deps.Stdout, "  %-16s %s\n", row.label, row.value)
		}
	}

	if result.Pros != "" {
		fmt.Fprintf(deps.Stdout, "\n  Pros: %s\n", result.Pros)
	}
	if result.Cons != "" {
		fmt.Fprintf(deps.Stdout, "  Cons: %s\n", result.Cons)
	}
	if result.Message != "" {
		fmt.Fprintf(deps.Stdout, "\n  Suggested message:\n  %s\n", result.Message)
	}
}
