package main

import (
	"fmt"

	"github.com/fwojciec/dealscan"
)

// Run executes the keys command. With no flags it reports which keys are
// configured; key material is never echoed back.
func (c *KeysCmd) Run(deps *Dependencies) error {
	if c.Gemini != "" {
		if err := deps.Settings.Set(deps.Ctx, dealscan.SettingGeminiKey, c.Gemini); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Stored Gemini API key")
	}
	if c.Serp != "" {
		if err := deps.Settings.Set(deps.Ctx, dealscan.SettingSerpKey, c.Serp); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dealscan.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Stored SerpAPI key")
	}
	if c.Gemini != "" || c.Serp != "" {
		return nil
	}

	printKeyStatus(deps, "Gemini", dealscan.SettingGeminiKey)
	printKeyStatus(deps, "SerpAPI", dealscan.SettingSerpKey)
	return nil
}

func printKeyStatus(deps *Dependencies, name, key string) {
	_, err := deps.Settings.Get(deps.Ctx, key)
	status := "configured"
	if err != nil {
		status = "not set"
	}
	fmt.Fprintf(deps.Stdout, "%-8s %s\n", name, status)
}
