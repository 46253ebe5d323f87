package main

import (
	"context"
	"io"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/analyze"
	"github.com/fwojciec/dealscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Opener   dealscan.DocumentOpener
	Pipeline *analyze.Pipeline
	History  dealscan.HistoryService
	Settings dealscan.SettingsService
	Session  *dealscan.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a marketplace listing"`
	Comps   CompsCmd   `cmd:"" help:"Print an eBay sold-comps search link"`
	History HistoryCmd `cmd:"" help:"Show past analyses"`
	Clear   ClearCmd   `cmd:"" name:"clear-history" help:"Clear analysis history"`
	Keys    KeysCmd    `cmd:"" help:"Show or store API keys"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string `arg:"" help:"Listing URL"`
	Static bool   `short:"s" help:"Fetch over plain HTTP instead of a rendered browser session"`
	Images int    `name:"max-images" short:"i" default:"10" help:"Image harvest limit"`
}

// CompsCmd is the "comps" subcommand.
type CompsCmd struct {
	Query string `arg:"" optional:"" help:"Search term (defaults to the last analyzed product)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Full bool `help:"Show full analysis details"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// KeysCmd is the "keys" subcommand.
type KeysCmd struct {
	Gemini string `help:"Store the Gemini API key"`
	Serp   string `help:"Store the SerpAPI key"`
}
