package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/analyze"
	"github.com/fwojciec/dealscan/gemini"
	"github.com/fwojciec/dealscan/goquery"
	dealhttp "github.com/fwojciec/dealscan/http"
	"github.com/fwojciec/dealscan/readability"
	"github.com/fwojciec/dealscan/rod"
	dealslog "github.com/fwojciec/dealscan/slog"
	"github.com/fwojciec/dealscan/sqlite"
	"github.com/fwojciec/dealscan/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	HistoryService  dealscan.HistoryService
	SettingsService dealscan.SettingsService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Session: &dealscan.Session{},
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dealscan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dealscan --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DEALSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel()}))

	m.HistoryService = sqlite.NewHistoryService(m.DB)
	m.SettingsService = sqlite.NewSettingsService(m.DB)
	deps.DB = m.DB
	deps.History = dealslog.NewLoggingHistoryService(m.HistoryService, logger)
	deps.Settings = m.SettingsService

	if cmd == "analyze" {
		geminiKey, err := resolveKey(ctx, m.SettingsService, "GEMINI_API_KEY", dealscan.SettingGeminiKey)
		if err != nil {
			return err
		}
		if geminiKey == "" {
			fmt.Fprintln(stderr, "No Gemini API key configured. Get one at https://aistudio.google.com/apikey and store it with 'dealscan keys --gemini KEY'")
			return dealscan.Errorf(dealscan.EUNAUTHORIZED, "Gemini API key not configured")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  geminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your Gemini API key is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		if cli.Analyze.Static {
			deps.Opener = dealhttp.NewStaticOpener()
		} else {
			opener, err := rod.NewOpener()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			deps.Opener = rod.NewLoggingOpener(opener, logger)
		}
		defer deps.Opener.Close()

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		// The generic fallback strategy mines page text through the
		// extraction chain when no marketplace-specific selectors apply.
		extractor := trafilatura.NewExtractor(readability.NewExtractor())
		registry := goquery.NewRegistry(goquery.NewDetector(), goquery.NewGenericStrategy(extractor))
		registerMarketplaceStrategies(registry)

		images := dealhttp.NewImageLoader()

		// The shopping index is optional: the pipeline degrades to a
		// comps-free analysis when no SerpAPI key is configured.
		var shopping dealscan.ShoppingIndex
		serpKey, err := resolveKey(ctx, m.SettingsService, "SERPAPI_KEY", dealscan.SettingSerpKey)
		if err != nil {
			return err
		}
		if serpKey != "" {
			shopping = dealslog.NewLoggingShoppingIndex(dealhttp.NewShoppingIndex(serpKey), logger)
		}

		deps.Pipeline = &analyze.Pipeline{
			Registry:   dealslog.NewLoggingRegistry(registry, goquery.NewDetector(), logger),
			Identifier: gemini.NewIdentifier(client, images),
			Shopping:   shopping,
			Analyzer:   gemini.NewAnalyzer(client, images),
			History:    deps.History,
			Settings:   m.SettingsService,
			Tokens:     tokenCounter,
			Session:    deps.Session,
			MaxImages:  cli.Analyze.Images,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("DEALSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dealscan.db"
	}
	dir := filepath.Join(home, ".dealscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "dealscan.db")
}

func logLevel() slog.Level {
	if os.Getenv("DEALSCAN_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// resolveKey returns the API key from the environment, falling back to the
// stored setting. A missing key resolves to the empty string.
func resolveKey(ctx context.Context, settings dealscan.SettingsService, envVar, settingKey string) (string, error) {
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	key, err := settings.Get(ctx, settingKey)
	if err != nil {
		if dealscan.ErrorCode(err) == dealscan.ENOTFOUND {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

// registerMarketplaceStrategies registers all marketplace-specific extraction strategies with the registry.
func registerMarketplaceStrategies(registry dealscan.StrategyRegistry) {
	registry.Register(dealscan.MarketplaceFacebook, goquery.NewFacebookStrategy())
	registry.Register(dealscan.MarketplaceCraigslist, goquery.NewCraigslistStrategy())
	registry.Register(dealscan.MarketplaceOfferUp, goquery.NewOfferUpStrategy())
}
