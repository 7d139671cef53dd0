package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/fs"
	"github.com/mstolarski/siteqa/gemini"
	"github.com/mstolarski/siteqa/goquery"
	"github.com/mstolarski/siteqa/htmltomarkdown"
	sitehttp "github.com/mstolarski/siteqa/http"
	"github.com/mstolarski/siteqa/readability"
	"github.com/mstolarski/siteqa/rod"
	"github.com/mstolarski/siteqa/scrape"
	siteslog "github.com/mstolarski/siteqa/slog"
	"github.com/mstolarski/siteqa/sqlite"
	"github.com/mstolarski/siteqa/trafilatura"
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
	// Directory holding session and site artifacts. Set before calling Run().
	DataDir string

	// Vector index database path. Set before calling Run().
	DBPath string

	// SQLite database backing the vector index.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SessionService siteqa.SessionService
	SiteStore      siteqa.SiteStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir: defaultDataDir(),
		DBPath:  defaultDBPath(),
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
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteqa"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteqa --help' to see available commands")
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

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Session and site artifacts live on the filesystem and are needed
	// by every command.
	sessions, err := fs.NewSessionService(filepath.Join(m.DataDir, "sessions"))
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEQA_DATA to use a different data directory\n")
		return fmt.Errorf("failed to open session store at %q: %w", m.DataDir, err)
	}
	sites, err := fs.NewSiteStore(filepath.Join(m.DataDir, "sites"))
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEQA_DATA to use a different data directory\n")
		return fmt.Errorf("failed to open site store at %q: %w", m.DataDir, err)
	}
	m.SessionService = sessions
	m.SiteStore = sites
	deps.Sessions = sessions
	deps.Sites = sites

	// The vector index is only opened for commands that touch it.
	if cmd == "embed" || cmd == "ask" || cmd == "search" || cmd == "delete" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITEQA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		deps.Index = siteslog.NewLoggingVectorIndex(sqlite.NewVectorIndex(m.DB), logger)
	}
	defer m.Close()

	// Commands that call the Gemini API share one client.
	var client *genai.Client
	if cmd == "embed" || cmd == "ask" || cmd == "search" || (cmd == "scrape" && cli.Scrape.Purpose != "") {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	}

	if cmd == "embed" || cmd == "ask" || cmd == "search" {
		deps.Embedder = gemini.NewEmbedder(client)
	}
	if cmd == "ask" {
		deps.Asker = gemini.NewAsker(client, deps.Embedder, deps.Index)
	}
	if cmd == "embed" {
		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Indexer = &scrape.Indexer{
			Sites:        sites,
			Embedder:     deps.Embedder,
			Index:        deps.Index,
			TokenCounter: tokenCounter,
			Logger:       logger,
		}
	}

	if cmd == "scrape" {
		var fetcher siteqa.Fetcher
		if cli.Scrape.Render {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = sitehttp.NewFetcher()
		}
		fetcher = siteslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		// Rate limit all site traffic (1 request per second per domain).
		rateLimiter := scrape.NewDomainLimiter(1.0)
		sitemaps := siteslog.NewLoggingSitemapService(sitehttp.NewSitemapService(fetcher), logger)

		deps.Orchestrator = &scrape.Orchestrator{
			Sessions: sessions,
			Sites:    sites,
			Discoverer: &scrape.Discoverer{
				Sitemaps:    sitemaps,
				Fetcher:     fetcher,
				Links:       goquery.NewLinkSelector(),
				RateLimiter: rateLimiter,
			},
			Fetcher: fetcher,
			Cleaner: siteqa.CleanerChain{
				goquery.NewCleaner(),
				trafilatura.NewCleaner(htmltomarkdown.NewConverter()),
				readability.NewCleaner(htmltomarkdown.NewConverter()),
			},
			RateLimiter: rateLimiter,
			Concurrency: cli.Scrape.Concurrency,
			Logger:      logger,
		}
		if cli.Scrape.Purpose != "" {
			deps.Orchestrator.Extractor = gemini.NewExtractor(client)
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting.
const tokenizerModel = "gemini-2.5-flash"

func defaultDataDir() string {
	if path := os.Getenv("SITEQA_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteqa-data"
	}
	return filepath.Join(home, ".siteqa")
}

func defaultDBPath() string {
	if path := os.Getenv("SITEQA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteqa.db"
	}
	dir := filepath.Join(home, ".siteqa")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteqa.db")
}
