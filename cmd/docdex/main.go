package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/gemini"
	"github.com/fwojciec/docdex/goquery"
	"github.com/fwojciec/docdex/hnsw"
	dochttp "github.com/fwojciec/docdex/http"
	"github.com/fwojciec/docdex/index"
	"github.com/fwojciec/docdex/lru"
	"github.com/fwojciec/docdex/readability"
	docslog "github.com/fwojciec/docdex/slog"
	"github.com/fwojciec/docdex/sqlite"
	"github.com/fwojciec/docdex/static"
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
	// Cache directory. Set before calling Run().
	CacheDir string

	// SQLite database, opened only when the sqlite cache backend is used.
	DB *sqlite.DB

	// Embedder held for shutdown.
	Embedder docdex.Embedder
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CacheDir: defaultCacheDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Embedder != nil {
		if err := m.Embedder.Close(); err != nil {
			return err
		}
	}
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
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	cache, err := m.openCache(cli.Cache, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	embedder, err := m.openEmbedder(ctx, cli.Embedder, logger)
	if err != nil {
		return err
	}
	m.Embedder = embedder

	fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), logger)

	var extractor docdex.Extractor = goquery.NewExtractor()
	if cli.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}

	deps.Service = &index.Service{
		Resolver: &crawl.Resolver{Fetcher: fetcher, Logger: logger},
		Crawler: &crawl.Engine{
			Fetcher:   fetcher,
			Extractor: extractor,
			Links:     goquery.NewExtractor(),
			Logger:    logger,
			Limiter:   crawl.NewDomainLimiter(1.0),
			Sitemaps:  dochttp.NewSitemapService(nil),
			MaxPages:  cli.MaxPages,
		},
		Cache:  cache,
		Index:  hnsw.NewIndex(embedder),
		Logger: logger,
	}

	return kongCtx.Run(deps)
}

// openCache selects the bundle cache backend.
func (m *Main) openCache(backend string, logger *slog.Logger) (docdex.BundleCache, error) {
	switch backend {
	case "sqlite":
		m.DB = sqlite.NewDB(filepath.Join(m.CacheDir, "docdex.db"))
		if err := os.MkdirAll(m.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %q: %w", m.CacheDir, err)
		}
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		return sqlite.NewBundleCache(m.DB), nil
	case "json":
		return fs.NewBundleCache(m.CacheDir), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// openEmbedder selects the embedding strategy. The choice is made once at
// startup; a failing strategy surfaces errors rather than falling back.
func (m *Main) openEmbedder(ctx context.Context, strategy string, logger *slog.Logger) (docdex.Embedder, error) {
	var embedder docdex.Embedder
	switch strategy {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		embedder = gemini.NewEmbedder(client)
	case "static":
		embedder = static.NewEmbedder()
	default:
		return nil, fmt.Errorf("unknown embedder %q", strategy)
	}

	cached, err := lru.NewEmbedder(embedder, 0)
	if err != nil {
		return nil, err
	}
	return docslog.NewLoggingEmbedder(cached, logger), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultCacheDir() string {
	if dir := os.Getenv("DOCDEX_CACHE"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docs_cache"
	}
	return filepath.Join(home, ".docdex")
}
