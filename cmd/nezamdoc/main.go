package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/docx"
	"github.com/rashidq/nezamdoc/fs"
	"github.com/rashidq/nezamdoc/goquery"
	"github.com/rashidq/nezamdoc/harvest"
	"github.com/rashidq/nezamdoc/pdfpage"
	"github.com/rashidq/nezamdoc/rod"
	nezamslog "github.com/rashidq/nezamdoc/slog"
	"github.com/rashidq/nezamdoc/sqlite"
	"github.com/rashidq/nezamdoc/yaml"
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
	RunService nezamdoc.RunService
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nezamdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nezamdoc --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the command name, so resolve it from the
	// parsed context rather than from args[0].
	cmd := kongCtx.Command()
	if i := strings.IndexByte(cmd, ' '); i >= 0 {
		cmd = cmd[:i]
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Counter = &pdfpage.Counter{}

	// Site profiles are only needed by commands that touch a portal.
	switch cmd {
	case "run", "discover", "extract", "sites":
		cfg, err := yaml.Find(cli.Config)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: pass --config or place %s in the working directory\n", yaml.DefaultConfigName)
			return fmt.Errorf("failed to load site profiles: %w", err)
		}
		deps.Config = cfg
	}

	// Commands that record or read harvest history open the database.
	switch cmd {
	case "run", "extract", "history":
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEZAMDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	// Wire the browser pipeline for commands that harvest.
	var siteName string
	var headed bool
	switch cmd {
	case "run":
		siteName, headed = cli.Run.Site, cli.Run.Headed
	case "discover":
		siteName, headed = cli.Discover.Site, cli.Discover.Headed
	case "extract":
		siteName, headed = cli.Extract.Site, cli.Extract.Headed
	}

	if siteName != "" {
		site, err := deps.Config.Site(siteName)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: run 'nezamdoc sites' to list configured sites\n")
			return err
		}

		browser, err := rod.NewBrowser(rod.WithHeadless(!headed))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		rodPage, err := browser.NewPage(site.Locale)
		if err != nil {
			return fmt.Errorf("failed to open page: %w", err)
		}
		page := rod.NewLoggingPage(rodPage, logger)

		manifests := fs.NewManifestStore(site.ManifestDir, site.ManifestName)

		deps.Pipeline = &Pipeline{
			Site:            site,
			DefaultManifest: manifests.Path(),
			Runner: &harvest.Runner{
				Discoverer: nezamslog.NewLoggingDiscoverer(harvest.DiscovererForSite(page, site, logger), logger),
				Manifests:  nezamslog.NewLoggingManifestStore(manifests, logger),
				Harvester: &harvest.Harvester{
					Page:    page,
					Locator: harvest.ForSite(page, site),
					Cleaner: goquery.NewCleaner(site.NoiseSelectors, goquery.RulesFromSpecs(site.Repairs)...),
					Writer:  nezamslog.NewLoggingDocumentWriter(docx.NewWriter(site.Font), logger),
					Site:    site,
				},
				Runs:   deps.Runs,
				Logger: logger,
			},
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("NEZAMDOC_DB"); path != "" {
		return path
	}
	dir := filepath.Join(xdg.DataHome, "nezamdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "nezamdoc.db")
}
