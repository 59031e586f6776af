package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/riftwatch/riftwatch/internal/cache"
	"github.com/riftwatch/riftwatch/internal/config"
	"github.com/riftwatch/riftwatch/internal/dashboard"
	"github.com/riftwatch/riftwatch/internal/logging"
	"github.com/riftwatch/riftwatch/internal/lolesports"
	"github.com/riftwatch/riftwatch/internal/resources"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for riftwatch.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Path to an extra config file." type:"path"`
	DataDir string           `help:"Override the data directory." type:"path"`

	Dashboard DashboardCmd `cmd:"" default:"1" help:"Open the schedule dashboard TUI."`
	Leagues   LeaguesCmd   `cmd:"" help:"Print the league list."`
	Clean     CleanCmd     `cmd:"" help:"Remove the on-disk cache."`
}

// loadConfig loads layered config from user and project paths, applies
// environment and flag overrides, and validates the result.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		config.UserConfigPath(),
		"riftwatch.yaml",
		c.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if c.DataDir != "" {
		cfg.Storage.DataDir = c.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DashboardCmd opens the interactive schedule dashboard.
type DashboardCmd struct{}

// Run builds real dependencies and launches the dashboard TUI.
func (d *DashboardCmd) Run(cli *CLI) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}

	cfg, err := cli.loadConfig()
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	log, closeLog, err := logging.Setup(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	defer func() { _ = closeLog() }()

	store := cache.NewStore(filepath.Join(cfg.Storage.DataDir, "cache"))
	manager := resources.NewManager(store, lolesports.NewClient(), log)

	m := dashboard.NewModel(manager, dashboard.Options{
		DefaultLeagues:  cfg.Leagues.Defaults,
		AutomaticReload: cfg.Leagues.AutomaticReload,
		SpoilResults:    cfg.Display.SpoilResults,
		SpoilMatches:    cfg.Display.SpoilMatches,
		Log:             log,
	})

	log.Info("starting dashboard", "version", version, "data_dir", cfg.Storage.DataDir)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}

// LeaguesCmd prints the league list to stdout, going through the same
// cache and freshness path as the dashboard.
type LeaguesCmd struct{}

// Run prints one league per line.
func (l *LeaguesCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return fmt.Errorf("leagues: %w", err)
	}

	store := cache.NewStore(filepath.Join(cfg.Storage.DataDir, "cache"))
	manager := resources.NewManager(store, lolesports.NewClient(), logging.Discard())

	leagues, ok := manager.Leagues(context.Background())
	if !ok {
		return fmt.Errorf("leagues: no data available (network down and nothing cached)")
	}
	for _, lg := range leagues {
		fmt.Printf("%-24s %s\n", lg.Name, lg.Region)
	}
	return nil
}

// CleanCmd removes the cache directory.
type CleanCmd struct{}

// Run deletes the on-disk cache. League selections and config are kept.
func (c *CleanCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	dir := filepath.Join(cfg.Storage.DataDir, "cache")
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean: removing %s: %w", dir, err)
	}
	fmt.Printf("removed %s\n", dir)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Vars{"version": version + " " + commit + " " + date},
		kong.Bind(&cli),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
