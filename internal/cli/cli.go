// Package cli implements the tableyeah command-line interface.
//
// This package provides commands for computing timeline layouts from day
// sheets, inspecting reservation conflicts, serving the engine over
// HTTP, and browsing a day interactively in the terminal. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a lane-packed layout from a day-sheet JSON file
//   - conflicts: Export a day's double-bookings as DOT or SVG
//   - serve: Run the HTTP API
//   - tui: Browse a day sheet interactively (pan, zoom, drag)
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/KyleKincer/tableyeah/pkg/buildinfo"
	"github.com/KyleKincer/tableyeah/pkg/cache"
	"github.com/KyleKincer/tableyeah/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "tableyeah"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tableyeah",
		Short:        "Tableyeah lays out restaurant reservations on a zoomable timeline",
		Long:         `Tableyeah converts a day's reservations into a conflict-aware, lane-packed timeline layout, and drives the interactive floor view built on top of it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/tableyeah/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.conflictsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves and loads the configuration file.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	return config.Load(path)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the layout cache for CLI use. Failure to resolve a
// cache directory silently degrades to no caching.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tableyeah/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
