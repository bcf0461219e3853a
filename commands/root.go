package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/yt-slicer/internal/application/messaging"
	"github.com/penwyp/yt-slicer/internal/config"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Data path and backend, overriding the config file
	dataDir     string
	backendName string

	configPath string

	rootCmd = &cobra.Command{
		Use:   "yt-slicer",
		Short: "Mark and revisit timestamps while watching videos",
		Long: `yt-slicer records timestamps of the video you are watching, lets you jump
back to them and moves them in and out as CSV.

Recording is off by default and switched off again every time a watch
screen starts. Every command shares one store, so a toggle in one terminal
shows up in every other.

Examples:
  yt-slicer init                                       # Create the store and default settings
  yt-slicer watch "https://www.youtube.com/watch?v=id" # Open the overlay for a video
  yt-slicer toggle on                                  # Enable recording
  yt-slicer record --url "https://youtu.be/id" --at 1:30
  yt-slicer list --output json                         # Print timestamps as JSON
  yt-slicer export --out slices.csv                    # Write timestamps to CSV
  yt-slicer import slices.csv                          # Replace timestamps from CSV
  yt-slicer jump 00:01:30:000                          # Seek the running overlay`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Data directory (default from config, "+config.DefaultDir+")")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "",
		"Storage backend (file, sqlite)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile,
		"Config file path")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func Execute() error {
	return rootCmd.Execute()
}

// app is what a command needs after flags and config are resolved
type app struct {
	cfg     *config.Config
	dataDir string
	store   *storage.Store
}

// newApp loads the config, applies flag overrides, starts logging and opens
// the store
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(expandPath(configPath))
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := expandPath(cfg.DataDir)
	if err := ensureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Initialize logging
	if err := util.InitLogger(util.LoggerOptions{
		Level:          cfg.LogLevel,
		File:           filepath.Join(dir, "logs", "app.log"),
		Format:         util.LogFormat(cfg.LogFormat),
		DebugToConsole: debug,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	store, err := storage.Open(ctx, storage.Options{
		Backend:      cfg.Backend,
		DataDir:      dir,
		PollInterval: cfg.Poll(),
	})
	if err != nil {
		util.CloseLogger()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	util.LogDebug("Application ready.",
		util.F("dir", dir),
		util.F("backend", cfg.Backend))
	return &app{cfg: cfg, dataDir: dir, store: store}, nil
}

func (a *app) matcher() *videourl.Matcher {
	return videourl.NewMatcher(a.cfg.PlatformDomains...)
}

func (a *app) inboxDir() string {
	return filepath.Join(a.dataDir, messaging.DirName)
}

func (a *app) Close() error {
	err := a.store.Close()
	util.CloseLogger()
	return err
}

// withApp runs fn with a ready app and closes it afterwards
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// confirm asks a yes/no question on the command's streams, defaulting to no
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	return response == "y" || response == "Y"
}
