package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/penwyp/yt-slicer/internal/config"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/spf13/cobra"
)

var writeConfig bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store with default settings",
	Long: `Create the store and write the defaults (recording off, no timestamps).
Existing values are never overwritten, so running init again is safe.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&writeConfig, "write-config", false,
		"Also write the effective configuration to the config file if it does not exist")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		wrote, err := storage.EnsureDefaults(ctx, a.store)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		out := cmd.OutOrStdout()
		if wrote {
			fmt.Fprintf(out, "Initialized store in %s\n", a.dataDir)
		} else {
			fmt.Fprintf(out, "Store in %s already initialized\n", a.dataDir)
		}

		if !writeConfig {
			return nil
		}
		path := expandPath(configPath)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Config %s already exists, left unchanged\n", path)
			return nil
		}
		if err := config.Save(path, a.cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote config to %s\n", path)
		return nil
	})
}
