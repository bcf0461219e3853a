package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/yt-slicer/internal/application/popup"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether recording is enabled and how many timestamps exist",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [on|off]",
	Short: "Switch recording on or off",
	Long: `Switch recording on or off. Without an argument the current state is
flipped. Running overlays pick the change up immediately.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runToggle,
}

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Open the interactive recording switch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ctx, cancel := signalContext(ctx)
			defer cancel()
			return popup.Run(ctx, a.store)
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, toggleCmd, popupCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		snap, err := a.store.Get(ctx, model.AllKeys...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recording: %s\n", enabledWord(snap.Enabled))
		fmt.Fprintf(out, "Timestamps: %d\n", len(snap.RecordsOrEmpty()))
		fmt.Fprintf(out, "Store: %s (%s)\n", a.dataDir, a.cfg.Backend)
		return nil
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		ctrl := popup.NewController(a.store)
		if err := ctrl.Load(ctx); err != nil {
			return err
		}

		var enabled bool
		if len(args) == 0 {
			v, err := ctrl.Toggle(ctx)
			if err != nil {
				return err
			}
			enabled = v
		} else {
			v, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := ctrl.Set(ctx, v); err != nil {
				return err
			}
			enabled = v
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recording %s\n", enabledWord(enabled))
		return nil
	})
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "enable", "enabled":
		return true, nil
	case "off", "false", "0", "disable", "disabled":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
