package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/yt-slicer/internal/application/messaging"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/timecode"
	"github.com/spf13/cobra"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <time>",
	Short: "Seek the running overlay to a position",
	Long: `Send a jump-to-time message to the running overlay. The time is either
a number of seconds ("90", "12.5"), MM:SS, HH:MM:SS or HH:MM:SS:mmm.`,
	Args: cobra.ExactArgs(1),
	RunE: runJump,
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}

func runJump(cmd *cobra.Command, args []string) error {
	seconds, err := timecode.ParseFlexible(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		_, err := messaging.Send(a.inboxDir(), model.NewJumpMessage(seconds))
		if errors.Is(err, messaging.ErrNoListener) {
			fmt.Fprintln(cmd.OutOrStdout(), "No overlay is running; nothing to jump.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Jump to %s sent.\n", timecode.Format(seconds))
		return nil
	})
}
