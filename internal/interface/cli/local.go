package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilberkman/cctranscripts/internal/core/config"
	"github.com/neilberkman/cctranscripts/internal/core/discover"
	"github.com/neilberkman/cctranscripts/internal/interface/picker"
)

var (
	localFlags outputFlags
	localLimit int
	localSince string
)

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Select and convert a local session to HTML",
	Long:  "Pick a local Claude Code or Codex session interactively and convert it to HTML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var since time.Time
		if localSince != "" {
			since, err = parseSince(localSince)
			if err != nil {
				return err
			}
		}

		fmt.Println("Loading local sessions...")
		sessions := discover.FindCombinedSessions(cfg.ClaudeProjectsDir, cfg.CodexSessionsDir, discover.Options{
			Limit: localLimit,
			Since: since,
		})
		if len(sessions) == 0 {
			fmt.Println("No local sessions found.")
			return nil
		}

		items := make([]picker.Item, len(sessions))
		for i, s := range sessions {
			items[i] = picker.FromSession(s)
		}

		choice, err := picker.Choose("Select a session to convert:", items)
		if err != nil {
			return err
		}
		if choice == nil {
			fmt.Println("No session selected.")
			return nil
		}

		return convertFile(choice.Value, localFlags, cfg)
	},
}

func init() {
	localFlags.register(localCmd)
	localCmd.Flags().IntVar(&localLimit, "limit", 10, "Maximum number of sessions to show")
	localCmd.Flags().StringVar(&localSince, "since", "", "Only show sessions modified since this date (natural language ok)")
	rootCmd.AddCommand(localCmd)
}
