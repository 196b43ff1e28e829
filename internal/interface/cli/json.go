package cli

import (
	"github.com/spf13/cobra"

	"github.com/neilberkman/cctranscripts/internal/core/config"
)

var jsonFlags outputFlags

var jsonCmd = &cobra.Command{
	Use:   "json FILE",
	Short: "Convert a session file to HTML",
	Long:  "Convert a session file (Claude Code JSONL, Codex rollout, or exported JSON document) to HTML.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return convertFile(args[0], jsonFlags, cfg)
	},
}

func init() {
	jsonFlags.register(jsonCmd)
	rootCmd.AddCommand(jsonCmd)
}
