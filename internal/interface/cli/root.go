package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var versionInfo string

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cctranscripts",
	Short: "Convert chat session logs to static HTML transcripts",
	Long: `cctranscripts - turn Claude Code and Codex session logs into
mobile-friendly, paginated HTML transcripts.

Running without a subcommand opens the local session picker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the local picker if no subcommand specified
		return localCmd.RunE(cmd, args)
	},
}
