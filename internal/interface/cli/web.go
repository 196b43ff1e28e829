package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/cctranscripts/internal/core/anthropic"
	"github.com/neilberkman/cctranscripts/internal/core/config"
	"github.com/neilberkman/cctranscripts/internal/interface/picker"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

var (
	webFlags   outputFlags
	webToken   string
	webOrgUUID string
)

var webCmd = &cobra.Command{
	Use:   "web [SESSION_ID]",
	Short: "Fetch and convert a remote session to HTML",
	Long: `Fetch a session from the Anthropic API and convert it to HTML.

Without a SESSION_ID, lists your remote sessions in an interactive
picker. Credentials are auto-detected from Claude Code's keychain
entry and ~/.claude.json where possible.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		token, orgUUID, err := config.ResolveCredentials(webToken, webOrgUUID)
		if err != nil {
			return err
		}
		client := anthropic.NewClient(token, orgUUID)

		var sessionID string
		if len(args) == 1 {
			sessionID = args[0]
		} else {
			sessions, err := client.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				return errors.New("no sessions found")
			}

			items := make([]picker.Item, len(sessions))
			for i, s := range sessions {
				items[i] = picker.Item{
					Label: anthropic.FormatSession(s),
					Value: s.ID,
				}
			}
			choice, err := picker.Choose("Select a session to import:", items)
			if err != nil {
				return err
			}
			if choice == nil {
				return errors.New("no session selected")
			}
			sessionID = choice.Value
		}

		fmt.Printf("Fetching session %s...\n", sessionID)
		data, err := client.FetchSession(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		entries, err := cclog.ParseSessionData(data)
		if err != nil {
			return fmt.Errorf("failed to parse session: %w", err)
		}

		outputDir, autoOpen := webFlags.resolveOutputDir(sessionID)
		return convertEntries(entries, outputDir, autoOpen, webFlags, cfg, data, sessionID+".json")
	},
}

func init() {
	webFlags.register(webCmd)
	webCmd.Flags().StringVar(&webToken, "token", "", "API access token (auto-detected from keychain on macOS)")
	webCmd.Flags().StringVar(&webOrgUUID, "org-uuid", "", "Organization UUID (auto-detected from ~/.claude.json)")
	rootCmd.AddCommand(webCmd)
}
