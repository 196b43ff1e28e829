package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilberkman/cctranscripts/internal/core/archive"
	"github.com/neilberkman/cctranscripts/internal/core/config"
	"github.com/neilberkman/cctranscripts/internal/core/discover"
)

var (
	allSource        string
	allOutput        string
	allMerge         bool
	allPrefix        string
	allIncludeAgents bool
	allDryRun        bool
	allQuiet         bool
	allSince         string
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Convert every local session into a browsable archive",
	Long: `Convert every session under the source directory into a
per-project HTML archive with a master index.

With --merge, sessions that exist only in a previous archive run are
kept and relinked instead of being dropped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if allSource == "" {
			allSource = cfg.ClaudeProjectsDir
		}

		var since time.Time
		if allSince != "" {
			since, err = parseSince(allSince)
			if err != nil {
				return err
			}
		}

		discoverOpts := discover.Options{IncludeAgents: allIncludeAgents, Since: since}
		projects := discover.FindAllSessions(allSource, discoverOpts)
		if len(projects) == 0 {
			return fmt.Errorf("no sessions found in %s", allSource)
		}

		if allDryRun {
			total := 0
			for _, project := range projects {
				fmt.Printf("%s:\n", project.Name)
				for _, session := range project.Sessions {
					fmt.Printf("  %s  %s\n", session.Stem(), session.Summary)
					total++
				}
			}
			fmt.Printf("Would convert %d sessions across %d projects into %s\n", total, len(projects), allOutput)
			return nil
		}

		opts := archive.Options{
			Merge:         allMerge,
			Prefix:        allPrefix,
			IncludeAgents: allIncludeAgents,
			Quiet:         allQuiet,
			Since:         since,
		}
		if !allQuiet {
			opts.Progress = func(project, session string, current, total int) {
				fmt.Printf("[%d/%d] %s/%s\n", current, total, project, session)
			}
		}

		stats, err := archive.GenerateBatch(allSource, allOutput, opts)
		if err != nil {
			return err
		}

		if !allQuiet {
			fmt.Printf("Converted %d sessions across %d projects into %s\n",
				stats.TotalSessions, stats.TotalProjects, stats.OutputDir)
		}
		// Per-session failures are reported but never change the exit
		// code; a partial archive is still an archive.
		for _, failure := range stats.Failed {
			fmt.Printf("Failed: %s/%s: %v\n", failure.Project, failure.Session, failure.Err)
		}
		return nil
	},
}

func init() {
	allCmd.Flags().StringVar(&allSource, "source", "", "Source directory to scan (default: Claude projects dir)")
	allCmd.Flags().StringVarP(&allOutput, "output", "o", "claude-archive", "Output directory for the archive")
	allCmd.Flags().BoolVar(&allMerge, "merge", false, "Merge with an existing archive, preserving orphaned sessions")
	allCmd.Flags().StringVar(&allPrefix, "prefix", "", "Source label shown next to sessions in project indexes")
	allCmd.Flags().BoolVar(&allIncludeAgents, "include-agents", false, "Include sub-agent session files")
	allCmd.Flags().BoolVar(&allDryRun, "dry-run", false, "List what would be converted without writing anything")
	allCmd.Flags().BoolVar(&allQuiet, "quiet", false, "Suppress progress output")
	allCmd.Flags().StringVar(&allSince, "since", "", "Only convert sessions modified since this date (natural language ok)")
	rootCmd.AddCommand(allCmd)
}
