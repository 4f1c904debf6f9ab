package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/bookmark"
	"github.com/sessionscout/sessionscout/internal/scanner"
)

var (
	listLimit  int
	listSource string
	listJSON   bool
	listUnseen bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered sessions, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, reg, err := loadRegistry()
		if err != nil {
			return err
		}

		sessions := reg.ScanAll(listLimit, listSource)

		if listUnseen {
			store, err := bookmark.Open(cfg.BookmarkDBPath())
			if err != nil {
				return err
			}
			defer store.Close()
			if sessions, err = filterUnseen(store, sessions); err != nil {
				return err
			}
		}

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sessions)
		}

		printSessions(cmd, sessions)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum sessions to list (negative for all)")
	listCmd.Flags().StringVar(&listSource, "source", "", "Only list sessions from this source")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit JSON instead of a table")
	listCmd.Flags().BoolVar(&listUnseen, "unseen", false, "Hide sessions already marked handled")
	rootCmd.AddCommand(listCmd)
}

func filterUnseen(store *bookmark.Store, sessions []scanner.SessionSummary) ([]scanner.SessionSummary, error) {
	var out []scanner.SessionSummary
	for _, s := range sessions {
		seen, err := store.Seen(s.Source, s.ID)
		if err != nil {
			return nil, err
		}
		if !seen {
			out = append(out, s)
		}
	}
	return out, nil
}

func printSessions(cmd *cobra.Command, sessions []scanner.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODIFIED\tSOURCE\tPROJECT\tMSGS\tID\tPREVIEW")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			formatModified(s.ModifiedAt),
			s.Source,
			s.Project,
			s.Messages,
			s.ID,
			clip(s.Preview, 60),
		)
	}
	_ = w.Flush()
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
