package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/scanner"
)

var (
	showSource   string
	showMaxTurns int
	showJSON     bool
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Parse one session file and print its conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, reg, err := loadRegistry()
		if err != nil {
			return err
		}

		parsed := reg.ParseSession(args[0], showSource, showMaxTurns)
		if parsed == nil {
			return fmt.Errorf("no conversation found in %s (source %q)",
				args[0], showSource)
		}

		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parsed)
		}

		printSession(cmd, parsed)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showSource, "source", "", "Source whose adapter parses the file (required)")
	showCmd.Flags().IntVar(&showMaxTurns, "max-turns", -1, "Cap the number of turns (negative for all)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit JSON instead of text")
	_ = showCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(showCmd)
}

func printSession(cmd *cobra.Command, parsed *scanner.ParsedSession) {
	out := cmd.OutOrStdout()

	title := parsed.Title
	if title == "" {
		title = parsed.ID
	}
	fmt.Fprintf(out, "%s  (%s", title, parsed.Source)
	if parsed.Project != "" {
		fmt.Fprintf(out, ", %s", parsed.Project)
	}
	fmt.Fprintf(out, ")\n%d messages, %d human / %d assistant\n\n",
		parsed.Messages, parsed.HumanMessages, parsed.AIMessages)

	for _, turn := range parsed.Turns {
		label := "assistant"
		if turn.Role == scanner.RoleHuman {
			label = "human"
		}
		if !turn.Timestamp.IsZero() {
			label += " " + turn.Timestamp.Local().Format("15:04:05")
		}
		fmt.Fprintf(out, "[%s]\n%s\n\n", label, turn.Content)
	}
}
