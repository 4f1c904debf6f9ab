package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which session sources are present on this machine",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, reg, err := loadRegistry()
		if err != nil {
			return err
		}

		statuses := reg.ListScannerStatus()

		if statusJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(statuses)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tAVAILABLE\tDIRECTORIES")
		for _, st := range statuses {
			avail := "no"
			if st.Available {
				avail = "yes"
			}
			dirs := strings.Join(st.Dirs, ", ")
			if st.Err != "" {
				dirs = st.Err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", st.Source, avail, dirs)
		}
		return w.Flush()
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Emit JSON instead of a table")
	rootCmd.AddCommand(statusCmd)
}
