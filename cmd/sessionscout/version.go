package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/config"
	"github.com/sessionscout/sessionscout/internal/update"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for a newer release",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sessionscout %s\n", version)

		if !versionCheck {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		info, err := update.Check(version, false, cfg.DataDir)
		if err != nil {
			return err
		}
		if info == nil {
			fmt.Fprintln(out, "Up to date.")
			return nil
		}
		fmt.Fprintf(out, "Newer release available: %s", info.LatestVersion)
		if info.ReleaseURL != "" {
			fmt.Fprintf(out, " (%s)", info.ReleaseURL)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
