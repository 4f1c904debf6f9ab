package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/bookmark"
	"github.com/sessionscout/sessionscout/internal/config"
)

var markCmd = &cobra.Command{
	Use:   "mark SOURCE ID",
	Short: "Record a session as handled so list --unseen hides it",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := bookmark.Open(cfg.BookmarkDBPath())
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Mark(args[0], args[1])
	},
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List handled sessions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := bookmark.Open(cfg.BookmarkDBPath())
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.All()
		if err != nil {
			return err
		}
		for _, b := range all {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s/%s\n",
				b.MarkedAt.Local().Format("2006-01-02 15:04"), b.Source, b.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(bookmarksCmd)
}
