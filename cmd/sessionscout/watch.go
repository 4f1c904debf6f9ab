package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/watch"
)

var (
	watchExec     string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch session directories and report changes as they happen",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, reg, err := loadRegistry()
		if err != nil {
			return err
		}

		var hook []string
		if watchExec != "" {
			if hook, err = shlex.Split(watchExec); err != nil {
				return fmt.Errorf("parsing --exec: %w", err)
			}
			if len(hook) == 0 {
				return fmt.Errorf("--exec is empty")
			}
		}

		out := cmd.OutOrStdout()
		w, err := watch.New(watchDebounce, func(paths []string) {
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			runHook(hook, paths)
		})
		if err != nil {
			return err
		}

		watched := w.WatchRegistry(reg)
		if watched == 0 {
			return fmt.Errorf("no session directories to watch")
		}
		fmt.Fprintf(out, "Watching %d directories. Ctrl-C to stop.\n", watched)

		w.Start()
		defer w.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchExec, "exec", "", "Command to run per change batch; changed paths are appended")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "Quiet period before reporting a batch")
	rootCmd.AddCommand(watchCmd)
}

// runHook executes the --exec command with the changed paths
// appended as arguments. Hook failures are reported, not fatal.
func runHook(hook, paths []string) {
	if len(hook) == 0 {
		return
	}
	args := append(append([]string(nil), hook[1:]...), paths...)
	c := exec.Command(hook[0], args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "exec hook: %v\n", err)
	}
}
