// Command sessionscout discovers AI coding sessions on the local
// machine and prints them in a normalized form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sessionscout/sessionscout/internal/config"
	"github.com/sessionscout/sessionscout/internal/log"
	"github.com/sessionscout/sessionscout/internal/scanner"
)

// version is set by the release build via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sessionscout",
	Short: "Find and inspect local AI coding sessions",
	Long: `sessionscout scans the session stores of Claude Code, Codex,
aider, Continue, VS Code Copilot Chat, and Zed, and presents them
as one normalized list. It only ever reads; no session file is
written, moved, or locked.`,
	SilenceUsage: true,
}

func init() {
	// Logging is off unless SESSIONSCOUT_DEBUG=1.
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadRegistry resolves configuration and builds the scanner
// registry with any configured directory overrides.
func loadRegistry() (config.Config, *scanner.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	reg := scanner.NewRegistry(
		scanner.NewClaudeScanner(cfg.ClaudeProjectDirs...),
		scanner.NewCodexScanner(cfg.CodexSessionDirs...),
		scanner.NewAiderScanner(cfg.AiderDirs...),
		scanner.NewContinueScanner(cfg.ContinueDirs...),
		scanner.NewCopilotScanner(cfg.VSCodeUserDirs...),
		scanner.NewZedScanner(cfg.ZedDirs...),
	)
	return cfg, reg, nil
}
