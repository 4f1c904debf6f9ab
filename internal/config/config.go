// Package config layers the session directory overrides:
// defaults < config file < environment. The engine itself never
// reads configuration; the CLI resolves directories here and
// hands them to the scanners.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sessionscout/sessionscout/internal/platform"
)

// Config holds the resolved session directory lists per source.
// A nil slice means "use the scanner's built-in candidates".
type Config struct {
	DataDir string `json:"-"`

	ClaudeProjectDirs []string `json:"claude_project_dirs,omitempty"`
	CodexSessionDirs  []string `json:"codex_session_dirs,omitempty"`
	AiderDirs         []string `json:"aider_dirs,omitempty"`
	ContinueDirs      []string `json:"continue_dirs,omitempty"`
	VSCodeUserDirs    []string `json:"vscode_user_dirs,omitempty"`
	ZedDirs           []string `json:"zed_dirs,omitempty"`
}

// envDirVars maps each source's override variable to the field
// it fills. An env var always yields a single-element list that
// beats the config file.
var envDirVars = []struct {
	name  string
	field func(*Config) *[]string
}{
	{"CLAUDE_PROJECTS_DIR", func(c *Config) *[]string { return &c.ClaudeProjectDirs }},
	{"CODEX_SESSIONS_DIR", func(c *Config) *[]string { return &c.CodexSessionDirs }},
	{"AIDER_DIR", func(c *Config) *[]string { return &c.AiderDirs }},
	{"CONTINUE_DIR", func(c *Config) *[]string { return &c.ContinueDirs }},
	{"VSCODE_USER_DIR", func(c *Config) *[]string { return &c.VSCodeUserDirs }},
	{"ZED_DIR", func(c *Config) *[]string { return &c.ZedDirs }},
}

// Default returns a Config with the default data directory and
// no directory overrides.
func Default() Config {
	return Config{
		DataDir: filepath.Join(platform.Home(), ".sessionscout"),
	}
}

// Load builds a Config by layering: defaults < config file <
// env vars. A missing config file is not an error; a malformed
// one is.
func Load() (Config, error) {
	cfg := Default()
	if v := os.Getenv("SESSIONSCOUT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if err := cfg.loadFile(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.DataDir, "config.json")
}

// BookmarkDBPath is where the bookmark store keeps its sqlite
// database.
func (c *Config) BookmarkDBPath() string {
	return filepath.Join(c.DataDir, "bookmarks.db")
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.configPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", c.configPath(), err)
	}
	return nil
}

func (c *Config) loadEnv() {
	for _, v := range envDirVars {
		if dir := os.Getenv(v.name); dir != "" {
			*v.field(c) = []string{dir}
		}
	}
}

// Save writes the directory overrides back to the config file,
// creating the data directory when needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.configPath(), out, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
