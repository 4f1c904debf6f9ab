package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// ClaudeScanner reads Claude Code sessions. Each project gets a
// directory under ~/.claude/projects named by the project path
// with separators replaced by hyphens; session files inside are
// JSONL with one typed record per line.
type ClaudeScanner struct {
	candidates []string
}

// NewClaudeScanner builds a scanner over the given candidate
// directories, defaulting to ~/.claude/projects.
func NewClaudeScanner(candidates ...string) *ClaudeScanner {
	if len(candidates) == 0 {
		candidates = []string{
			filepath.Join(platform.Home(), ".claude", "projects"),
		}
	}
	return &ClaudeScanner{candidates: candidates}
}

func (s *ClaudeScanner) Name() string   { return "Claude Code" }
func (s *ClaudeScanner) Source() string { return SourceClaude }

func (s *ClaudeScanner) Description() string {
	return "Claude Code CLI sessions under ~/.claude/projects"
}

func (s *ClaudeScanner) SessionDirs() []string {
	return existingDirs(s.candidates)
}

func (s *ClaudeScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		for _, projDir := range fsx.ListDirs(dir) {
			project, projectPath := claudeProjectInfo(filepath.Base(projDir))
			description := fsx.ProjectDescription(projectPath)

			for _, path := range fsx.ListFiles(projDir, []string{".jsonl"}, false) {
				if !passesGates(path, true) {
					continue
				}
				turns := claudeTurns(path, -1)
				if len(turns) == 0 {
					continue
				}
				summary := fileSummary(path, SourceClaude)
				summary.Project = project
				summary.ProjectPath = projectPath
				summary.ProjectDescription = description
				summarizeTurns(&summary, turns)
				summaries = append(summaries, summary)
			}
		}
	}
	return finishScan(summaries, limit)
}

func (s *ClaudeScanner) Parse(path string, maxTurns int) *ParsedSession {
	turns := claudeTurns(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	summary := fileSummary(path, SourceClaude)
	project, projectPath := claudeProjectInfo(
		filepath.Base(filepath.Dir(path)),
	)
	summary.Project = project
	summary.ProjectPath = projectPath
	summary.ProjectDescription = fsx.ProjectDescription(projectPath)
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

// claudeProjectInfo resolves the project name and original path
// from an encoded project directory name. Directories that are
// not hyphen-encoded keep their name as the project.
func claudeProjectInfo(dirName string) (project, projectPath string) {
	if !strings.HasPrefix(dirName, "-") {
		return dirName, ""
	}
	projectPath = fsx.DecodeDirNameToPath(dirName)
	if projectPath == "" {
		return dirName, ""
	}
	return filepath.Base(projectPath), projectPath
}

// claudeTurns extracts normalized turns from a Claude JSONL
// file. maxTurns < 0 means unbounded.
func claudeTurns(path string, maxTurns int) []ConversationTurn {
	if maxTurns == 0 {
		return nil
	}

	var turns []ConversationTurn
	for _, line := range fsx.ReadJSONL(path) {
		entryType := line.Get("type").Str
		if entryType != "user" && entryType != "assistant" {
			continue
		}
		if entryType == "user" {
			if line.Get("isMeta").Bool() ||
				line.Get("isCompactSummary").Bool() {
				continue
			}
		}

		text := extractBlocksText(line.Get("message.content"))
		if strings.TrimSpace(text) == "" {
			continue
		}
		if entryType == "user" && isClaudeSystemMessage(text) {
			continue
		}

		role := RoleAssistant
		if entryType == "user" {
			role = RoleHuman
		}
		turns = append(turns, ConversationTurn{
			Role:      role,
			Content:   text,
			Timestamp: claudeTimestamp(line),
		})
		if maxTurns > 0 && len(turns) >= maxTurns {
			break
		}
	}
	return turns
}

func claudeTimestamp(line gjson.Result) time.Time {
	ts := timeFromResult(line.Get("timestamp"))
	if ts.IsZero() {
		ts = timeFromResult(line.Get("snapshot.timestamp"))
	}
	return ts
}

// isClaudeSystemMessage reports whether a user entry's content
// matches a known system-injected pattern: continuation
// banners, slash-command echoes, and hook feedback.
func isClaudeSystemMessage(content string) bool {
	trimmed := strings.TrimSpace(content)
	prefixes := [...]string{
		"This session is being continued",
		"[Request interrupted",
		"<task-notification>",
		"<command-message>",
		"<command-name>",
		"<local-command-",
		"<system-reminder>",
		"Caveat: the messages below",
		"Stop hook feedback:",
	}
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
