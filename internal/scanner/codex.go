package scanner

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// CodexScanner reads Codex CLI sessions. Live sessions sit in a
// dated tree (~/.codex/sessions/YYYY/MM/DD/*.jsonl); archived
// ones sit flat under ~/.codex/archived_sessions.
type CodexScanner struct {
	candidates []string
}

// NewCodexScanner builds a scanner over the given candidate
// directories, defaulting to the live and archived session
// roots.
func NewCodexScanner(candidates ...string) *CodexScanner {
	if len(candidates) == 0 {
		home := platform.Home()
		candidates = []string{
			filepath.Join(home, ".codex", "sessions"),
			filepath.Join(home, ".codex", "archived_sessions"),
		}
	}
	return &CodexScanner{candidates: candidates}
}

func (s *CodexScanner) Name() string   { return "Codex" }
func (s *CodexScanner) Source() string { return SourceCodex }

func (s *CodexScanner) Description() string {
	return "Codex CLI sessions under ~/.codex/sessions and ~/.codex/archived_sessions"
}

func (s *CodexScanner) SessionDirs() []string {
	return existingDirs(s.candidates)
}

func (s *CodexScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		for _, path := range codexSessionFiles(dir) {
			if !passesGates(path, true) {
				continue
			}
			summary, turns := codexSession(path, -1)
			if len(turns) == 0 {
				continue
			}
			summarizeTurns(&summary, turns)
			summaries = append(summaries, summary)
		}
	}
	return finishScan(summaries, limit)
}

func (s *CodexScanner) Parse(path string, maxTurns int) *ParsedSession {
	summary, turns := codexSession(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

// codexSessionFiles lists JSONL files under root. Dated
// year/month/day subtrees are walked; anything else (the
// archived layout) is read flat.
func codexSessionFiles(root string) []string {
	var files []string
	files = append(files, fsx.ListFiles(root, []string{".jsonl"}, false)...)

	for _, yearDir := range fsx.ListDirs(root) {
		if !isDigits(filepath.Base(yearDir)) {
			continue
		}
		for _, monthDir := range fsx.ListDirs(yearDir) {
			if !isDigits(filepath.Base(monthDir)) {
				continue
			}
			for _, dayDir := range fsx.ListDirs(monthDir) {
				if !isDigits(filepath.Base(dayDir)) {
					continue
				}
				files = append(files,
					fsx.ListFiles(dayDir, []string{".jsonl"}, false)...)
			}
		}
	}
	return files
}

// codexSession extracts the summary scaffold and turns from one
// Codex JSONL file. The session_meta line supplies the project
// working directory when present.
func codexSession(path string, maxTurns int) (SessionSummary, []ConversationTurn) {
	summary := fileSummary(path, SourceCodex)
	if maxTurns == 0 {
		return summary, nil
	}

	var turns []ConversationTurn
	for _, line := range fsx.ReadJSONL(path) {
		payload := line.Get("payload")

		switch line.Get("type").Str {
		case "session_meta":
			if cwd := payload.Get("cwd").Str; cwd != "" {
				summary.ProjectPath = cwd
				summary.Project = filepath.Base(cwd)
				summary.ProjectDescription = fsx.ProjectDescription(cwd)
			}
			if id := payload.Get("id").Str; id != "" {
				summary.ID = id
			}

		case "response_item":
			turn, ok := codexTurn(line, payload)
			if !ok {
				continue
			}
			turns = append(turns, turn)
			if maxTurns > 0 && len(turns) >= maxTurns {
				return summary, turns
			}
		}
	}
	return summary, turns
}

func codexTurn(line, payload gjson.Result) (ConversationTurn, bool) {
	role := payload.Get("role").Str
	if role != "user" && role != "assistant" {
		return ConversationTurn{}, false
	}

	content := extractBlocksText(payload.Get("content"))
	if strings.TrimSpace(content) == "" {
		return ConversationTurn{}, false
	}
	if role == "user" && isCodexSystemMessage(content) {
		return ConversationTurn{}, false
	}

	r := RoleAssistant
	if role == "user" {
		r = RoleHuman
	}
	return ConversationTurn{
		Role:      r,
		Content:   content,
		Timestamp: timeFromResult(line.Get("timestamp")),
	}, true
}

// isCodexSystemMessage reports whether a user message is
// injected tooling context rather than something the user typed.
func isCodexSystemMessage(content string) bool {
	return strings.HasPrefix(content, "# AGENTS.md") ||
		strings.HasPrefix(content, "<environment_context>") ||
		strings.HasPrefix(content, "<user_instructions>") ||
		strings.HasPrefix(content, "<INSTRUCTIONS>")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
