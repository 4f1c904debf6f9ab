package scanner

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// ContinueScanner reads Continue sessions: one JSON document per
// session under ~/.continue/sessions. The schema has shifted
// between releases, so extraction runs an ordered list of
// strategies and keeps the first that yields turns.
type ContinueScanner struct {
	candidates []string
}

// NewContinueScanner builds a scanner over the given candidate
// directories, defaulting to ~/.continue/sessions plus the
// per-OS app-data variant.
func NewContinueScanner(candidates ...string) *ContinueScanner {
	if len(candidates) == 0 {
		candidates = []string{
			filepath.Join(platform.Home(), ".continue", "sessions"),
			filepath.Join(platform.AppData(), "continue", "sessions"),
		}
	}
	return &ContinueScanner{candidates: candidates}
}

func (s *ContinueScanner) Name() string   { return "Continue" }
func (s *ContinueScanner) Source() string { return SourceContinue }

func (s *ContinueScanner) Description() string {
	return "Continue extension sessions under ~/.continue/sessions"
}

func (s *ContinueScanner) SessionDirs() []string {
	return existingDirs(s.candidates)
}

func (s *ContinueScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		for _, path := range fsx.ListFiles(dir, []string{".json"}, false) {
			if filepath.Base(path) == "sessions.json" {
				continue // the list index, not a session
			}
			if !passesGates(path, false) {
				continue
			}
			summary, turns := continueSession(path, -1)
			if len(turns) == 0 {
				continue
			}
			summarizeTurns(&summary, turns)
			summaries = append(summaries, summary)
		}
	}
	return finishScan(summaries, limit)
}

func (s *ContinueScanner) Parse(path string, maxTurns int) *ParsedSession {
	summary, turns := continueSession(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

// continueStrategies is the ordered list of extraction
// strategies. Current releases store history entries wrapping a
// message object; older ones stored bare message arrays.
var continueStrategies = []struct {
	name string
	fn   func(doc gjson.Result, maxTurns int) []ConversationTurn
}{
	{"history", func(doc gjson.Result, maxTurns int) []ConversationTurn {
		return roleContentTurns(doc.Get("history"), "message.role", "message.content", maxTurns)
	}},
	{"messages", func(doc gjson.Result, maxTurns int) []ConversationTurn {
		return roleContentTurns(doc.Get("messages"), "role", "content", maxTurns)
	}},
	{"conversations", func(doc gjson.Result, maxTurns int) []ConversationTurn {
		return roleContentTurns(doc.Get("conversations"), "role", "content", maxTurns)
	}},
}

func continueSession(path string, maxTurns int) (SessionSummary, []ConversationTurn) {
	summary := fileSummary(path, SourceContinue)
	doc, ok := fsx.ReadJSON(path)
	if !ok || maxTurns == 0 {
		return summary, nil
	}

	summary.Title = truncate(doc.Get("title").Str, titleMaxLen)
	if id := doc.Get("sessionId").Str; id != "" {
		summary.ID = id
	}
	if ws := doc.Get("workspaceDirectory").Str; ws != "" {
		summary.ProjectPath = ws
		summary.Project = filepath.Base(ws)
		summary.ProjectDescription = fsx.ProjectDescription(ws)
	}

	for _, strategy := range continueStrategies {
		if turns := strategy.fn(doc, maxTurns); len(turns) > 0 {
			return summary, turns
		}
	}
	return summary, nil
}

// roleContentTurns normalizes an array of records carrying a
// role and a content value at the given paths. Records with
// system/tool roles or empty content are skipped.
func roleContentTurns(
	arr gjson.Result, rolePath, contentPath string, maxTurns int,
) []ConversationTurn {
	if !arr.IsArray() {
		return nil
	}

	var turns []ConversationTurn
	arr.ForEach(func(_, item gjson.Result) bool {
		role := item.Get(rolePath).Str
		var r RoleType
		switch role {
		case "user", "human":
			r = RoleHuman
		case "assistant", "ai":
			r = RoleAssistant
		default:
			return true
		}

		content := extractBlocksText(item.Get(contentPath))
		if strings.TrimSpace(content) == "" {
			return true
		}

		turns = append(turns, ConversationTurn{
			Role:      r,
			Content:   content,
			Timestamp: timeFromResult(item.Get("timestamp")),
		})
		return maxTurns < 0 || len(turns) < maxTurns
	})
	return turns
}
