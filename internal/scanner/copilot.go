package scanner

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// CopilotScanner reads VS Code Copilot Chat sessions out of the
// editor's storage: per-workspace files under
// workspaceStorage/<hash>/chatSessions and window-less ones
// under globalStorage/emptyWindowChatSessions.
type CopilotScanner struct {
	userRoots []string
}

// NewCopilotScanner builds a scanner over the given VS Code user
// roots, defaulting to the per-OS Code/User directory.
func NewCopilotScanner(userRoots ...string) *CopilotScanner {
	if len(userRoots) == 0 {
		userRoots = []string{
			filepath.Join(platform.AppData(), "Code", "User"),
		}
	}
	return &CopilotScanner{userRoots: userRoots}
}

func (s *CopilotScanner) Name() string   { return "VS Code Copilot" }
func (s *CopilotScanner) Source() string { return SourceCopilot }

func (s *CopilotScanner) Description() string {
	return "Copilot Chat sessions in VS Code workspace and global storage"
}

func (s *CopilotScanner) SessionDirs() []string {
	var candidates []string
	for _, root := range s.userRoots {
		candidates = append(candidates,
			filepath.Join(root, "workspaceStorage"),
			filepath.Join(root, "globalStorage", "emptyWindowChatSessions"),
		)
	}
	return existingDirs(candidates)
}

func (s *CopilotScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		if filepath.Base(dir) == "workspaceStorage" {
			summaries = append(summaries, s.scanWorkspaceStorage(dir)...)
			continue
		}
		summaries = append(summaries, s.scanSessionDir(dir, "")...)
	}
	return finishScan(summaries, limit)
}

func (s *CopilotScanner) scanWorkspaceStorage(storageDir string) []SessionSummary {
	var summaries []SessionSummary
	for _, hashDir := range fsx.ListDirs(storageDir) {
		chatDir := filepath.Join(hashDir, "chatSessions")
		if !fsx.Exists(chatDir) {
			continue
		}
		project := workspaceFolder(hashDir)
		summaries = append(summaries, s.scanSessionDir(chatDir, project)...)
	}
	return summaries
}

func (s *CopilotScanner) scanSessionDir(dir, projectPath string) []SessionSummary {
	var summaries []SessionSummary
	for _, path := range fsx.ListFiles(dir, []string{".json"}, false) {
		if !passesGates(path, false) {
			continue
		}
		summary, turns := copilotSession(path, -1)
		if len(turns) == 0 {
			continue
		}
		applyProjectPath(&summary, projectPath)
		summarizeTurns(&summary, turns)
		summaries = append(summaries, summary)
	}
	return summaries
}

func (s *CopilotScanner) Parse(path string, maxTurns int) *ParsedSession {
	summary, turns := copilotSession(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	// chatSessions files sit one level under the workspace hash
	// directory; recover the project from its workspace.json.
	if filepath.Base(filepath.Dir(path)) == "chatSessions" {
		applyProjectPath(&summary,
			workspaceFolder(filepath.Dir(filepath.Dir(path))))
	}
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

// copilotSession decodes one chat session document. Each request
// contributes a human turn and, when responses exist, one
// assistant turn, so the role counts stay exact for this format.
func copilotSession(path string, maxTurns int) (SessionSummary, []ConversationTurn) {
	summary := fileSummary(path, SourceCopilot)
	doc, ok := fsx.ReadJSON(path)
	if !ok || maxTurns == 0 {
		return summary, nil
	}

	summary.Title = truncate(doc.Get("customTitle").Str, titleMaxLen)
	if id := doc.Get("sessionId").Str; id != "" {
		summary.ID = id
	}

	var turns []ConversationTurn
	capped := func() bool { return maxTurns > 0 && len(turns) >= maxTurns }

	doc.Get("requests").ForEach(func(_, req gjson.Result) bool {
		ts := timeFromResult(req.Get("timestamp"))

		if text := strings.TrimSpace(req.Get("message.text").Str); text != "" {
			turns = append(turns, ConversationTurn{
				Role: RoleHuman, Content: text, Timestamp: ts,
			})
			if capped() {
				return false
			}
		}

		if reply := copilotResponseText(req.Get("response")); reply != "" {
			turns = append(turns, ConversationTurn{
				Role: RoleAssistant, Content: reply, Timestamp: ts,
			})
			if capped() {
				return false
			}
		}
		return true
	})

	return summary, capTurns(turns, maxTurns)
}

// copilotResponseText concatenates the textual parts of a
// response array, skipping tool invocation records.
func copilotResponseText(response gjson.Result) string {
	var parts []string
	response.ForEach(func(_, part gjson.Result) bool {
		value := part.Get("value")
		if value.Type == gjson.String && strings.TrimSpace(value.Str) != "" {
			parts = append(parts, value.Str)
		}
		return true
	})
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// workspaceFolder reads the folder URI from a workspace hash
// directory's workspace.json, returning a filesystem path.
func workspaceFolder(hashDir string) string {
	doc, ok := fsx.ReadJSON(filepath.Join(hashDir, "workspace.json"))
	if !ok {
		return ""
	}
	folder := doc.Get("folder").Str
	return strings.TrimPrefix(folder, "file://")
}

func applyProjectPath(summary *SessionSummary, projectPath string) {
	if projectPath == "" {
		return
	}
	summary.ProjectPath = projectPath
	summary.Project = filepath.Base(projectPath)
	summary.ProjectDescription = fsx.ProjectDescription(projectPath)
}
