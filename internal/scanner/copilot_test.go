package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionscout/sessionscout/internal/testjsonl"
)

// newCopilotWorkspace lays out a VS Code user dir with one
// workspace hash holding a chat session, returning the user root
// and the session path.
func newCopilotWorkspace(t *testing.T, project, session string) (string, string) {
	t.Helper()
	userRoot := t.TempDir()
	hashDir := filepath.Join(userRoot, "workspaceStorage", "a1b2c3")
	writeSessionFile(t, hashDir, "workspace.json",
		`{"folder":"file://`+project+`"}`)
	path := writeSessionFile(t,
		filepath.Join(hashDir, "chatSessions"), "s1.json", session)
	return userRoot, path
}

func TestCopilotScanWorkspaceStorage(t *testing.T) {
	project := filepath.Join(t.TempDir(), "webapp")
	require.NoError(t, os.MkdirAll(project, 0o755))

	userRoot, _ := newCopilotWorkspace(t, project, testjsonl.CopilotSessionJSON(
		"Add login form",
		[2]string{"wire up the login form", "Added the form and its handler."},
		[2]string{"now add validation", "Validation is in."},
	))

	got := NewCopilotScanner(userRoot).Scan(10)
	require.Len(t, got, 1)
	assert.Equal(t, SourceCopilot, got[0].Source)
	assert.Equal(t, "Add login form", got[0].Title)
	assert.Equal(t, "webapp", got[0].Project)
	assert.Equal(t, project, got[0].ProjectPath)
	assert.Equal(t, 4, got[0].Messages)
	assert.Equal(t, 2, got[0].HumanMessages)
	assert.Equal(t, 2, got[0].AIMessages)
	assert.Equal(t, "wire up the login form", got[0].Preview)
}

func TestCopilotScanGlobalStorage(t *testing.T) {
	userRoot := t.TempDir()
	writeSessionFile(t,
		filepath.Join(userRoot, "globalStorage", "emptyWindowChatSessions"),
		"g1.json", testjsonl.CopilotSessionJSON("",
			[2]string{"what does errgroup do", "It runs goroutines with shared cancellation."},
		))

	got := NewCopilotScanner(userRoot).Scan(10)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].ProjectPath)
	assert.Equal(t, 2, got[0].Messages)
}

func TestCopilotParseRecoversWorkspace(t *testing.T) {
	project := filepath.Join(t.TempDir(), "svc")
	require.NoError(t, os.MkdirAll(project, 0o755))

	userRoot, path := newCopilotWorkspace(t, project, testjsonl.CopilotSessionJSON(
		"Rename package",
		[2]string{"rename the util package", "Renamed and updated imports."},
	))

	parsed := NewCopilotScanner(userRoot).Parse(path, -1)
	require.NotNil(t, parsed)
	assert.Equal(t, project, parsed.ProjectPath)
	assert.Equal(t, "svc", parsed.Project)
	require.Len(t, parsed.Turns, 2)
	assert.Equal(t, RoleHuman, parsed.Turns[0].Role)
	assert.Equal(t, RoleAssistant, parsed.Turns[1].Role)
}

func TestCopilotParseMaxTurns(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.json", testjsonl.CopilotSessionJSON(
		"Long chat",
		[2]string{"one", "two"},
		[2]string{"three", "four"},
	))

	s := NewCopilotScanner(dir)
	capped := s.Parse(path, 3)
	require.NotNil(t, capped)
	require.Len(t, capped.Turns, 3)
	assert.Equal(t, "three", capped.Turns[2].Content)

	assert.Nil(t, s.Parse(path, 0))
}

func TestCopilotToolOnlyResponse(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.json",
		`{"requests":[{"message":{"text":"run the tests"},`+
			`"response":[{"kind":"toolInvocation","toolId":"runTests"}]}]}`)

	parsed := NewCopilotScanner(dir).Parse(path, -1)
	require.NotNil(t, parsed)
	require.Len(t, parsed.Turns, 1)
	assert.Equal(t, RoleHuman, parsed.Turns[0].Role)
	assert.Equal(t, 0, parsed.AIMessages)
}
