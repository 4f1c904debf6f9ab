package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionscout/sessionscout/internal/testjsonl"
)

func TestCodexScanDatedTree(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "proj")
	require.NoError(t, os.MkdirAll(project, 0o755))

	dayDir := filepath.Join(root, "sessions", "2024", "06", "15")
	content := testjsonl.JoinJSONL(
		testjsonl.CodexSessionMetaJSON("sess-1", project, tsA),
		testjsonl.CodexMsgJSON("user", "add a cache layer", tsA),
		testjsonl.CodexMsgJSON("assistant", "on it", tsA),
	)
	writeSessionFile(t, dayDir, "rollout-1.jsonl", content)

	// Non-dated directories are not walked.
	writeSessionFile(t, filepath.Join(root, "sessions", "notadate"),
		"stray.jsonl", content)

	got := NewCodexScanner(filepath.Join(root, "sessions")).Scan(10)
	require.Len(t, got, 1)
	assert.Equal(t, "sess-1", got[0].ID)
	assert.Equal(t, "proj", got[0].Project)
	assert.Equal(t, project, got[0].ProjectPath)
	assert.Equal(t, 2, got[0].Messages)
	assert.Equal(t, "add a cache layer", got[0].Preview)
}

func TestCodexScanArchivedFlat(t *testing.T) {
	archive := t.TempDir()
	writeSessionFile(t, archive, "old.jsonl", testjsonl.JoinJSONL(
		testjsonl.CodexMsgJSON("user", "archived question", tsA),
		testjsonl.CodexMsgJSON("assistant", "archived answer", tsA),
	))

	got := NewCodexScanner(archive).Scan(10)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].ID)
	assert.Equal(t, 1, got[0].HumanMessages)
	assert.Equal(t, 1, got[0].AIMessages)
}

func TestCodexSystemMessagesSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.jsonl", testjsonl.JoinJSONL(
		testjsonl.CodexMsgJSON("user", "<environment_context>linux</environment_context>", tsA),
		testjsonl.CodexMsgJSON("user", "# AGENTS.md instructions here", tsA),
		testjsonl.CodexMsgJSON("user", "<user_instructions>be nice</user_instructions>", tsA),
		testjsonl.CodexMsgJSON("user", "real prompt", tsA),
		testjsonl.CodexMsgJSON("assistant", "reply", tsA),
	))

	parsed := NewCodexScanner(dir).Parse(path, -1)
	require.NotNil(t, parsed)
	require.Len(t, parsed.Turns, 2)
	assert.Equal(t, "real prompt", parsed.Turns[0].Content)
}

func TestCodexParseMaxTurns(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.jsonl", testjsonl.JoinJSONL(
		testjsonl.CodexMsgJSON("user", "one", tsA),
		testjsonl.CodexMsgJSON("assistant", "two", tsA),
		testjsonl.CodexMsgJSON("user", "three", tsA),
	))

	s := NewCodexScanner(dir)
	full := s.Parse(path, -1)
	require.NotNil(t, full)
	require.Len(t, full.Turns, 3)

	capped := s.Parse(path, 2)
	require.NotNil(t, capped)
	assert.Equal(t, full.Turns[:2], capped.Turns)

	assert.Nil(t, s.Parse(path, 0))
}

func TestCodexParseUnknownRoles(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.jsonl", testjsonl.JoinJSONL(
		`{"type":"response_item","payload":{"role":"system","content":[{"type":"input_text","text":"sys"}]}}`,
		`{"type":"response_item","payload":{"type":"function_call","name":"shell"}}`,
	))

	assert.Nil(t, NewCodexScanner(dir).Parse(path, -1))
}
