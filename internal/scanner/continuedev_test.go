package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionscout/sessionscout/internal/testjsonl"
)

func TestContinueScan(t *testing.T) {
	dir := t.TempDir()
	workspace := filepath.Join(dir, "workspace")
	require.NoError(t, os.MkdirAll(workspace, 0o755))

	sessions := filepath.Join(dir, "sessions")
	writeSessionFile(t, sessions, "a.json", testjsonl.ContinueSessionJSON(
		"Refactor config loader", workspace,
		[2]string{"user", "split the loader into two files"},
		[2]string{"assistant", "done, see the diff"},
	))

	// The list index next to the sessions must not be scanned.
	writeSessionFile(t, sessions, "sessions.json",
		`[{"sessionId":"a","title":"Refactor config loader"}]`)

	got := NewContinueScanner(sessions).Scan(10)
	require.Len(t, got, 1)
	assert.Equal(t, SourceContinue, got[0].Source)
	assert.Equal(t, "Refactor config loader", got[0].Title)
	assert.Equal(t, "workspace", got[0].Project)
	assert.Equal(t, workspace, got[0].ProjectPath)
	assert.Equal(t, 2, got[0].Messages)
	assert.Equal(t, "split the loader into two files", got[0].Preview)
}

func TestContinueLegacyMessagesSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "old.json",
		`{"title":"Old layout","messages":[`+
			`{"role":"user","content":"does the old schema still load"},`+
			`{"role":"assistant","content":"it does"},`+
			`{"role":"system","content":"hidden prompt"}]}`)

	parsed := NewContinueScanner(dir).Parse(path, -1)
	require.NotNil(t, parsed)
	require.Len(t, parsed.Turns, 2)
	assert.Equal(t, RoleHuman, parsed.Turns[0].Role)
	assert.Equal(t, "does the old schema still load", parsed.Turns[0].Content)
}

func TestContinueSessionID(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "file-stem.json",
		`{"sessionId":"abc-123","title":"Named session","history":[`+
			`{"message":{"role":"user","content":"hello there friend"}},`+
			`{"message":{"role":"assistant","content":"hello back"}}]}`)

	parsed := NewContinueScanner(dir).Parse(path, -1)
	require.NotNil(t, parsed)
	assert.Equal(t, "abc-123", parsed.ID)
}

func TestContinueParseMaxTurns(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.json", testjsonl.ContinueSessionJSON(
		"Long chat", "",
		[2]string{"user", "one"},
		[2]string{"assistant", "two"},
		[2]string{"user", "three"},
	))

	s := NewContinueScanner(dir)
	capped := s.Parse(path, 2)
	require.NotNil(t, capped)
	require.Len(t, capped.Turns, 2)
	assert.Equal(t, "one", capped.Turns[0].Content)
	assert.Equal(t, "two", capped.Turns[1].Content)

	assert.Nil(t, s.Parse(path, 0))
}

func TestContinueMalformedAndEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewContinueScanner(dir)

	broken := writeSessionFile(t, dir, "broken.json", `{"title": "unterminated`)
	assert.Nil(t, s.Parse(broken, -1))

	empty := writeSessionFile(t, dir, "empty.json",
		`{"title":"No turns","history":[],"messages":[],"conversations":[]}`)
	assert.Nil(t, s.Parse(empty, -1))

	assert.Empty(t, s.Scan(10))
}
