package fsx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePath mimics the hyphen substitution Claude Code applies
// to project paths when naming session directories.
func encodePath(p string) string {
	return strings.ReplaceAll(p, string(os.PathSeparator), "-")
}

func TestDecodeDirNameToPath(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		assert.Equal(t, "", DecodeDirNameToPath(""))
		assert.Equal(t, "", DecodeDirNameToPath("-"))
	})

	t.Run("round trip for existing path", func(t *testing.T) {
		base := t.TempDir()
		project := filepath.Join(base, "my-cool-project")
		require.NoError(t, os.MkdirAll(project, 0o755))

		got := DecodeDirNameToPath(encodePath(project))
		assert.Equal(t, project, got)
	})

	t.Run("round trip with nested hyphenated segments", func(t *testing.T) {
		base := t.TempDir()
		project := filepath.Join(base, "work-stuff", "side-project-v2")
		require.NoError(t, os.MkdirAll(project, 0o755))

		got := DecodeDirNameToPath(encodePath(project))
		assert.Equal(t, project, got)
	})

	t.Run("nonexistent path degrades to one token per segment", func(t *testing.T) {
		got := DecodeDirNameToPath("-definitely-not-real-xyz")
		sep := string(os.PathSeparator)
		assert.Equal(t,
			sep+"definitely"+sep+"not"+sep+"real"+sep+"xyz", got)
	})

	t.Run("greedy prefers longest existing run", func(t *testing.T) {
		base := t.TempDir()
		// Both "my" and "my-app" exist; "my-app" must win.
		require.NoError(t, os.MkdirAll(filepath.Join(base, "my"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(base, "my-app"), 0o755))

		got := DecodeDirNameToPath(encodePath(filepath.Join(base, "my-app")))
		assert.Equal(t, filepath.Join(base, "my-app"), got)
	})

	t.Run("shorter existing subpath shadows hyphenated segment", func(t *testing.T) {
		// Pins the documented ambiguity: when only the shorter
		// prefix exists on disk, the greedy walk descends into it
		// and the hyphenated original is not recovered.
		base := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(base, "my"), 0o755))

		encoded := encodePath(filepath.Join(base, "my-app"))
		got := DecodeDirNameToPath(encoded)
		assert.Equal(t, filepath.Join(base, "my", "app"), got)
	})
}
