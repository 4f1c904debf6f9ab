package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeSessionFile writes content at dir/name, creating parents.
func writeSessionFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// touchTime sets a file's mtime so scan-order tests are
// deterministic.
func touchTime(t *testing.T, path string, sec int64) {
	t.Helper()
	ts := time.Unix(sec, 0)
	require.NoError(t, os.Chtimes(path, ts, ts))
}
