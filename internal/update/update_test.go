package update

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		v1, v2 string
		want   bool
	}{
		{"1.2.0", "1.1.9", true},
		{"1.1.9", "1.2.0", false},
		{"1.2.0", "1.2.0", false},
		{"2.0.0", "1.9.9", true},
		{"1.2.0-rc.1", "1.2.0", false},
		{"1.2.0", "1.2.0-rc.1", true},
		{"dev", "1.0.0", false},
		{"1.0.0", "dev", false},
		{"1.2.0-14-gabcdef0", "1.2.0", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isNewer(tc.v1, tc.v2),
			"isNewer(%q, %q)", tc.v1, tc.v2)
	}
}

func TestIsDevBuildVersion(t *testing.T) {
	assert.True(t, IsDevBuildVersion("dev"))
	assert.True(t, IsDevBuildVersion("1.2.0-14-gabcdef0"))
	assert.True(t, IsDevBuildVersion("1.2.0-3-g1234abc-dirty"))
	assert.False(t, IsDevBuildVersion("v1.2.0"))
	assert.False(t, IsDevBuildVersion("1.2.0-rc.1"))
}

func withReleaseServer(t *testing.T, tag string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(Release{
				TagName: tag,
				HTMLURL: "https://example.test/releases/" + tag,
			})
		}))
	t.Cleanup(srv.Close)

	old := apiURL
	apiURL = srv.URL
	t.Cleanup(func() { apiURL = old })
}

func TestCheckReportsUpdate(t *testing.T) {
	withReleaseServer(t, "v1.5.0")
	cacheDir := t.TempDir()

	info, err := Check("v1.4.0", true, cacheDir)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "v1.5.0", info.LatestVersion)
	assert.Equal(t, "v1.4.0", info.CurrentVersion)
	assert.NotEmpty(t, info.ReleaseURL)

	// The check populated the cache.
	assert.FileExists(t, filepath.Join(cacheDir, cacheFileName))
}

func TestCheckUpToDate(t *testing.T) {
	withReleaseServer(t, "v1.4.0")

	info, err := Check("v1.4.0", true, t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestCheckUsesCache(t *testing.T) {
	cacheDir := t.TempDir()
	data, err := json.Marshal(cachedCheck{
		CheckedAt: time.Now(),
		Version:   "v2.0.0",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(
		filepath.Join(cacheDir, cacheFileName), data, 0o600))

	// No server registered: a network fetch would fail, so a
	// successful answer proves the cache was used.
	info, err := Check("v1.0.0", false, cacheDir)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "v2.0.0", info.LatestVersion)
}

func TestCheckIgnoresStaleCache(t *testing.T) {
	withReleaseServer(t, "v3.0.0")
	cacheDir := t.TempDir()

	data, err := json.Marshal(cachedCheck{
		CheckedAt: time.Now().Add(-2 * time.Hour),
		Version:   "v2.0.0",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(
		filepath.Join(cacheDir, cacheFileName), data, 0o600))

	info, err := Check("v1.0.0", false, cacheDir)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "v3.0.0", info.LatestVersion)
}
