// Package update checks GitHub for a newer release. Check only:
// there is no self-install, the CLI just reports what it found.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var apiURL = "https://api.github.com/repos/sessionscout/sessionscout/releases/latest"

const (
	cacheFileName = "update_check.json"
	cacheDuration = 1 * time.Hour
)

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Info describes an available update.
type Info struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

type cachedCheck struct {
	CheckedAt time.Time `json:"checked_at"`
	Version   string    `json:"version"`
}

// Check reports whether a newer release exists. Returns nil when
// the current version is up to date. Results cache for an hour
// under cacheDir unless force is set.
func Check(currentVersion string, force bool, cacheDir string) (*Info, error) {
	clean := strings.TrimPrefix(currentVersion, "v")

	if !force {
		if cached, ok := loadCache(cacheDir); ok {
			if !isNewer(strings.TrimPrefix(cached.Version, "v"), clean) {
				return nil, nil
			}
			return &Info{
				CurrentVersion: currentVersion,
				LatestVersion:  cached.Version,
			}, nil
		}
	}

	release, err := fetchLatestRelease()
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}
	saveCache(release.TagName, cacheDir)

	if !isNewer(strings.TrimPrefix(release.TagName, "v"), clean) {
		return nil, nil
	}
	return &Info{
		CurrentVersion: currentVersion,
		LatestVersion:  release.TagName,
		ReleaseURL:     release.HTMLURL,
	}, nil
}

func fetchLatestRelease() (*Release, error) {
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "sessionscout-update")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func loadCache(cacheDir string) (*cachedCheck, bool) {
	data, err := os.ReadFile(filepath.Join(cacheDir, cacheFileName))
	if err != nil {
		return nil, false
	}
	var cached cachedCheck
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if time.Since(cached.CheckedAt) >= cacheDuration {
		return nil, false
	}
	return &cached, true
}

func saveCache(version, cacheDir string) {
	data, err := json.Marshal(cachedCheck{
		CheckedAt: time.Now(),
		Version:   version,
	})
	if err != nil {
		return
	}
	_ = os.MkdirAll(cacheDir, 0o755)
	_ = os.WriteFile(filepath.Join(cacheDir, cacheFileName), data, 0o600)
}

var gitDescribePattern = regexp.MustCompile(`-\d+-g[0-9a-f]+(-dirty)?$`)

// IsDevBuildVersion reports whether v looks like a local build
// (git describe suffix, or no parseable semver at all).
func IsDevBuildVersion(v string) bool {
	v = strings.TrimPrefix(v, "v")
	if extractBaseSemver(v) == "" {
		return true
	}
	return gitDescribePattern.MatchString(v)
}

// isNewer reports whether v1 > v2. Versions without a parseable
// base never compare newer.
func isNewer(v1, v2 string) bool {
	if extractBaseSemver(v1) == "" || extractBaseSemver(v2) == "" {
		return false
	}
	return semver.Compare(normalizeSemver(v1), normalizeSemver(v2)) > 0
}

func extractBaseSemver(v string) string {
	v = strings.TrimPrefix(v, "v")
	if len(v) == 0 || v[0] < '0' || v[0] > '9' {
		return ""
	}
	if !strings.Contains(v, ".") {
		return ""
	}
	if idx := strings.Index(v, "-"); idx > 0 {
		v = v[:idx]
	}
	return v
}

// normalizeSemver strips git-describe suffixes and adds the "v"
// prefix x/mod/semver expects.
func normalizeSemver(v string) string {
	v = strings.TrimPrefix(v, "v")
	if gitDescribePattern.MatchString(v) {
		v = gitDescribePattern.ReplaceAllString(v, "")
	}
	return "v" + v
}
