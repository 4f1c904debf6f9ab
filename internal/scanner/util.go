package scanner

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
)

const (
	previewMaxLen = 200
	titleMaxLen   = 80

	// Cheap gates applied before parsing. Files smaller than
	// this, or line-oriented files with fewer lines, are almost
	// always empty shells left by an aborted run.
	minSessionBytes = 64
	minSessionLines = 2
)

// timestampLayouts covers the formats seen across the supported
// tools' files.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a timestamp in any known layout,
// returning the zero time when s is empty or unrecognized.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// timeFromResult converts a gjson timestamp value that may be a
// string or an epoch number (seconds or milliseconds).
func timeFromResult(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.String:
		return parseTimestamp(v.Str)
	case gjson.Number:
		n := v.Int()
		if n <= 0 {
			return time.Time{}
		}
		if n > 1e12 { // millisecond epoch
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	default:
		return time.Time{}
	}
}

// truncate trims s and caps it at maxLen, appending an ellipsis
// marker when cut.
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// flatten collapses a multi-line message into one line for
// preview display.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fileStem returns the filename without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// existingDirs filters candidates down to directories that exist.
func existingDirs(candidates []string) []string {
	var dirs []string
	for _, dir := range candidates {
		if dir != "" && fsx.Exists(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// passesGates applies the size gate (and optionally the
// line-count gate for line-oriented formats) to path.
func passesGates(path string, lineOriented bool) bool {
	info := fsx.Stat(path)
	if info == nil || info.Size() < minSessionBytes {
		return false
	}
	if lineOriented && fsx.CountLines(path, minSessionLines) < minSessionLines {
		return false
	}
	return true
}

// finishScan orders summaries newest first and truncates to
// limit. A negative limit means unbounded.
func finishScan(summaries []SessionSummary, limit int) []SessionSummary {
	sortSummaries(summaries)
	if limit >= 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// sortSummaries orders by ModifiedAt descending with a
// deterministic tie-break on Source then ID ascending.
func sortSummaries(summaries []SessionSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.ModifiedAt.Equal(b.ModifiedAt) {
			return a.ModifiedAt.After(b.ModifiedAt)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.ID < b.ID
	})
}

// summarizeTurns fills the turn-derived fields of a summary:
// counts, preview (first human turn), and a title when none was
// set by the format itself.
func summarizeTurns(s *SessionSummary, turns []ConversationTurn) {
	s.Messages = len(turns)
	for _, turn := range turns {
		switch turn.Role {
		case RoleHuman:
			s.HumanMessages++
			if s.Preview == "" {
				s.Preview = truncate(flatten(turn.Content), previewMaxLen)
			}
		case RoleAssistant:
			s.AIMessages++
		}
	}
	if s.Title == "" && s.Preview != "" {
		s.Title = truncate(s.Preview, titleMaxLen)
	}
}

// capTurns applies the Parse maxTurns contract: negative is
// unbounded, zero or more caps the prefix.
func capTurns(turns []ConversationTurn, maxTurns int) []ConversationTurn {
	if maxTurns >= 0 && len(turns) > maxTurns {
		return turns[:maxTurns]
	}
	return turns
}

// fileSummary seeds a summary with the filesystem-derived
// fields shared by every format.
func fileSummary(path, source string) SessionSummary {
	s := SessionSummary{
		ID:       fileStem(path),
		Source:   source,
		FilePath: path,
	}
	if info := fsx.Stat(path); info != nil {
		s.ModifiedAt = info.ModTime()
		s.SizeBytes = info.Size()
	}
	return s
}
