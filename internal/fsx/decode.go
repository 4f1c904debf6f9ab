package fsx

import (
	"os"
	"strings"

	"github.com/sessionscout/sessionscout/internal/platform"
)

// DecodeDirNameToPath reconstructs a filesystem path from a
// directory name that was produced by replacing every path
// separator with a hyphen (Claude Code encodes
// /Users/alice/my-cool-project as -Users-alice-my-cool-project).
//
// The encoding is lossy since the original path may itself
// contain hyphens. Decoding segments the hyphen-separated tokens
// against the real filesystem, preferring at each step the
// longest run of remaining tokens that joins (with hyphens) into
// an existing path segment. When no run of any length exists on
// disk, exactly one token is consumed as a literal segment so
// the walk always terminates, yielding a textual best guess.
//
// Known limitation: when a shorter existing sub-path matches
// before a hyphen-containing final segment does, the greedy
// choice wins and the result differs from the original path.
// This mirrors the encoding tool's own ambiguity and is pinned
// by tests rather than second-guessed.
func DecodeDirNameToPath(dirName string) string {
	name := strings.TrimPrefix(dirName, "-")
	if name == "" {
		return ""
	}

	tokens := strings.Split(name, "-")
	sep := string(os.PathSeparator)

	var prefix string
	i := 0
	if platform.IsWindows() && len(tokens) > 0 && isDriveLetter(tokens[0]) {
		prefix = tokens[0] + ":"
		i = 1
	}

	for i < len(tokens) {
		matched := false
		for n := len(tokens) - i; n >= 1; n-- {
			segment := strings.Join(tokens[i:i+n], "-")
			candidate := prefix + sep + segment
			if Exists(candidate) {
				prefix = candidate
				i += n
				matched = true
				break
			}
		}
		if !matched {
			// Nothing on disk matches; take one token
			// literally and move on.
			prefix = prefix + sep + tokens[i]
			i++
		}
	}

	return prefix
}

func isDriveLetter(token string) bool {
	if len(token) != 1 {
		return false
	}
	c := token[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
