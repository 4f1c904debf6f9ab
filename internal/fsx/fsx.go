// Package fsx provides the non-raising filesystem helpers the
// scanner layer is built on. Every function degrades to a zero
// value on failure: missing paths, permission errors, and
// malformed JSON all read as "nothing there". Callers that need
// to distinguish failure from absence should not live in this
// layer.
package fsx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Exists reports whether path exists at all (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns file info for path, or nil when the path cannot
// be stat'ed.
func Stat(path string) os.FileInfo {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return info
}

// ReadFile returns the contents of path, or nil on any failure.
func ReadFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// ReadJSON reads path and parses it as a single JSON document.
// The second return is false when the file is missing or not
// valid JSON.
func ReadJSON(path string) (gjson.Result, bool) {
	data := ReadFile(path)
	if data == nil || !gjson.ValidBytes(data) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(data), true
}

// ReadJSONL reads path as JSON Lines, returning the parsed
// subset. Blank, oversized, and malformed lines are dropped
// silently; a missing file yields nil.
func ReadJSONL(path string) []gjson.Result {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var results []gjson.Result
	lr := newLineReader(f, maxLineSize)
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		if !gjson.Valid(line) {
			continue
		}
		results = append(results, gjson.Parse(line))
	}
	return results
}

// ListFiles returns paths of regular files under dir whose names
// end in one of exts (any extension when exts is empty). With
// recursive set it descends into subdirectories, skipping any it
// cannot read. Results are sorted for deterministic iteration.
func ListFiles(dir string, exts []string, recursive bool) []string {
	var files []string

	if recursive {
		_ = filepath.WalkDir(dir,
			func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return nil // unreadable subtree, keep going
				}
				if d.IsDir() {
					return nil
				}
				if matchesExt(d.Name(), exts) {
					files = append(files, path)
				}
				return nil
			})
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if matchesExt(entry.Name(), exts) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files
}

// ListDirs returns the immediate subdirectories of dir, sorted.
// Symlinks that resolve to directories count.
func ListDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if !isDirOrSymlink(entry, dir) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(dirs)
	return dirs
}

// CountLines reports how many non-blank lines path has, stopping
// once max is reached. Used to gate near-empty files cheaply
// before a full parse.
func CountLines(path string, max int) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	lr := newLineReader(f, maxLineSize)
	for count < max {
		if _, ok := lr.next(); !ok {
			break
		}
		count++
	}
	return count
}

func matchesExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isDirOrSymlink reports whether the entry is a directory or a
// symlink that resolves to one.
func isDirOrSymlink(entry os.DirEntry, parentDir string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(parentDir, entry.Name()))
	return err == nil && fi.IsDir()
}
