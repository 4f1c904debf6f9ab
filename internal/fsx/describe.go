package fsx

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	manifestDescriptionCap = 200
	readmeDescriptionCap   = 300
)

var readmeNames = []string{
	"README.md", "README.markdown", "README.txt", "README",
}

var cargoDescriptionRe = regexp.MustCompile(
	`(?m)^\s*description\s*=\s*"([^"]+)"`,
)

// ProjectDescription extracts a short human-readable description
// of the project rooted at projectPath. It prefers a
// package.json description field, then the first prose paragraph
// of a README variant, then a Cargo.toml description. Returns ""
// when nothing qualifies.
func ProjectDescription(projectPath string) string {
	if projectPath == "" {
		return ""
	}

	if desc := packageJSONDescription(projectPath); desc != "" {
		return desc
	}
	if desc := readmeDescription(projectPath); desc != "" {
		return desc
	}
	return cargoDescription(projectPath)
}

func packageJSONDescription(projectPath string) string {
	doc, ok := ReadJSON(filepath.Join(projectPath, "package.json"))
	if !ok {
		return ""
	}
	desc := strings.TrimSpace(doc.Get("description").Str)
	return capString(desc, manifestDescriptionCap)
}

// readmeDescription returns the first paragraph of a README that
// reads like prose: headings, list items, badges/images, and
// code fences are skipped. Lines accumulate until the paragraph
// exceeds 200 characters or a blank line ends it.
func readmeDescription(projectPath string) string {
	var data []byte
	for _, name := range readmeNames {
		if data = ReadFile(filepath.Join(projectPath, name)); data != nil {
			break
		}
	}
	if data == nil {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if b.Len() > 0 {
				break // blank line ends the paragraph
			}
			continue
		}
		if !isProseLine(trimmed) {
			if b.Len() > 0 {
				break
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(trimmed)
		if b.Len() > manifestDescriptionCap {
			break
		}
	}

	return capString(strings.TrimSpace(b.String()), readmeDescriptionCap)
}

func isProseLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"):
		return false
	case strings.HasPrefix(line, "-"),
		strings.HasPrefix(line, "*"),
		strings.HasPrefix(line, ">"):
		return false
	case strings.HasPrefix(line, "!["),
		strings.HasPrefix(line, "[!["):
		return false
	case strings.HasPrefix(line, "```"),
		strings.HasPrefix(line, "|"):
		return false
	}
	return true
}

func cargoDescription(projectPath string) string {
	data := ReadFile(filepath.Join(projectPath, "Cargo.toml"))
	if data == nil {
		return ""
	}
	match := cargoDescriptionRe.FindSubmatch(data)
	if len(match) < 2 {
		return ""
	}
	return capString(strings.TrimSpace(string(match[1])), manifestDescriptionCap)
}

func capString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
