package scanner

import (
	"strings"

	"github.com/tidwall/gjson"
)

// extractBlocksText extracts readable text from a message
// content value that is either a plain string or an array of
// typed blocks. Text blocks are concatenated; thinking blocks
// are kept, fenced with markers; tool blocks are dropped since
// they carry no conversational text.
func extractBlocksText(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.Str
	}
	if !content.IsArray() {
		return ""
	}

	var parts []string
	content.ForEach(func(_, block gjson.Result) bool {
		switch block.Get("type").Str {
		case "text", "input_text", "output_text":
			if t := block.Get("text").Str; t != "" {
				parts = append(parts, t)
			}
		case "thinking":
			if t := block.Get("thinking").Str; t != "" {
				parts = append(parts, "[Thinking]\n"+t+"\n[/Thinking]")
			}
		}
		return true
	})
	return strings.Join(parts, "\n")
}
