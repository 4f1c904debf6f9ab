package scanner

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// ZedScanner reads Zed editor conversations. Zed stores each
// conversation as a single JSON document; newer files keep one
// flat text buffer with message offset markers, older ones keep
// an inline message array, so extraction tries both shapes.
type ZedScanner struct {
	candidates []string
}

// NewZedScanner builds a scanner over the given candidate
// directories, defaulting to the per-OS Zed conversation roots.
func NewZedScanner(candidates ...string) *ZedScanner {
	if len(candidates) == 0 {
		candidates = []string{
			filepath.Join(platform.Home(), ".config", "zed", "conversations"),
			filepath.Join(platform.AppData(), "zed", "conversations"),
			filepath.Join(platform.LocalAppData(), "zed", "conversations"),
		}
	}
	return &ZedScanner{candidates: candidates}
}

func (s *ZedScanner) Name() string   { return "Zed" }
func (s *ZedScanner) Source() string { return SourceZed }

func (s *ZedScanner) Description() string {
	return "Zed editor conversations under ~/.config/zed/conversations"
}

func (s *ZedScanner) SessionDirs() []string {
	return existingDirs(s.candidates)
}

func (s *ZedScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		for _, path := range fsx.ListFiles(dir, []string{".json", ".zed"}, false) {
			if !passesGates(path, false) {
				continue
			}
			summary, turns := zedSession(path, -1)
			if len(turns) == 0 {
				continue
			}
			summarizeTurns(&summary, turns)
			summaries = append(summaries, summary)
		}
	}
	return finishScan(summaries, limit)
}

func (s *ZedScanner) Parse(path string, maxTurns int) *ParsedSession {
	summary, turns := zedSession(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

func zedSession(path string, maxTurns int) (SessionSummary, []ConversationTurn) {
	summary := fileSummary(path, SourceZed)
	doc, ok := fsx.ReadJSON(path)
	if !ok || maxTurns == 0 {
		return summary, nil
	}

	summary.Title = truncate(doc.Get("summary").Str, titleMaxLen)
	if id := doc.Get("id").Str; id != "" {
		summary.ID = id
	}

	// Inline message array first, then the offset format.
	turns := roleContentTurns(doc.Get("messages"), "role", "content", maxTurns)
	if len(turns) == 0 {
		turns = zedOffsetTurns(doc, maxTurns)
	}
	return summary, turns
}

// zedOffsetTurns decodes the flat-buffer format: the document's
// "text" field holds every message concatenated, and "messages"
// carries start offsets. Roles live either on the message record
// or in the "message_metadata" map keyed by message ID.
func zedOffsetTurns(doc gjson.Result, maxTurns int) []ConversationTurn {
	text := doc.Get("text").Str
	messages := doc.Get("messages")
	if text == "" || !messages.IsArray() {
		return nil
	}

	metadata := doc.Get("message_metadata")
	records := messages.Array()

	var turns []ConversationTurn
	for i, msg := range records {
		start := int(msg.Get("start").Int())
		end := len(text)
		if i+1 < len(records) {
			end = int(records[i+1].Get("start").Int())
		}
		if start < 0 || start >= end || end > len(text) {
			continue
		}

		content := strings.TrimSpace(text[start:end])
		if content == "" {
			continue
		}

		role := msg.Get("metadata.role").Str
		if role == "" {
			role = metadata.Get(zedMessageKey(msg)).Get("role").Str
		}
		r := RoleAssistant
		if role == "user" || role == "human" {
			r = RoleHuman
		}

		turns = append(turns, ConversationTurn{Role: r, Content: content})
		if maxTurns >= 0 && len(turns) >= maxTurns {
			break
		}
	}
	return turns
}

// zedMessageKey derives the message_metadata map key for a
// message record, whose ID may be a bare number or an object
// with a value field.
func zedMessageKey(msg gjson.Result) string {
	id := msg.Get("id")
	if v := id.Get("value"); v.Exists() {
		return v.Raw
	}
	return id.Raw
}
