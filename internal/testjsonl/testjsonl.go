// Package testjsonl provides shared fixture builders for the
// session file formats the scanner package understands. Used by
// scanner tests to compose files without hand-writing JSON.
package testjsonl

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ClaudeUserJSON returns a Claude user record as a JSON line.
func ClaudeUserJSON(content, timestamp string) string {
	return mustMarshal(map[string]any{
		"type":      "user",
		"timestamp": timestamp,
		"message":   map[string]any{"content": content},
	})
}

// ClaudeMetaUserJSON returns a Claude user record with the
// isMeta or isCompactSummary flag set.
func ClaudeMetaUserJSON(content, timestamp string, meta, compact bool) string {
	m := map[string]any{
		"type":      "user",
		"timestamp": timestamp,
		"message":   map[string]any{"content": content},
	}
	if meta {
		m["isMeta"] = true
	}
	if compact {
		m["isCompactSummary"] = true
	}
	return mustMarshal(m)
}

// ClaudeAssistantJSON returns a Claude assistant record. content
// may be a string or a block array.
func ClaudeAssistantJSON(content any, timestamp string) string {
	return mustMarshal(map[string]any{
		"type":      "assistant",
		"timestamp": timestamp,
		"message":   map[string]any{"content": content},
	})
}

// TextBlock returns a typed text content block.
func TextBlock(text string) map[string]any {
	return map[string]any{"type": "text", "text": text}
}

// ThinkingBlock returns a typed thinking content block.
func ThinkingBlock(thinking string) map[string]any {
	return map[string]any{"type": "thinking", "thinking": thinking}
}

// CodexSessionMetaJSON returns a Codex session_meta line.
func CodexSessionMetaJSON(id, cwd, timestamp string) string {
	return mustMarshal(map[string]any{
		"type":      "session_meta",
		"timestamp": timestamp,
		"payload":   map[string]any{"id": id, "cwd": cwd},
	})
}

// CodexMsgJSON returns a Codex response_item line with one text
// content block appropriate for the role.
func CodexMsgJSON(role, text, timestamp string) string {
	blockType := "input_text"
	if role == "assistant" {
		blockType = "output_text"
	}
	return mustMarshal(map[string]any{
		"type":      "response_item",
		"timestamp": timestamp,
		"payload": map[string]any{
			"role": role,
			"content": []map[string]any{
				{"type": blockType, "text": text},
			},
		},
	})
}

// ContinueSessionJSON returns a Continue session document with
// history entries. Each pair is (role, content).
func ContinueSessionJSON(title, workspace string, msgs ...[2]string) string {
	history := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, map[string]any{
			"message": map[string]any{"role": m[0], "content": m[1]},
		})
	}
	doc := map[string]any{
		"title":   title,
		"history": history,
	}
	if workspace != "" {
		doc["workspaceDirectory"] = workspace
	}
	return mustMarshal(doc)
}

// CopilotSessionJSON returns a VS Code Copilot chat session
// document. Each pair is (user text, assistant reply).
func CopilotSessionJSON(title string, pairs ...[2]string) string {
	requests := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		requests = append(requests, map[string]any{
			"message":  map[string]any{"text": p[0]},
			"response": []map[string]any{{"value": p[1]}},
		})
	}
	return mustMarshal(map[string]any{
		"customTitle": title,
		"requests":    requests,
	})
}

// ZedOffsetSessionJSON returns a Zed conversation in the
// flat-buffer format: one text blob with message offsets whose
// roles live in message_metadata. Each pair is (role, content).
func ZedOffsetSessionJSON(summary string, msgs ...[2]string) string {
	var (
		text     strings.Builder
		messages []map[string]any
		metadata = map[string]any{}
	)
	for i, m := range msgs {
		id := i + 1
		messages = append(messages, map[string]any{
			"id":    id,
			"start": text.Len(),
		})
		metadata[strconv.Itoa(id)] = map[string]any{"role": m[0]}
		text.WriteString(m[1])
		text.WriteByte('\n')
	}
	return mustMarshal(map[string]any{
		"summary":          summary,
		"text":             text.String(),
		"messages":         messages,
		"message_metadata": metadata,
	})
}

// JoinJSONL joins lines into JSONL content with a trailing
// newline.
func JoinJSONL(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
