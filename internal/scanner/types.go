// Package scanner discovers and normalizes local AI
// coding-assistant transcripts. Each supported tool gets one
// Scanner implementation that knows the tool's on-disk layout
// and file format; the Registry merges their results into one
// time-ordered view and guarantees that a failure inside one
// scanner never affects another.
package scanner

import "time"

// RoleType identifies who produced a conversation turn.
type RoleType string

const (
	RoleHuman     RoleType = "human"
	RoleAssistant RoleType = "assistant"
)

// Source identifiers for the supported tools. These are the
// exact values consumers pass as scan filters.
const (
	SourceClaude   = "claude-code"
	SourceCodex    = "codex"
	SourceAider    = "aider"
	SourceContinue = "continue"
	SourceCopilot  = "vscode-copilot"
	SourceZed      = "zed"
)

// SessionSummary is a lightweight descriptor of one discovered
// transcript, cheap enough to produce for listing without
// retaining full content.
type SessionSummary struct {
	ID                 string    `json:"id"`
	Source             string    `json:"source"`
	Project            string    `json:"project"`
	ProjectPath        string    `json:"projectPath,omitempty"`
	ProjectDescription string    `json:"projectDescription,omitempty"`
	Title              string    `json:"title"`
	Messages           int       `json:"messageCount"`
	HumanMessages      int       `json:"humanMessageCount"`
	AIMessages         int       `json:"aiMessageCount"`
	Preview            string    `json:"previewText"`
	FilePath           string    `json:"filePath"`
	ModifiedAt         time.Time `json:"modifiedAt"`
	SizeBytes          int64     `json:"sizeBytes"`
}

// ConversationTurn is one normalized utterance in source order.
// Content is never empty; turns whose extracted text normalizes
// to nothing are dropped, not emitted blank.
type ConversationTurn struct {
	Role      RoleType  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ParsedSession is a summary plus the full ordered turn
// sequence, produced on demand only.
type ParsedSession struct {
	SessionSummary
	Turns []ConversationTurn `json:"turns"`
}

// Scanner is the per-tool discovery contract. Implementations
// must degrade rather than fail: missing directories, unreadable
// files, and drifted formats all surface as fewer (or zero)
// results, never as errors. The Registry additionally isolates
// panics, so a Scanner bug cannot take down discovery for the
// other tools.
//
// maxTurns semantics for Parse: negative means unbounded; zero
// or more caps the returned turns at that many, in original
// order. A parse that yields zero turns returns nil.
type Scanner interface {
	// Name is the human-readable tool name, e.g. "Claude Code".
	Name() string
	// Source is the stable identifier used in summaries and
	// scan filters, e.g. "claude-code".
	Source() string
	// Description says where the tool keeps its sessions.
	Description() string
	// SessionDirs returns the candidate directories that exist
	// on this machine right now.
	SessionDirs() []string
	// Scan returns up to limit summaries, newest first.
	Scan(limit int) []SessionSummary
	// Parse fully decodes one session file, or returns nil when
	// the file cannot be interpreted.
	Parse(path string, maxTurns int) *ParsedSession
}
