package scanner

import (
	"path/filepath"
	"strings"

	"github.com/sessionscout/sessionscout/internal/fsx"
	"github.com/sessionscout/sessionscout/internal/platform"
)

// aiderHumanPrefix opens a human turn in aider's Markdown
// history format. Everything between two delimiters is the
// assistant's reply.
const aiderHumanPrefix = "#### "

// AiderScanner reads aider chat history files, which are plain
// Markdown rather than JSON.
type AiderScanner struct {
	candidates []string
}

// NewAiderScanner builds a scanner over the given candidate
// directories, defaulting to ~/.aider/history and ~/.aider.
func NewAiderScanner(candidates ...string) *AiderScanner {
	if len(candidates) == 0 {
		home := platform.Home()
		candidates = []string{
			filepath.Join(home, ".aider", "history"),
			filepath.Join(home, ".aider"),
		}
	}
	return &AiderScanner{candidates: candidates}
}

func (s *AiderScanner) Name() string   { return "Aider" }
func (s *AiderScanner) Source() string { return SourceAider }

func (s *AiderScanner) Description() string {
	return "Aider Markdown chat history under ~/.aider"
}

func (s *AiderScanner) SessionDirs() []string {
	return existingDirs(s.candidates)
}

func (s *AiderScanner) Scan(limit int) []SessionSummary {
	var summaries []SessionSummary
	for _, dir := range s.SessionDirs() {
		for _, path := range fsx.ListFiles(dir, []string{".md"}, false) {
			if !passesGates(path, true) {
				continue
			}
			turns := aiderTurns(path, -1)
			if len(turns) == 0 {
				continue
			}
			summary := fileSummary(path, SourceAider)
			summarizeTurns(&summary, turns)
			summaries = append(summaries, summary)
		}
	}
	return finishScan(summaries, limit)
}

func (s *AiderScanner) Parse(path string, maxTurns int) *ParsedSession {
	turns := aiderTurns(path, maxTurns)
	if len(turns) == 0 {
		return nil
	}
	summary := fileSummary(path, SourceAider)
	summarizeTurns(&summary, turns)
	return &ParsedSession{SessionSummary: summary, Turns: turns}
}

// aiderTurns splits a Markdown history file on the "#### "
// delimiter. Consecutive delimiter lines join into one human
// turn; the lines until the next delimiter form the assistant
// reply. Content before the first delimiter (session banners,
// announcements) is dropped.
func aiderTurns(path string, maxTurns int) []ConversationTurn {
	if maxTurns == 0 {
		return nil
	}
	data := fsx.ReadFile(path)
	if data == nil {
		return nil
	}

	var (
		turns     []ConversationTurn
		human     []string
		assistant []string
		started   bool
	)

	capped := func() bool {
		return maxTurns > 0 && len(turns) >= maxTurns
	}
	flushHuman := func() {
		if text := strings.TrimSpace(strings.Join(human, "\n")); text != "" && !capped() {
			turns = append(turns, ConversationTurn{Role: RoleHuman, Content: text})
		}
		human = human[:0]
	}
	flushAssistant := func() {
		if text := strings.TrimSpace(strings.Join(assistant, "\n")); text != "" && !capped() {
			turns = append(turns, ConversationTurn{Role: RoleAssistant, Content: text})
		}
		assistant = assistant[:0]
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, aiderHumanPrefix) {
			if len(assistant) > 0 {
				flushAssistant()
			}
			started = true
			human = append(human, strings.TrimPrefix(line, aiderHumanPrefix))
			continue
		}
		if !started {
			continue
		}
		if len(human) > 0 {
			flushHuman()
		}
		assistant = append(assistant, line)
	}
	flushHuman()
	flushAssistant()

	return capTurns(turns, maxTurns)
}
