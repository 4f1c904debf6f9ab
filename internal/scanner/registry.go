package scanner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sessionscout/sessionscout/internal/log"
)

// ScannerStatus reports one scanner's availability for status
// listings. Available is true when at least one session
// directory exists; Err carries the failure message when the
// scanner itself blew up while answering.
type ScannerStatus struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
	Available   bool     `json:"available"`
	Dirs        []string `json:"dirs"`
	Err         string   `json:"error,omitempty"`
}

// Registry holds the registered scanners and fences every call
// into them. No scanner method call is allowed to propagate a
// panic past the registry: a faulting scanner degrades to empty
// results while the others keep working. Registration order is
// preserved; the registry is assembled once at startup and read
// by consumers, never mutated afterward.
type Registry struct {
	scanners []Scanner
}

// NewRegistry builds a registry over the given scanners.
func NewRegistry(scanners ...Scanner) *Registry {
	return &Registry{scanners: scanners}
}

// DefaultRegistry returns a registry with all supported scanners
// using their built-in directory candidates.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewClaudeScanner(),
		NewCodexScanner(),
		NewAiderScanner(),
		NewContinueScanner(),
		NewCopilotScanner(),
		NewZedScanner(),
	)
}

// Scanners returns the registered scanners in registration
// order.
func (r *Registry) Scanners() []Scanner {
	return r.scanners
}

// ScanAll scans the selected sources and merges the results into
// one list ordered by ModifiedAt descending, capped at limit.
// Ties order by Source then ID ascending so output is
// deterministic regardless of scanner iteration order. An empty
// source selects every scanner; an unknown source matches
// nothing and yields an empty result.
func (r *Registry) ScanAll(limit int, source string) []SessionSummary {
	var all []SessionSummary
	for _, s := range r.scanners {
		name := scannerSource(s)
		if source != "" && name != source {
			continue
		}
		var got []SessionSummary
		r.guard(name, "scan", func() {
			got = s.Scan(limit)
		})
		all = append(all, got...)
	}
	return finishScan(all, limit)
}

// ParseSession parses one session file with the scanner matching
// source. Returns nil when no scanner matches or the file cannot
// be interpreted.
func (r *Registry) ParseSession(path, source string, maxTurns int) *ParsedSession {
	for _, s := range r.scanners {
		if scannerSource(s) != source {
			continue
		}
		var parsed *ParsedSession
		r.guard(source, "parse", func() {
			parsed = s.Parse(path, maxTurns)
		})
		return parsed
	}
	return nil
}

// ListScannerStatus reports availability for every registered
// scanner. A scanner whose SessionDirs panics is reported as
// unavailable with the failure captured, not skipped.
func (r *Registry) ListScannerStatus() []ScannerStatus {
	statuses := make([]ScannerStatus, 0, len(r.scanners))
	for _, s := range r.scanners {
		status := ScannerStatus{Source: scannerSource(s)}
		r.guard(status.Source, "meta", func() {
			status.Name = s.Name()
			status.Description = s.Description()
		})

		failed := true
		r.guard(status.Source, "sessionDirs", func() {
			status.Dirs = s.SessionDirs()
			failed = false
		})
		if failed {
			status.Err = "session directory lookup failed"
			status.Available = false
		} else {
			status.Available = len(status.Dirs) > 0
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// guard runs fn, converting a panic into a logged no-op so the
// caller's fallback value stands.
func (r *Registry) guard(scanner, method string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			log.L().Warn("scanner fault isolated",
				zap.String("scanner", scanner),
				zap.String("method", method),
				zap.String("panic", fmt.Sprint(p)),
			)
		}
	}()
	fn()
}

// scannerSource reads a scanner's source identifier without
// letting a broken implementation poison the registry loop.
func scannerSource(s Scanner) (source string) {
	defer func() {
		if recover() != nil {
			source = ""
		}
	}()
	return s.Source()
}
