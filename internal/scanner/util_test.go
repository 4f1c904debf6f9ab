package scanner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tidwall/gjson"
)

func TestParseTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-06-15T10:00:00Z",
		"2024-06-15T10:00:00.123Z",
		"2024-06-15T10:00:00+02:00",
		"2024-06-15T10:00:00",
	} {
		assert.False(t, parseTimestamp(s).IsZero(), s)
	}
	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("last tuesday").IsZero())
}

func TestTimeFromResult(t *testing.T) {
	fromStr := timeFromResult(gjson.Parse(`"2024-06-15T10:00:00Z"`))
	assert.Equal(t, 2024, fromStr.Year())

	// Epoch seconds and milliseconds both land on the same instant.
	sec := timeFromResult(gjson.Parse("1718445600"))
	ms := timeFromResult(gjson.Parse("1718445600000"))
	assert.True(t, sec.Equal(ms))

	assert.True(t, timeFromResult(gjson.Parse("null")).IsZero())
	assert.True(t, timeFromResult(gjson.Parse("0")).IsZero())
}

func TestTruncateAndFlatten(t *testing.T) {
	assert.Equal(t, "short", truncate("  short  ", 10))
	long := strings.Repeat("x", 30)
	assert.Equal(t, long[:10]+"...", truncate(long, 10))

	assert.Equal(t, "a b c", flatten("a\n  b\t\nc"))
}

func TestFinishScanLimit(t *testing.T) {
	in := []SessionSummary{
		{ID: "b", Source: "s", ModifiedAt: time.Unix(100, 0)},
		{ID: "a", Source: "s", ModifiedAt: time.Unix(200, 0)},
		{ID: "c", Source: "s", ModifiedAt: time.Unix(300, 0)},
	}

	got := finishScan(append([]SessionSummary(nil), in...), 2)
	assert.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	unbounded := finishScan(append([]SessionSummary(nil), in...), -1)
	assert.Len(t, unbounded, 3)
}

func TestSummarizeTurnsTitleFallback(t *testing.T) {
	s := SessionSummary{}
	summarizeTurns(&s, []ConversationTurn{
		{Role: RoleAssistant, Content: "leading reply"},
		{Role: RoleHuman, Content: "what is the plan"},
		{Role: RoleAssistant, Content: "this is the plan"},
	})
	assert.Equal(t, 3, s.Messages)
	assert.Equal(t, 1, s.HumanMessages)
	assert.Equal(t, 2, s.AIMessages)
	assert.Equal(t, "what is the plan", s.Preview)
	assert.Equal(t, "what is the plan", s.Title)

	titled := SessionSummary{Title: "kept"}
	summarizeTurns(&titled, []ConversationTurn{{Role: RoleHuman, Content: "x y"}})
	assert.Equal(t, "kept", titled.Title)
}
