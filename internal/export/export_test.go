package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctor-dialogue-server/internal/domain"
)

func TestPaginate(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = "line"
	}
	pages := Paginate(strings.Join(lines, "\n"))

	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Lines, 50)
	assert.Len(t, pages[1].Lines, 50)
	assert.Len(t, pages[2].Lines, 20)
	assert.Equal(t, 3, pages[2].Number)
}

func TestPaginate_ShortText(t *testing.T) {
	pages := Paginate("only line")
	require.Len(t, pages, 1)
	assert.Equal(t, []string{"only line"}, pages[0].Lines)
}

func TestRender(t *testing.T) {
	pages := Paginate(strings.Repeat("x\n", 60))
	doc := Render(pages)

	assert.Contains(t, doc, "-- Page 1 of 2 --")
	assert.Contains(t, doc, "-- Page 2 of 2 --")
	assert.Equal(t, 1, strings.Count(doc, "\f"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "prescription_alice_20250314_093000.txt",
		Filename("alice", "2025-03-14 09:30:00"))

	// Single-digit day from a repaired legacy row still produces a name.
	assert.Equal(t, "prescription_alice_20241105_142205.txt",
		Filename("alice", "2024-11-5 14:22:05"))
}

func TestTimestampFromSelection(t *testing.T) {
	ts, err := TimestampFromSelection("[2025-03-14 09:30:00]\nPrescription for Adult Patient:")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 09:30:00", ts)

	// Single-digit day is accepted.
	ts, err = TimestampFromSelection("some text [2024-11-5 14:22:05] more")
	require.NoError(t, err)
	assert.Equal(t, "2024-11-5 14:22:05", ts)

	_, err = TimestampFromSelection("nothing bracketed here")
	assert.ErrorIs(t, err, domain.ErrNoSelectionTimestamp)
}
