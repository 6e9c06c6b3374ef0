package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookHours runs a start/stop cycle of the given length at the current
// fake time.
func bookHours(t *testing.T, store *Store, now *time.Time, code string, hours float64) {
	t.Helper()
	require.NoError(t, store.StartTimer("alice", code))
	*now = now.Add(time.Duration(hours * float64(time.Hour)))
	_, err := store.StopTimer("alice")
	require.NoError(t, err)
}

func TestWeeklySummaryZeroFilled(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P2", "Two", 40)
	require.NoError(t, err)

	weekStart := WeekStart(*now)
	matrix, err := store.WeeklySummary("alice", weekStart)
	require.NoError(t, err)

	// Every project has a row, every cell starts at zero.
	require.Len(t, matrix.Projects, 2)
	for _, p := range matrix.Projects {
		row, ok := matrix.Hours[p.Code]
		require.True(t, ok)
		for day, hours := range row {
			assert.Zero(t, hours, "project %s day %d", p.Code, day)
		}
	}
	assert.Zero(t, matrix.GrandTotal())
}

func TestWeeklySummarySumsSameDayEntries(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P2", "Two", 40)
	require.NoError(t, err)

	weekStart := WeekStart(*now)

	// Two sessions on Monday plus one on Wednesday for P1, one session
	// on Monday for P2.
	bookHours(t, store, now, "P1", 1.0)
	bookHours(t, store, now, "P1", 0.5)
	bookHours(t, store, now, "P2", 2.0)
	*now = weekStart.AddDate(0, 0, 2).Add(10 * time.Hour) // Wednesday
	bookHours(t, store, now, "P1", 3.0)

	matrix, err := store.WeeklySummary("alice", weekStart)
	require.NoError(t, err)

	p1 := matrix.Hours["P1"]
	assert.InDelta(t, 1.5, p1[0], 1e-9)
	assert.InDelta(t, 3.0, p1[2], 1e-9)
	assert.Zero(t, p1[1])

	p2 := matrix.Hours["P2"]
	assert.InDelta(t, 2.0, p2[0], 1e-9)

	assert.InDelta(t, 4.5, matrix.RowTotal("P1"), 1e-9)
	assert.InDelta(t, 6.5, matrix.GrandTotal(), 1e-9)
}

func TestWeeklySummaryExcludesOtherWeeks(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	thisWeek := WeekStart(*now)
	bookHours(t, store, now, "P1", 2.0)

	*now = thisWeek.AddDate(0, 0, 7).Add(9 * time.Hour)
	bookHours(t, store, now, "P1", 4.0)

	matrix, err := store.WeeklySummary("alice", thisWeek)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, matrix.GrandTotal(), 1e-9)

	nextWeek, err := store.WeeklySummary("alice", thisWeek.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, nextWeek.GrandTotal(), 1e-9)
}

func TestWeeklySummaryCountsManualAdjustments(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	_, err = store.Adjust("alice", "P1", 2, AddWork, false)
	require.NoError(t, err)
	_, err = store.Adjust("alice", "P1", 0.5, RemoveWork, false)
	require.NoError(t, err)

	matrix, err := store.WeeklySummary("alice", WeekStart(*now))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, matrix.GrandTotal(), 1e-9)
}

func TestDetailedEntriesNewestFirst(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	day1 := dateOf(*now)
	bookHours(t, store, now, "P1", 1.0)
	*now = day1.AddDate(0, 0, 1).Add(9 * time.Hour)
	bookHours(t, store, now, "P1", 2.0)
	_, err = store.Adjust("alice", "P1", 0.5, AddWork, false)
	require.NoError(t, err)

	detail, err := store.DetailedEntries("P1", "alice")
	require.NoError(t, err)
	require.Len(t, detail.Entries, 3)

	// Newest day first; same-day rows newest insert first.
	assert.True(t, detail.Entries[0].Manual())
	assert.InDelta(t, 2.0, detail.Entries[1].DurationHours, 1e-9)
	assert.InDelta(t, 1.0, detail.Entries[2].DurationHours, 1e-9)
	assert.InDelta(t, 36.5, detail.Project.RemainingHours, 1e-9)

	_, err = store.DetailedEntries("NOPE", "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
