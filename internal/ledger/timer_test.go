package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wigilabs/timeledger/internal/models"
)

func TestStartStopBooksElapsedHours(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "Website redesign", 40)
	require.NoError(t, err)

	require.NoError(t, store.StartTimer("alice", "P1"))

	active, err := store.ActiveTimer("alice")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "P1", *active.ActiveProjectCode)
	assert.True(t, active.IsTimerConsistent())

	*now = now.Add(2*time.Hour + 30*time.Minute)

	entry, err := store.StopTimer("alice")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, entry.DurationHours, 1e-9)
	assert.Equal(t, "P1", entry.ProjectCode)
	assert.Equal(t, "09:00:00", entry.StartClock)
	assert.Equal(t, "11:30:00", entry.EndClock)
	assert.False(t, entry.Manual())

	project, err := store.GetProject("P1")
	require.NoError(t, err)
	assert.InDelta(t, 37.5, project.RemainingHours, 1e-9)

	// Exactly one journal row per stop.
	var count int64
	require.NoError(t, store.db.Model(&models.TimeLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	idle, err := store.ActiveTimer("alice")
	require.NoError(t, err)
	assert.Nil(t, idle)
}

func TestDoubleStartIsRejected(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P2", "Two", 40)
	require.NoError(t, err)

	require.NoError(t, store.StartTimer("alice", "P1"))
	assert.ErrorIs(t, store.StartTimer("alice", "P1"), ErrAlreadyWorking)
	assert.ErrorIs(t, store.StartTimer("alice", "P2"), ErrAlreadyWorking)

	// The rejected second start must not have moved the timer: the
	// eventual stop books against P1 from the original start time.
	*now = now.Add(time.Hour)
	entry, err := store.StopTimer("alice")
	require.NoError(t, err)
	assert.Equal(t, "P1", entry.ProjectCode)
	assert.InDelta(t, 1.0, entry.DurationHours, 1e-9)
}

func TestStopWithoutStart(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)

	_, err = store.StopTimer("alice")
	assert.ErrorIs(t, err, ErrNotWorking)

	_, err = store.StopTimer("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecondStopDoesNotDoubleDecrement(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	require.NoError(t, store.StartTimer("alice", "P1"))
	*now = now.Add(time.Hour)

	_, err = store.StopTimer("alice")
	require.NoError(t, err)
	_, err = store.StopTimer("alice")
	assert.ErrorIs(t, err, ErrNotWorking)

	project, err := store.GetProject("P1")
	require.NoError(t, err)
	assert.InDelta(t, 39.0, project.RemainingHours, 1e-9)

	var count int64
	require.NoError(t, store.db.Model(&models.TimeLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStopRepairsInconsistentTimerState(t *testing.T) {
	store, _ := newTestStore(t)
	user, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	// Simulate a row where the flag was set but the timer fields were
	// lost (the drift the old tool silently ignored).
	require.NoError(t, store.db.Model(user).Update("working", true).Error)

	_, err = store.StopTimer("alice")
	assert.ErrorIs(t, err, ErrNotWorking)

	// The clear must survive the rolled-back stop transaction, or the
	// account stays wedged: unable to start, unable to stop.
	repaired, err := store.GetUser("alice")
	require.NoError(t, err)
	assert.False(t, repaired.Working)
	assert.True(t, repaired.IsTimerConsistent())

	var count int64
	require.NoError(t, store.db.Model(&models.TimeLog{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.NoError(t, store.StartTimer("alice", "P1"))
}

func TestStartTimerPreconditions(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.Register("bob", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "Alice's", 40)
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "DONE", "Finished", 40)
	require.NoError(t, err)
	_, err = store.Adjust("alice", "DONE", 1, AddWork, true)
	require.NoError(t, err)

	assert.ErrorIs(t, store.StartTimer("alice", "NOPE"), ErrNotFound)
	assert.ErrorIs(t, store.StartTimer("bob", "P1"), ErrNotOwner)
	assert.ErrorIs(t, store.StartTimer("alice", "DONE"), ErrProjectFinished)
	assert.ErrorIs(t, store.StartTimer("ghost", "P1"), ErrNotFound)

	// Managers may book time on anyone's project.
	assert.NoError(t, store.StartTimer("admin", "P1"))
}

func TestWeekStart(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset).Add(13 * time.Hour)
		assert.Equal(t, monday, WeekStart(day), "offset %d", offset)
	}
}
