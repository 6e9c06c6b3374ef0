package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wigilabs/timeledger/internal/models"
)

func TestAdjustAddConsumesBudget(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	project, err := store.Adjust("alice", "P1", 2.5, AddWork, false)
	require.NoError(t, err)
	assert.InDelta(t, 37.5, project.RemainingHours, 1e-9)
	assert.False(t, project.Finished)

	var entry models.TimeLog
	require.NoError(t, store.db.Where("project_code = ?", "P1").First(&entry).Error)
	assert.True(t, entry.Manual())
	assert.Equal(t, models.ManualMarker, entry.StartClock)
	assert.Equal(t, models.ManualMarker, entry.EndClock)
	assert.InDelta(t, 2.5, entry.DurationHours, 1e-9)
}

func TestAdjustRemoveCanExceedAllocation(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	// Book 2.5h, then return 5h: the balance passes the allocation
	// without clamping.
	_, err = store.Adjust("alice", "P1", 2.5, AddWork, false)
	require.NoError(t, err)
	project, err := store.Adjust("alice", "P1", 5, RemoveWork, false)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, project.RemainingHours, 1e-9)

	var entry models.TimeLog
	require.NoError(t, store.db.
		Where("project_code = ? AND duration_hours < 0", "P1").
		First(&entry).Error)
	assert.InDelta(t, -5.0, entry.DurationHours, 1e-9)
}

func TestAdjustCanDriveBalanceNegative(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 1)
	require.NoError(t, err)

	project, err := store.Adjust("alice", "P1", 10, AddWork, false)
	require.NoError(t, err)
	assert.InDelta(t, -9.0, project.RemainingHours, 1e-9)
}

func TestAdjustValidation(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.Register("bob", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	_, err = store.Adjust("alice", "P1", 0, AddWork, false)
	assert.ErrorIs(t, err, ErrInvalidHours)
	_, err = store.Adjust("alice", "P1", -2, AddWork, false)
	assert.ErrorIs(t, err, ErrInvalidHours)
	_, err = store.Adjust("alice", "P1", 1, Direction("sideways"), false)
	assert.ErrorIs(t, err, ErrInvalidHours)
	_, err = store.Adjust("alice", "NOPE", 1, AddWork, false)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Adjust("bob", "P1", 1, AddWork, false)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Managers may adjust anyone's project.
	_, err = store.Adjust("admin", "P1", 1, AddWork, false)
	assert.NoError(t, err)
}

func TestAdjustFinalizeFlipsFinished(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	project, err := store.Adjust("alice", "P1", 1, AddWork, true)
	require.NoError(t, err)
	assert.True(t, project.Finished)
}

func TestReplayedRemainingMatchesJournal(t *testing.T) {
	store, now := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	require.NoError(t, store.StartTimer("alice", "P1"))
	*now = now.Add(2 * time.Hour)
	_, err = store.StopTimer("alice")
	require.NoError(t, err)

	_, err = store.Adjust("alice", "P1", 3, AddWork, false)
	require.NoError(t, err)
	_, err = store.Adjust("alice", "P1", 1, RemoveWork, false)
	require.NoError(t, err)

	replayed, err := store.ReplayedRemaining("P1")
	require.NoError(t, err)
	assert.InDelta(t, 36.0, replayed, 1e-9) // 40 - 2 - 3 + 1

	project, err := store.GetProject("P1")
	require.NoError(t, err)
	assert.InDelta(t, replayed, project.RemainingHours, 1e-9)
}

func TestReconcileRepairsDrift(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)
	_, err = store.Adjust("alice", "P1", 4, AddWork, false)
	require.NoError(t, err)

	// Corrupt the running total behind the journal's back.
	require.NoError(t, store.db.Model(&models.Project{}).
		Where("code = ?", "P1").
		Update("remaining_hours", 99.0).Error)

	stored, replayed, err := store.ReconcileProject("alice", "P1")
	require.NoError(t, err)
	assert.InDelta(t, 99.0, stored, 1e-9)
	assert.InDelta(t, 36.0, replayed, 1e-9)

	project, err := store.GetProject("P1")
	require.NoError(t, err)
	assert.InDelta(t, 36.0, project.RemainingHours, 1e-9)

	// A second reconcile reports consistency.
	stored, replayed, err = store.ReconcileProject("alice", "P1")
	require.NoError(t, err)
	assert.Equal(t, stored, replayed)
}

func TestReconcileRequiresOwnership(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.Register("bob", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 40)
	require.NoError(t, err)

	// Corrupt the running total behind the journal's back.
	require.NoError(t, store.db.Model(&models.Project{}).
		Where("code = ?", "P1").
		Update("remaining_hours", 99.0).Error)

	_, _, err = store.ReconcileProject("bob", "P1")
	assert.ErrorIs(t, err, ErrNotOwner)
	_, _, err = store.ReconcileProject("ghost", "P1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The rejected reconcile must not have touched the balance.
	project, err := store.GetProject("P1")
	require.NoError(t, err)
	assert.InDelta(t, 99.0, project.RemainingHours, 1e-9)

	// Managers may reconcile anyone's project.
	_, replayed, err := store.ReconcileProject("admin", "P1")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, replayed, 1e-9)
}
