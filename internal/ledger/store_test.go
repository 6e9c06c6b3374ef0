package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wigilabs/timeledger/internal/db"
)

// newTestStore opens a fresh in-memory database with a controllable
// clock starting at a fixed Monday morning.
func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local) // Monday
	store := New(gdb, nil)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestRegisterAndLogin(t *testing.T) {
	store, _ := newTestStore(t)

	user, err := store.Register("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Manager)
	assert.False(t, user.Working)

	_, err = store.Register("alice", "other")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	got, err := store.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = store.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Login("nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeededManagerAccount(t *testing.T) {
	store, _ := newTestStore(t)

	admin, err := store.Login("admin", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.Manager)
}

func TestCreateProject(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)

	project, err := store.CreateProject("alice", "P1", "Website redesign", 40)
	require.NoError(t, err)
	assert.Equal(t, 40.0, project.AllocatedHours)
	assert.Equal(t, 40.0, project.RemainingHours)
	assert.False(t, project.Finished)

	_, err = store.CreateProject("alice", "P1", "Duplicate", 10)
	assert.ErrorIs(t, err, ErrDuplicateProject)

	_, err = store.CreateProject("alice", "P2", "Negative", -1)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestProjectVisibility(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.Register("bob", "secret")
	require.NoError(t, err)

	_, err = store.CreateProject("alice", "A1", "Alice's", 10)
	require.NoError(t, err)
	_, err = store.CreateProject("bob", "B1", "Bob's", 10)
	require.NoError(t, err)

	aliceSees, err := store.ProjectsFor("alice")
	require.NoError(t, err)
	require.Len(t, aliceSees, 1)
	assert.Equal(t, "A1", aliceSees[0].Code)

	// Managers see every owner's projects.
	adminSees, err := store.ProjectsFor("admin")
	require.NoError(t, err)
	assert.Len(t, adminSees, 2)

	_, err = store.ProjectsFor("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenProjectsExcludeFinished(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)

	_, err = store.CreateProject("alice", "P1", "Open one", 10)
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P2", "Done one", 10)
	require.NoError(t, err)

	_, err = store.Adjust("alice", "P2", 1, AddWork, true)
	require.NoError(t, err)

	open, err := store.OpenProjectsFor("alice")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "P1", open[0].Code)

	// The finished project stays visible in the full listing.
	all, err := store.ProjectsFor("alice")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStatusOverviewRequiresManager(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Register("alice", "secret")
	require.NoError(t, err)
	_, err = store.CreateProject("alice", "P1", "One", 10)
	require.NoError(t, err)

	_, err = store.StatusOverview("alice")
	assert.ErrorIs(t, err, ErrNotManager)

	projects, err := store.StatusOverview("admin")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestSentinelErrorsAreDistinguishable(t *testing.T) {
	// The command layer relies on errors.Is to map failures to
	// messages; make sure the sentinels stay distinct.
	sentinels := []error{
		ErrDuplicateUser, ErrInvalidCredentials, ErrDuplicateProject,
		ErrNotFound, ErrNotOwner, ErrNotManager, ErrProjectFinished,
		ErrAlreadyWorking, ErrNotWorking, ErrInvalidHours,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v matched %v", a, b)
		}
	}
}
