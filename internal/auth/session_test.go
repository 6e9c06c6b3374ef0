package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wigilabs/timeledger/internal/models"
)

func TestSessionRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	user := &models.User{Username: "alice", Manager: true}

	require.NoError(t, Save(path, "secret", user))

	sess, err := Load(path, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.True(t, sess.Manager)
}

func TestLoadRejectsWrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, Save(path, "secret", &models.User{Username: "alice"}))

	_, err := Load(path, "other-secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadRejectsTamperedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, Save(path, "secret", &models.User{Username: "alice"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0600))

	_, err = Load(path, "secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), "secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, Save(path, "secret", &models.User{Username: "alice"}))

	require.NoError(t, Clear(path))
	_, err := Load(path, "secret")
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine.
	require.NoError(t, Clear(path))
}
