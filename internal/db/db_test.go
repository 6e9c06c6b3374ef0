package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wigilabs/timeledger/internal/models"
)

func TestOpenMigratesAndSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	gdb, err := Open(path)
	require.NoError(t, err)

	var admin models.User
	require.NoError(t, gdb.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.Manager)
	require.NoError(t, Close(gdb))

	// Reopening must not duplicate the seed.
	gdb, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenInMemoryIsIsolated(t *testing.T) {
	first, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(first) })
	second, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(second) })

	require.NoError(t, first.Create(&models.Project{Code: "P1", Name: "One", Owner: "admin"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}
