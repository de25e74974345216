package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktracker/internal/entities"
)

func testDBPath(t *testing.T) string {
	return "./test_database_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
}

func TestNewDatabase(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable(&entities.User{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Book{}))
}

func TestNewDatabase_Idempotent(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.User{Username: "alice", PasswordHash: "x"}).Error)
	require.NoError(t, db.Close())

	// Reopening against an existing schema must not fail or lose data
	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.DB.Create(&entities.User{Username: "alice", PasswordHash: "x"}).Error)

	err = db.DB.Create(&entities.User{Username: "alice", PasswordHash: "y"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueConstraintViolation(err))
}

func TestIsUniqueConstraintViolation_OtherErrors(t *testing.T) {
	assert.False(t, IsUniqueConstraintViolation(nil))
	assert.False(t, IsUniqueConstraintViolation(os.ErrNotExist))
}
