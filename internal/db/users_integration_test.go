package db

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration round-trip against a real database. Skipped unless
// TEST_DATABASE_URL is set.
func TestStoreRoundTrip(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := InitTestDB("../../migrations")
	require.NoError(t, err)

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())

	id, err := store.CreateUser("Integration", email, "hashedpassword")
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	user, err := store.GetUserByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.Equal(t, "Integration", user.Name)
	assert.Equal(t, "hashedpassword", user.PasswordHash)

	byID, err := store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	err = store.UpdateUserProfile(id, "Updated", email)
	require.NoError(t, err)
	user, err = store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Updated", user.Name)
	assert.Equal(t, "hashedpassword", user.PasswordHash)

	err = store.UpdateUserCredentials(id, "Updated", email, "rotatedhash")
	require.NoError(t, err)
	user, err = store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "rotatedhash", user.PasswordHash)

	rows, err := store.DeleteUser(id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = store.GetUserByID(id)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	rows, err = store.DeleteUser(id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestUpdateUnknownUser(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := InitTestDB("../../migrations")
	require.NoError(t, err)

	err = store.UpdateUserProfile(-1, "Nobody", "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.UpdateUserCredentials(-1, "Nobody", "nobody@example.com", "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}
