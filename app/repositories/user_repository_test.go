package repositories

import (
	"testing"

	"blogicum/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(username string) *models.User {
	return &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	user := newTestUser("alice")
	require.NoError(t, repo.Create(user))
	assert.Equal(t, 1, user.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUsernameUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	require.NoError(t, repo.Create(newTestUser("alice")))
	err := repo.Create(newTestUser("alice"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserRepositoryUpdateRename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	alice := newTestUser("alice")
	require.NoError(t, repo.Create(alice))
	require.NoError(t, repo.Create(newTestUser("bob")))

	// Renaming moves the index entry.
	alice.Username = "wonderland"
	require.NoError(t, repo.Update(alice))

	_, err := repo.GetByUsername("alice")
	assert.ErrorIs(t, err, ErrNotFound)
	moved, err := repo.GetByUsername("wonderland")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, moved.ID)

	// Renaming onto a taken name fails.
	alice.Username = "bob"
	assert.ErrorIs(t, repo.Update(alice), ErrUsernameTaken)
}
