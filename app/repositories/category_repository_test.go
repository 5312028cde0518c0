package repositories

import (
	"testing"

	"blogicum/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepositorySlugLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerCategoryRepository(db)

	category := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, repo.Create(category))
	assert.Equal(t, 1, category.ID)

	bySlug, err := repo.GetBySlug("travel")
	require.NoError(t, err)
	assert.Equal(t, category.ID, bySlug.ID)
	assert.Equal(t, "Travel", bySlug.Title)

	_, err = repo.GetBySlug("no-such-slug")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepositorySlugUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerCategoryRepository(db)

	require.NoError(t, repo.Create(&models.Category{Title: "Travel", Slug: "travel", IsPublished: true}))
	err := repo.Create(&models.Category{Title: "More travel", Slug: "travel", IsPublished: true})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCategoryRepositoryListOrdered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerCategoryRepository(db)

	require.NoError(t, repo.Create(&models.Category{Title: "Travel", Slug: "travel", IsPublished: true}))
	require.NoError(t, repo.Create(&models.Category{Title: "Food", Slug: "food", IsPublished: false}))

	categories, err := repo.List()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "travel", categories[0].Slug)
	assert.Equal(t, "food", categories[1].Slug)
}

func TestLocationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerLocationRepository(db)

	location := &models.Location{Name: "The mountains", IsPublished: true}
	require.NoError(t, repo.Create(location))
	assert.Equal(t, 1, location.ID)

	fetched, err := repo.GetByID(location.ID)
	require.NoError(t, err)
	assert.Equal(t, "The mountains", fetched.Name)

	require.NoError(t, repo.Create(&models.Location{Name: "The sea", IsPublished: true}))
	locations, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, locations, 2)
}
