package services

import (
	"fmt"
	"testing"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type feedFixture struct {
	posts      *mock.PostRepository
	comments   *mock.CommentRepository
	users      *mock.UserRepository
	categories *mock.CategoryRepository
	locations  *mock.LocationRepository
	feed       *FeedService
	alice      *models.User
	bob        *models.User
}

func newFeedFixture(t *testing.T, pageSize int) *feedFixture {
	f := &feedFixture{
		posts:      mock.NewPostRepository(),
		comments:   mock.NewCommentRepository(),
		users:      mock.NewUserRepository(),
		categories: mock.NewCategoryRepository(),
		locations:  mock.NewLocationRepository(),
	}
	f.feed = NewFeedService(f.posts, f.comments, f.users, f.categories, f.locations, pageSize)

	f.alice = &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, f.users.Create(f.alice))
	f.bob = &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, f.users.Create(f.bob))
	return f
}

func (f *feedFixture) addPost(t *testing.T, post *models.Post) *models.Post {
	t.Helper()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = feedNow
	}
	require.NoError(t, f.posts.Create(post))
	return post
}

func TestPublicFeedFiltersAndOrders(t *testing.T) {
	f := newFeedFixture(t, 0)

	published := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, f.categories.Create(published))
	hidden := &models.Category{Title: "Secret", Slug: "secret", IsPublished: false}
	require.NoError(t, f.categories.Create(hidden))

	older := f.addPost(t, &models.Post{Title: "older", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-2 * time.Hour), IsPublished: true, CategoryID: published.ID})
	newer := f.addPost(t, &models.Post{Title: "newer", Text: "t", AuthorID: f.bob.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true})
	f.addPost(t, &models.Post{Title: "draft", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: false})
	f.addPost(t, &models.Post{Title: "scheduled", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(time.Hour), IsPublished: true})
	f.addPost(t, &models.Post{Title: "hidden category", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true, CategoryID: hidden.ID})

	require.NoError(t, f.comments.Create(&models.Comment{PostID: older.ID, AuthorID: f.bob.ID, Text: "hi", CreatedAt: feedNow}))

	page, err := f.feed.PublicFeed(feedNow, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, newer.ID, page.Posts[0].ID)
	assert.Equal(t, older.ID, page.Posts[1].ID)

	// Relations and counts come attached.
	assert.Equal(t, "bob", page.Posts[0].Author.Username)
	assert.Equal(t, "Travel", page.Posts[1].Category.Title)
	assert.Equal(t, 1, page.Posts[1].CommentCount)
	assert.Zero(t, page.Posts[0].CommentCount)
}

func TestPublicFeedTieBreaksByID(t *testing.T) {
	f := newFeedFixture(t, 0)

	when := feedNow.Add(-time.Hour)
	first := f.addPost(t, &models.Post{Title: "a", Text: "t", AuthorID: f.alice.ID, PubDate: when, IsPublished: true})
	second := f.addPost(t, &models.Post{Title: "b", Text: "t", AuthorID: f.alice.ID, PubDate: when, IsPublished: true})

	page, err := f.feed.PublicFeed(feedNow, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, second.ID, page.Posts[0].ID)
	assert.Equal(t, first.ID, page.Posts[1].ID)
}

func TestPublicFeedPagination(t *testing.T) {
	f := newFeedFixture(t, 10)

	for i := 0; i < 25; i++ {
		f.addPost(t, &models.Post{
			Title: fmt.Sprintf("post %d", i), Text: "t", AuthorID: f.alice.ID,
			PubDate: feedNow.Add(-time.Duration(i+1) * time.Minute), IsPublished: true,
		})
	}

	page1, err := f.feed.PublicFeed(feedNow, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 25, page1.TotalCount)
	assert.False(t, page1.HasPrev())
	assert.True(t, page1.HasNext())

	page3, err := f.feed.PublicFeed(feedNow, 3)
	require.NoError(t, err)
	assert.Len(t, page3.Posts, 5)
	assert.True(t, page3.HasPrev())
	assert.False(t, page3.HasNext())

	// Out-of-range page numbers clamp instead of erroring.
	clamped, err := f.feed.PublicFeed(feedNow, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, clamped.Number)
	assert.Len(t, clamped.Posts, 5)

	low, err := f.feed.PublicFeed(feedNow, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, low.Number)
}

func TestPublicFeedEmpty(t *testing.T) {
	f := newFeedFixture(t, 0)

	page, err := f.feed.PublicFeed(feedNow, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.TotalCount)
}

func TestCategoryFeed(t *testing.T) {
	f := newFeedFixture(t, 0)

	travel := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, f.categories.Create(travel))
	food := &models.Category{Title: "Food", Slug: "food", IsPublished: true}
	require.NoError(t, f.categories.Create(food))

	inCategory := f.addPost(t, &models.Post{Title: "in", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true, CategoryID: travel.ID})
	f.addPost(t, &models.Post{Title: "elsewhere", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true, CategoryID: food.ID})
	f.addPost(t, &models.Post{Title: "uncategorized", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true})
	f.addPost(t, &models.Post{Title: "scheduled", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(time.Hour), IsPublished: true, CategoryID: travel.ID})

	category, page, err := f.feed.CategoryFeed("travel", feedNow, 1)
	require.NoError(t, err)
	assert.Equal(t, travel.ID, category.ID)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, inCategory.ID, page.Posts[0].ID)
}

func TestCategoryFeedUnknownOrUnpublished(t *testing.T) {
	f := newFeedFixture(t, 0)

	hidden := &models.Category{Title: "Secret", Slug: "secret", IsPublished: false}
	require.NoError(t, f.categories.Create(hidden))

	_, _, err := f.feed.CategoryFeed("no-such", feedNow, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// An unpublished category behaves exactly like a missing one.
	_, _, err = f.feed.CategoryFeed("secret", feedNow, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProfileFeedOwnerSeesEverything(t *testing.T) {
	f := newFeedFixture(t, 0)

	live := f.addPost(t, &models.Post{Title: "live", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true})
	draft := f.addPost(t, &models.Post{Title: "draft", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: false})
	scheduled := f.addPost(t, &models.Post{Title: "scheduled", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(time.Hour), IsPublished: true})
	f.addPost(t, &models.Post{Title: "someone else", Text: "t", AuthorID: f.bob.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true})

	own, err := f.feed.ProfileFeed(f.alice, f.alice, feedNow, 1)
	require.NoError(t, err)
	require.Len(t, own.Posts, 3)
	assert.Equal(t, scheduled.ID, own.Posts[0].ID)

	ids := []int{own.Posts[0].ID, own.Posts[1].ID, own.Posts[2].ID}
	assert.Contains(t, ids, draft.ID)
	assert.Contains(t, ids, live.ID)
}

func TestProfileFeedVisitorSeesOnlyLive(t *testing.T) {
	f := newFeedFixture(t, 0)

	live := f.addPost(t, &models.Post{Title: "live", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: true})
	f.addPost(t, &models.Post{Title: "draft", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(-time.Hour), IsPublished: false})
	f.addPost(t, &models.Post{Title: "scheduled", Text: "t", AuthorID: f.alice.ID,
		PubDate: feedNow.Add(time.Hour), IsPublished: true})

	asBob, err := f.feed.ProfileFeed(f.alice, f.bob, feedNow, 1)
	require.NoError(t, err)
	require.Len(t, asBob.Posts, 1)
	assert.Equal(t, live.ID, asBob.Posts[0].ID)

	anonymous, err := f.feed.ProfileFeed(f.alice, nil, feedNow, 1)
	require.NoError(t, err)
	require.Len(t, anonymous.Posts, 1)
	assert.Equal(t, live.ID, anonymous.Posts[0].ID)
}
