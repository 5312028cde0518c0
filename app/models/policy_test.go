package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var policyNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestIsPostVisibleAuthorBypass(t *testing.T) {
	author := &User{ID: 1, Username: "alice"}

	// The author sees their post no matter how unpublishable it is.
	posts := []*Post{
		{ID: 1, AuthorID: 1, IsPublished: false, PubDate: policyNow.Add(-time.Hour)},
		{ID: 2, AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(24 * time.Hour)},
		{
			ID: 3, AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(-time.Hour),
			CategoryID: 7, Category: &Category{ID: 7, IsPublished: false},
		},
	}
	for _, post := range posts {
		assert.True(t, IsPostVisible(author, post, policyNow), "post %d should be visible to its author", post.ID)
	}
}

func TestIsPostVisiblePublicRule(t *testing.T) {
	other := &User{ID: 2, Username: "bob"}

	tests := []struct {
		name    string
		post    *Post
		visible bool
	}{
		{
			name:    "published past post without category",
			post:    &Post{AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(-time.Hour)},
			visible: true,
		},
		{
			name:    "pub date exactly now",
			post:    &Post{AuthorID: 1, IsPublished: true, PubDate: policyNow},
			visible: true,
		},
		{
			name:    "unpublished",
			post:    &Post{AuthorID: 1, IsPublished: false, PubDate: policyNow.Add(-time.Hour)},
			visible: false,
		},
		{
			name:    "scheduled in the future",
			post:    &Post{AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(time.Minute)},
			visible: false,
		},
		{
			name: "published category",
			post: &Post{
				AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(-time.Hour),
				CategoryID: 3, Category: &Category{ID: 3, IsPublished: true},
			},
			visible: true,
		},
		{
			name: "hidden category",
			post: &Post{
				AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(-time.Hour),
				CategoryID: 3, Category: &Category{ID: 3, IsPublished: false},
			},
			visible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, IsPostVisible(other, tt.post, policyNow))
			// Anonymous viewers follow the same public rule.
			assert.Equal(t, tt.visible, IsPostVisible(nil, tt.post, policyNow))
		})
	}
}

func TestCanEditAndDeletePost(t *testing.T) {
	author := &User{ID: 1}
	other := &User{ID: 2}
	post := &Post{ID: 1, AuthorID: 1}

	assert.True(t, CanEditPost(author, post))
	assert.True(t, CanDeletePost(author, post))
	assert.False(t, CanEditPost(other, post))
	assert.False(t, CanDeletePost(other, post))
	assert.False(t, CanEditPost(nil, post))
	assert.False(t, CanDeletePost(nil, post))
}

func TestCanMutateComment(t *testing.T) {
	author := &User{ID: 3}
	comment := &Comment{ID: 1, PostID: 1, AuthorID: 3}

	assert.True(t, CanMutateComment(author, comment))
	assert.False(t, CanMutateComment(&User{ID: 4}, comment))
	assert.False(t, CanMutateComment(nil, comment))
}

func TestCanCommentOnPost(t *testing.T) {
	viewer := &User{ID: 2}

	// The gate is only IsPublished: a scheduled post in a hidden
	// category still takes comments.
	post := &Post{
		AuthorID: 1, IsPublished: true, PubDate: policyNow.Add(24 * time.Hour),
		CategoryID: 5, Category: &Category{ID: 5, IsPublished: false},
	}
	assert.True(t, CanCommentOnPost(viewer, post))
	assert.False(t, IsPostVisible(viewer, post, policyNow), "comment gate is weaker than the view gate")

	assert.False(t, CanCommentOnPost(viewer, &Post{AuthorID: 1, IsPublished: false}))
	assert.False(t, CanCommentOnPost(nil, &Post{AuthorID: 1, IsPublished: true}))
}
