package models

import "time"

// Access rules for posts and comments. All of these are pure
// predicates: viewer may be nil for an anonymous visitor, in which
// case no ownership check can succeed.
//
// A post is "live" when it is published, its pub date has passed and
// its category (if it has one) is itself published. Authors always see
// their own posts, live or not, so they can preview drafts and
// scheduled entries.

// IsPostVisible reports whether viewer may see post at the given time.
// The author bypass is checked before the publication rule; that order
// matters and is relied on by the detail view and every feed.
// post.Category must be attached when the post has one.
func IsPostVisible(viewer *User, post *Post, now time.Time) bool {
	if viewer != nil && viewer.ID == post.AuthorID {
		return true
	}
	return IsPostLive(post, now)
}

// IsPostLive applies the public three-way rule, ignoring the viewer.
func IsPostLive(post *Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if !post.HasCategory() {
		return true
	}
	return post.Category != nil && post.Category.IsPublished
}

// CanEditPost reports whether viewer may edit post.
func CanEditPost(viewer *User, post *Post) bool {
	return viewer != nil && viewer.ID == post.AuthorID
}

// CanDeletePost reports whether viewer may delete post.
func CanDeletePost(viewer *User, post *Post) bool {
	return viewer != nil && viewer.ID == post.AuthorID
}

// CanMutateComment reports whether viewer may edit or delete comment.
func CanMutateComment(viewer *User, comment *Comment) bool {
	return viewer != nil && viewer.ID == comment.AuthorID
}

// CanCommentOnPost reports whether viewer may comment on post. Note
// the gate is only IsPublished: neither the pub date nor the category
// state is consulted, so commenting is allowed on posts that are not
// yet viewable to the public. Weaker than IsPostVisible on purpose.
func CanCommentOnPost(viewer *User, post *Post) bool {
	return viewer != nil && post.IsPublished
}
