package models

import "time"

// User is a registered author. PasswordHash is a bcrypt hash owned by
// the auth layer and is never rendered.
type User struct {
	ID           int       `validate:"gte=0"`
	Username     string    `validate:"required,min=3,max=150"`
	Email        string    `validate:"required,email"`
	FirstName    string    `validate:"max=150"`
	LastName     string    `validate:"max=150"`
	PasswordHash string    `json:"-" validate:"required"`
	CreatedAt    time.Time `validate:"-"`
}

// Category groups posts and carries the slug used in feed URLs.
// Categories are seeded by an administrator and hidden via IsPublished
// rather than deleted.
type Category struct {
	ID          int       `validate:"gte=0"`
	Title       string    `validate:"required,max=256"`
	Slug        string    `validate:"required,max=64"`
	Description string    `validate:"-"`
	IsPublished bool      `validate:"-"`
	CreatedAt   time.Time `validate:"-"`
}

// Location is an optional place tag on a post. Same lifecycle as
// Category.
type Location struct {
	ID          int       `validate:"gte=0"`
	Name        string    `validate:"required,max=256"`
	IsPublished bool      `validate:"-"`
	CreatedAt   time.Time `validate:"-"`
}

// Post is a blog entry. PubDate may be in the future, which schedules
// publication. CategoryID and LocationID of zero mean "none".
type Post struct {
	ID          int       `validate:"gte=0"`
	Title       string    `validate:"required,min=1,max=256"`
	Text        string    `validate:"required"`
	PubDate     time.Time `validate:"required"`
	AuthorID    int       `validate:"required,gte=1"`
	CategoryID  int       `validate:"gte=0"`
	LocationID  int       `validate:"gte=0"`
	Image       string    `validate:"-"`
	IsPublished bool      `validate:"-"`
	CreatedAt   time.Time `validate:"-"`

	// Joined and derived fields, populated by the service layer.
	// Never persisted.
	Author       *User      `json:"-" validate:"-"`
	Category     *Category  `json:"-" validate:"-"`
	Location     *Location  `json:"-" validate:"-"`
	Comments     []*Comment `json:"-" validate:"-"`
	CommentCount int        `json:"-" validate:"-"`
}

// Comment belongs to a post and its author. Comments are displayed
// oldest first.
type Comment struct {
	ID        int       `validate:"gte=0"`
	PostID    int       `validate:"required,gte=1"`
	AuthorID  int       `validate:"required,gte=1"`
	Text      string    `validate:"required,max=2000"`
	CreatedAt time.Time `validate:"-"`

	Author *User `json:"-" validate:"-"`
}

// Session is a server-side login session resolved from the session
// cookie.
type Session struct {
	Token     string
	UserID    int
	ExpiresAt time.Time
}
