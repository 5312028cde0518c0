package repositories

import (
	"time"

	"blogicum/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	CountByPost(postID int) (int, error)
	Update(comment *models.Comment) error
	Delete(id int) error
	DeleteByPost(postID int) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id int) (*models.Location, error)
	List() ([]*models.Location, error)
}

// SessionRepository defines the interface for login session data access
type SessionRepository interface {
	Create(session *models.Session, ttl time.Duration) error
	Get(token string) (*models.Session, error)
	Delete(token string) error
}
