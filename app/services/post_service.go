package services

import (
	"fmt"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	locationRepo repositories.LocationRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

// CreatePost creates a new post with validation. The author must
// already be set by the caller.
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID without any visibility check.
// Callers that serve the post to a viewer must use GetPostForViewer
// instead.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.attach(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostForViewer retrieves a post for display, with its comments
// attached oldest first. A post the viewer may not see is reported as
// ErrNotFound so hidden posts do not leak their existence.
func (s *PostService) GetPostForViewer(id int, viewer *models.User, now time.Time) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !models.IsPostVisible(viewer, post, now) {
		return nil, repositories.ErrNotFound
	}

	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, comment := range comments {
		author, err := s.userRepo.GetByID(comment.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load comment author: %w", err)
		}
		comment.Author = author
	}
	post.Comments = comments
	post.CommentCount = len(comments)

	return post, nil
}

// GetOwnedPost retrieves a post only if viewer is its author.
// Ownership is part of the lookup: anyone else gets ErrNotFound, the
// same as for a post that does not exist.
func (s *PostService) GetOwnedPost(id int, viewer *models.User) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !models.CanDeletePost(viewer, post) {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// UpdatePost updates an existing post with validation, preserving its
// author and creation time.
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	if post.Image == "" {
		post.Image = existing.Image
	}

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its comments. The lookup folds in
// ownership, so a non-author deleting a post gets ErrNotFound.
func (s *PostService) DeletePost(id int, viewer *models.User) error {
	if _, err := s.GetOwnedPost(id, viewer); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return s.postRepo.Delete(id)
}

// Categories lists the published categories offered on the post form.
func (s *PostService) Categories() ([]*models.Category, error) {
	all, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	var published []*models.Category
	for _, category := range all {
		if category.IsPublished {
			published = append(published, category)
		}
	}
	return published, nil
}

// Locations lists the published locations offered on the post form.
func (s *PostService) Locations() ([]*models.Location, error) {
	all, err := s.locationRepo.List()
	if err != nil {
		return nil, err
	}
	var published []*models.Location
	for _, location := range all {
		if location.IsPublished {
			published = append(published, location)
		}
	}
	return published, nil
}

// attach loads the post's author, category and location.
func (s *PostService) attach(post *models.Post) error {
	author, err := s.userRepo.GetByID(post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to load author: %w", err)
	}
	post.Author = author

	if post.HasCategory() {
		category, err := s.categoryRepo.GetByID(post.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category: %w", err)
		}
		post.Category = category
	}
	if post.HasLocation() {
		location, err := s.locationRepo.GetByID(post.LocationID)
		if err != nil {
			return fmt.Errorf("failed to load location: %w", err)
		}
		post.Location = location
	}
	return nil
}
