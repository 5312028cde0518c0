package services

import (
	"fmt"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// CommentService handles business logic for comments. Post lookups
// here require only IsPublished, not full visibility: that gate is
// weaker than the one on viewing and is kept that way deliberately.
// Ownership checks are folded into the lookups, so "not yours" and
// "does not exist" are both ErrNotFound.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// GetPublishedPost retrieves a post for commenting. Unpublished posts
// are ErrNotFound even to their author.
func (s *CommentService) GetPublishedPost(postID int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// AddComment creates a comment by author on the given post.
func (s *CommentService) AddComment(postID int, author *models.User, text string) (*models.Comment, error) {
	post, err := s.GetPublishedPost(postID)
	if err != nil {
		return nil, err
	}
	if !models.CanCommentOnPost(author, post) {
		return nil, repositories.ErrNotFound
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetOwnedComment retrieves a comment only if viewer wrote it and it
// belongs to the given post.
func (s *CommentService) GetOwnedComment(postID, commentID int, viewer *models.User) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID || !models.CanMutateComment(viewer, comment) {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

// EditComment updates the text of viewer's own comment on a published
// post.
func (s *CommentService) EditComment(postID, commentID int, viewer *models.User, text string) (*models.Comment, error) {
	if _, err := s.GetPublishedPost(postID); err != nil {
		return nil, err
	}
	comment, err := s.GetOwnedComment(postID, commentID, viewer)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deletes viewer's own comment on the given post.
func (s *CommentService) DeleteComment(postID, commentID int, viewer *models.User) error {
	comment, err := s.GetOwnedComment(postID, commentID, viewer)
	if err != nil {
		return err
	}
	return s.commentRepo.Delete(comment.ID)
}
