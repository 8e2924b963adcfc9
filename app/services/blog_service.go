package services

import (
	"errors"
	"fmt"

	"weblog/app/models"
	"weblog/app/repositories"
)

// ErrForbidden is returned when a user mutates a post they do not own.
var ErrForbidden = errors.New("forbidden")

// BlogService handles business logic for blog posts
type BlogService struct {
	postRepo repositories.PostRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(postRepo repositories.PostRepository) *BlogService {
	return &BlogService{postRepo: postRepo}
}

// CreatePost creates a new post authored by authorID.
func (s *BlogService) CreatePost(req *models.CreatePostRequest, authorID int) (*models.Post, error) {
	if err := models.ValidateCreatePost(req); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *BlogService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves an ordered window of posts. Negative values are
// clamped; a zero limit falls back to the default of 10.
func (s *BlogService) ListPosts(limit, offset int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.List(limit, offset)
}

// UpdatePost applies a partial update to a post. Only the author may
// update; anyone else gets ErrForbidden regardless of what the client
// claimed about ownership.
func (s *BlogService) UpdatePost(id int, req *models.UpdatePostRequest, actorID int) (*models.Post, error) {
	if err := models.ValidateUpdatePost(req); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	post.Apply(req)

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post after re-checking authorship.
func (s *BlogService) DeletePost(id, actorID int) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}

	return s.postRepo.Delete(id)
}
