package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.UpdatedAt.Before(p.CreatedAt) {
		return errors.New("updated_at cannot precede created_at")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
}

// Touch refreshes the update timestamp.
func (p *Post) Touch() {
	p.UpdatedAt = time.Now().UTC()
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
}

// Apply merges a partial update into the post.
func (p *Post) Apply(req *UpdatePostRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	p.Touch()
}

// ValidateCreatePost validates a post-creation request.
func ValidateCreatePost(req *CreatePostRequest) error {
	return validate.Struct(req)
}

// ValidateUpdatePost validates a partial-update request.
func ValidateUpdatePost(req *UpdatePostRequest) error {
	if req.Title == nil && req.Content == nil {
		return errors.New("nothing to update")
	}
	return validate.Struct(req)
}
