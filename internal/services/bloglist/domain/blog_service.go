package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
	"github.com/reettakoskinen/fullstack-part5/internal/platform/id"
)

// ErrNotBlogOwner indicates a delete attempt by a non-owner.
var ErrNotBlogOwner = apperrors.New(apperrors.CodeNotBlogOwner, "not authorized to delete this blog")

// BlogServiceConfig overrides clock and identifier generation, mainly
// for tests.
type BlogServiceConfig struct {
	Clock func() time.Time
	NewID func() (string, error)
}

// BlogService implements blog mutations and queries over an injected
// blog store.
type BlogService struct {
	blogs BlogStore
	clock func() time.Time
	newID func() (string, error)
}

// NewBlogService builds a blog service from a blog store.
func NewBlogService(blogs BlogStore, cfg BlogServiceConfig) *BlogService {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}
	return &BlogService{
		blogs: blogs,
		clock: clock,
		newID: newID,
	}
}

// Create validates the input and persists a new blog owned by the acting
// identity. The blog row and the owner's owned-set entry are written in
// one store transaction; a rejected request leaves no state behind.
func (s *BlogService) Create(ctx context.Context, identity Identity, input CreateBlogInput) (Blog, error) {
	if s == nil || s.blogs == nil {
		return Blog{}, errors.New("blog service is not configured")
	}
	if strings.TrimSpace(identity.UserID) == "" {
		return Blog{}, ErrTokenMissing
	}

	blog, err := NewBlog(identity, input, s.clock, s.newID)
	if err != nil {
		return Blog{}, err
	}

	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return Blog{}, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// Update applies a partial update to an existing blog. Unset fields
// retain their prior values; identifier and owner are immutable.
//
// Update deliberately performs no ownership check, matching the delete
// asymmetry the API has always had.
func (s *BlogService) Update(ctx context.Context, blogID string, input UpdateBlogInput) (Blog, error) {
	if s == nil || s.blogs == nil {
		return Blog{}, errors.New("blog service is not configured")
	}

	blog, err := s.blogs.GetBlog(ctx, blogID)
	if err != nil {
		return Blog{}, err
	}

	updated, err := input.Apply(blog, s.clock)
	if err != nil {
		return Blog{}, err
	}

	if err := s.blogs.ReplaceBlog(ctx, updated); err != nil {
		return Blog{}, fmt.Errorf("replace blog: %w", err)
	}
	return updated, nil
}

// Delete removes a blog after confirming the acting identity owns it.
// The blog row and the owner's owned-set entry are removed in one store
// transaction. A non-owner request leaves the record untouched.
func (s *BlogService) Delete(ctx context.Context, identity Identity, blogID string) error {
	if s == nil || s.blogs == nil {
		return errors.New("blog service is not configured")
	}

	blog, err := s.blogs.GetBlog(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.OwnerID != identity.UserID {
		return ErrNotBlogOwner
	}

	if err := s.blogs.DeleteBlog(ctx, blogID); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// List returns every blog with its owner summary denormalized in, in
// storage order. Reads are public and bypass the gate.
func (s *BlogService) List(ctx context.Context) ([]BlogWithOwner, error) {
	if s == nil || s.blogs == nil {
		return nil, errors.New("blog service is not configured")
	}
	blogs, err := s.blogs.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}
