package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
	"github.com/reettakoskinen/fullstack-part5/internal/platform/id"
)

var (
	// ErrTitleOrURLMissing indicates a create request without a title or url.
	ErrTitleOrURLMissing = apperrors.New(apperrors.CodeBlogTitleOrURLMissing, "title or url missing")
	// ErrLikesNegative indicates a likes value below zero.
	ErrLikesNegative = apperrors.New(apperrors.CodeBlogLikesNegative, "likes must be greater than or equal to zero")
)

// Blog represents one persisted blog record.
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBlogInput describes the fields accepted when creating a blog.
// Likes is optional and defaults to zero when nil.
type CreateBlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// UpdateBlogInput describes a partial blog update. Nil fields retain
// their prior values.
type UpdateBlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// NewBlog validates create input and builds a blog owned by the acting
// identity. Validation failures happen before any identifier is
// allocated, so a rejected request has no side effects.
func NewBlog(identity Identity, input CreateBlogInput, now func() time.Time, idGenerator func() (string, error)) (Blog, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	title := strings.TrimSpace(input.Title)
	url := strings.TrimSpace(input.URL)
	if title == "" || url == "" {
		return Blog{}, ErrTitleOrURLMissing
	}

	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}
	if likes < 0 {
		return Blog{}, ErrLikesNegative
	}

	blogID, err := idGenerator()
	if err != nil {
		return Blog{}, fmt.Errorf("generate blog id: %w", err)
	}

	createdAt := now().UTC()
	return Blog{
		ID:        blogID,
		Title:     title,
		Author:    strings.TrimSpace(input.Author),
		URL:       url,
		Likes:     likes,
		OwnerID:   identity.UserID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Apply merges the update into an existing blog. Identifier and owner
// are immutable and never touched.
func (input UpdateBlogInput) Apply(blog Blog, now func() time.Time) (Blog, error) {
	if now == nil {
		now = time.Now
	}

	if input.Title != nil {
		blog.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		blog.Author = strings.TrimSpace(*input.Author)
	}
	if input.URL != nil {
		blog.URL = strings.TrimSpace(*input.URL)
	}
	if input.Likes != nil {
		blog.Likes = *input.Likes
	}

	if blog.Title == "" || blog.URL == "" {
		return Blog{}, ErrTitleOrURLMissing
	}
	if blog.Likes < 0 {
		return Blog{}, ErrLikesNegative
	}

	blog.UpdatedAt = now().UTC()
	return blog, nil
}
