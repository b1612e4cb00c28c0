package domain

import (
	"context"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrUsernameTaken indicates a username collision on registration.
	ErrUsernameTaken = apperrors.New(apperrors.CodeUserUsernameTaken, "expected `username` to be unique")
)

// OwnerSummary is the denormalized owner identity attached to query
// results for display. It is not authoritative storage.
type OwnerSummary struct {
	ID       string
	Username string
	Name     string
}

// BlogWithOwner pairs a blog with its resolved owner summary.
type BlogWithOwner struct {
	Blog  Blog
	Owner OwnerSummary
}

// UserWithBlogs pairs a user with the blogs in its owned-set.
type UserWithBlogs struct {
	User  User
	Blogs []Blog
}

// BlogStore persists blog records and maintains the owner's owned-set.
//
// CreateBlog and DeleteBlog mutate the blog record and the owning user's
// owned-set atomically: either both writes commit or neither does, so the
// bidirectional User-Blog invariant holds after every call.
type BlogStore interface {
	CreateBlog(ctx context.Context, blog Blog) error
	GetBlog(ctx context.Context, blogID string) (Blog, error)
	ReplaceBlog(ctx context.Context, blog Blog) error
	DeleteBlog(ctx context.Context, blogID string) error
	ListBlogs(ctx context.Context) ([]BlogWithOwner, error)
}

// UserStore persists user records.
type UserStore interface {
	// PutUser inserts a user, returning ErrUsernameTaken on a duplicate
	// username.
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]UserWithBlogs, error)
	// ListUserBlogIDs returns the user's owned-set of blog identifiers.
	// Serving reads denormalize through ListUsers; this accessor exists
	// so tests can inspect the owned-set side of the relation directly.
	ListUserBlogIDs(ctx context.Context, userID string) ([]string, error)
}

// ResetStore truncates all records. Only the test-support route uses it.
type ResetStore interface {
	Reset(ctx context.Context) error
}
