package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "bloglist.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func seedUser(t *testing.T, store *Store, id, username string) domain.User {
	t.Helper()
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	u := domain.User{
		ID:           id,
		Username:     username,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := store.PutUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBlog(t *testing.T, store *Store, id, ownerID string) domain.Blog {
	t.Helper()
	created := time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC)
	blog := domain.Blog{
		ID:        id,
		Title:     "Test Blog",
		Author:    "Test Author",
		URL:       "http://testblog.com",
		Likes:     5,
		OwnerID:   ownerID,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := store.CreateBlog(context.Background(), blog); err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	return blog
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoreDBNilSafe(t *testing.T) {
	var store *Store
	if store.DB() != nil {
		t.Fatal("expected nil DB for nil store")
	}
}

func TestPutGetUserRoundTrip(t *testing.T) {
	store := openTempStore(t)
	input := seedUser(t, store, "user-1", "root")

	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.ID != input.ID || got.Username != input.Username || got.Name != input.Name {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PasswordHash != input.PasswordHash {
		t.Fatal("expected password hash to round trip")
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Fatalf("unexpected created at: %v", got.CreatedAt)
	}
}

func TestPutUserDuplicateUsername(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")

	err := store.PutUser(context.Background(), domain.User{
		ID:           "user-2",
		Username:     "root",
		PasswordHash: "hash",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetUser(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")

	got, err := store.GetUserByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("unexpected user id: %q", got.ID)
	}

	if _, err := store.GetUserByUsername(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateBlogMaintainsOwnedSet(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	seedBlog(t, store, "blog-1", "user-1")

	got, err := store.GetBlog(context.Background(), "blog-1")
	if err != nil {
		t.Fatalf("get blog: %v", err)
	}
	if got.Title != "Test Blog" || got.OwnerID != "user-1" || got.Likes != 5 {
		t.Fatalf("unexpected blog: %+v", got)
	}

	ids, err := store.ListUserBlogIDs(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list owned-set: %v", err)
	}
	if len(ids) != 1 || ids[0] != "blog-1" {
		t.Fatalf("expected owned-set [blog-1], got %v", ids)
	}
}

func TestCreateBlogUnknownOwnerFails(t *testing.T) {
	store := openTempStore(t)

	err := store.CreateBlog(context.Background(), domain.Blog{
		ID:      "blog-1",
		Title:   "t",
		URL:     "u",
		OwnerID: "ghost",
	})
	if err == nil {
		t.Fatal("expected foreign key failure for unknown owner")
	}

	if _, err := store.GetBlog(context.Background(), "blog-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no blog persisted, got %v", err)
	}
}

func TestReplaceBlog(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	blog := seedBlog(t, store, "blog-1", "user-1")

	blog.Likes = 10
	blog.Title = "Renamed"
	blog.UpdatedAt = blog.UpdatedAt.Add(time.Hour)
	if err := store.ReplaceBlog(context.Background(), blog); err != nil {
		t.Fatalf("replace blog: %v", err)
	}

	got, err := store.GetBlog(context.Background(), "blog-1")
	if err != nil {
		t.Fatalf("get blog: %v", err)
	}
	if got.Likes != 10 || got.Title != "Renamed" {
		t.Fatalf("unexpected blog after replace: %+v", got)
	}
	if got.OwnerID != "user-1" {
		t.Fatal("expected owner to be immutable")
	}
}

func TestReplaceBlogNotFound(t *testing.T) {
	store := openTempStore(t)

	err := store.ReplaceBlog(context.Background(), domain.Blog{ID: "missing", Title: "t", URL: "u"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteBlogRetractsOwnedSet(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	seedBlog(t, store, "blog-1", "user-1")

	if err := store.DeleteBlog(context.Background(), "blog-1"); err != nil {
		t.Fatalf("delete blog: %v", err)
	}

	if _, err := store.GetBlog(context.Background(), "blog-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected blog gone, got %v", err)
	}

	ids, err := store.ListUserBlogIDs(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list owned-set: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty owned-set, got %v", ids)
	}
}

func TestDeleteBlogNotFound(t *testing.T) {
	store := openTempStore(t)

	if err := store.DeleteBlog(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBlogsJoinsOwnerSummary(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	seedBlog(t, store, "blog-1", "user-1")
	seedBlog(t, store, "blog-2", "user-1")

	blogs, err := store.ListBlogs(context.Background())
	if err != nil {
		t.Fatalf("list blogs: %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(blogs))
	}
	if blogs[0].Blog.ID != "blog-1" || blogs[1].Blog.ID != "blog-2" {
		t.Fatalf("expected insertion order, got %+v", blogs)
	}
	for _, entry := range blogs {
		if entry.Owner.ID != "user-1" || entry.Owner.Username != "root" || entry.Owner.Name != "Test User" {
			t.Fatalf("unexpected owner summary: %+v", entry.Owner)
		}
	}
}

func TestListUsersIncludesOwnedBlogs(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	seedUser(t, store, "user-2", "other")
	seedBlog(t, store, "blog-1", "user-1")

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].User.Username != "root" {
		t.Fatalf("expected insertion order, got %q first", users[0].User.Username)
	}
	if len(users[0].Blogs) != 1 || users[0].Blogs[0].ID != "blog-1" {
		t.Fatalf("expected root to own blog-1, got %+v", users[0].Blogs)
	}
	if len(users[1].Blogs) != 0 {
		t.Fatalf("expected other to own nothing, got %+v", users[1].Blogs)
	}
}

func TestReset(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, "user-1", "root")
	seedBlog(t, store, "blog-1", "user-1")

	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	blogs, err := store.ListBlogs(context.Background())
	if err != nil {
		t.Fatalf("list blogs: %v", err)
	}
	if len(blogs) != 0 {
		t.Fatalf("expected no blogs after reset, got %d", len(blogs))
	}
	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users after reset, got %d", len(users))
	}
}
