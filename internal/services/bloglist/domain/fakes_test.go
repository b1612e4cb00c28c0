package domain

import (
	"context"
	"fmt"
)

// fakeStore is an in-memory BlogStore and UserStore that mirrors the
// transactional owned-set behavior of the SQLite store.
type fakeStore struct {
	users     map[string]User
	userOrder []string
	blogs     map[string]Blog
	blogOrder []string
	ownedSet  map[string][]string

	failCreate  error
	failReplace error
	failDelete  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]User),
		blogs:    make(map[string]Blog),
		ownedSet: make(map[string][]string),
	}
}

func (f *fakeStore) addUser(u User) {
	f.users[u.ID] = u
	f.userOrder = append(f.userOrder, u.ID)
}

func (f *fakeStore) CreateBlog(_ context.Context, blog Blog) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	if _, ok := f.users[blog.OwnerID]; !ok {
		return fmt.Errorf("owner %s does not exist", blog.OwnerID)
	}
	f.blogs[blog.ID] = blog
	f.blogOrder = append(f.blogOrder, blog.ID)
	f.ownedSet[blog.OwnerID] = append(f.ownedSet[blog.OwnerID], blog.ID)
	return nil
}

func (f *fakeStore) GetBlog(_ context.Context, blogID string) (Blog, error) {
	blog, ok := f.blogs[blogID]
	if !ok {
		return Blog{}, ErrNotFound
	}
	return blog, nil
}

func (f *fakeStore) ReplaceBlog(_ context.Context, blog Blog) error {
	if f.failReplace != nil {
		return f.failReplace
	}
	if _, ok := f.blogs[blog.ID]; !ok {
		return ErrNotFound
	}
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeStore) DeleteBlog(_ context.Context, blogID string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	blog, ok := f.blogs[blogID]
	if !ok {
		return ErrNotFound
	}
	delete(f.blogs, blogID)
	for i, id := range f.blogOrder {
		if id == blogID {
			f.blogOrder = append(f.blogOrder[:i], f.blogOrder[i+1:]...)
			break
		}
	}
	owned := f.ownedSet[blog.OwnerID]
	for i, id := range owned {
		if id == blogID {
			f.ownedSet[blog.OwnerID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) ListBlogs(_ context.Context) ([]BlogWithOwner, error) {
	var result []BlogWithOwner
	for _, id := range f.blogOrder {
		blog := f.blogs[id]
		owner := f.users[blog.OwnerID]
		result = append(result, BlogWithOwner{
			Blog: blog,
			Owner: OwnerSummary{
				ID:       owner.ID,
				Username: owner.Username,
				Name:     owner.Name,
			},
		})
	}
	return result, nil
}

func (f *fakeStore) PutUser(_ context.Context, u User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	f.addUser(u)
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeStore) ListUsers(_ context.Context) ([]UserWithBlogs, error) {
	var result []UserWithBlogs
	for _, id := range f.userOrder {
		u := f.users[id]
		entry := UserWithBlogs{User: u}
		for _, blogID := range f.ownedSet[id] {
			entry.Blogs = append(entry.Blogs, f.blogs[blogID])
		}
		result = append(result, entry)
	}
	return result, nil
}

func (f *fakeStore) ListUserBlogIDs(_ context.Context, userID string) ([]string, error) {
	return append([]string{}, f.ownedSet[userID]...), nil
}

// fakeVerifier resolves fixed tokens to user ids.
type fakeVerifier struct {
	tokens map[string]string
	err    error
}

func (f *fakeVerifier) Verify(raw string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	userID, ok := f.tokens[raw]
	if !ok {
		return "", ErrIdentityNotFound
	}
	return userID, nil
}

// fakeMinter returns deterministic tokens.
type fakeMinter struct {
	err error
}

func (f *fakeMinter) Mint(userID, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

// sequentialIDs returns a deterministic id generator for tests.
func sequentialIDs(prefix string) func() (string, error) {
	next := 0
	return func() (string, error) {
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}
