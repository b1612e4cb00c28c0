package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

const userColumns = "id, username, name, password_hash, created_at, updated_at"

// PutUser inserts a user record. Username collisions surface as
// domain.ErrUsernameTaken.
func (s *Store) PutUser(ctx context.Context, u domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (id, username, name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`,
		u.ID,
		u.Username,
		u.Name,
		u.PasswordHash,
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueUsernameError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser returns one user by identifier.
func (s *Store) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.User{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT `+userColumns+` FROM users WHERE id = ?
`, userID)
	return scanUserRow(row)
}

// GetUserByUsername returns one user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.User{}, fmt.Errorf("storage is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("username is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT `+userColumns+` FROM users WHERE username = ?
`, username)
	return scanUserRow(row)
}

// ListUsers returns every user with its owned blogs joined in, in
// insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]domain.UserWithBlogs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+userColumns+` FROM users ORDER BY rowid
`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []domain.UserWithBlogs
	index := make(map[string]int)
	for rows.Next() {
		var u domain.User
		var createdAt, updatedAt int64
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.CreatedAt = fromMillis(createdAt)
		u.UpdatedAt = fromMillis(updatedAt)
		index[u.ID] = len(result)
		result = append(result, domain.UserWithBlogs{User: u})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	blogRows, err := s.sqlDB.QueryContext(ctx, `
SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, b.created_at, b.updated_at
FROM blogs b
JOIN user_blogs ub ON ub.blog_id = b.id
ORDER BY b.rowid
`)
	if err != nil {
		return nil, fmt.Errorf("list owned blogs: %w", err)
	}
	defer func() {
		_ = blogRows.Close()
	}()

	for blogRows.Next() {
		blog, err := scanBlog(blogRows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan owned blog row: %w", err)
		}
		if i, ok := index[blog.OwnerID]; ok {
			result[i].Blogs = append(result[i].Blogs, blog)
		}
	}
	if err := blogRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned blog rows: %w", err)
	}
	return result, nil
}

// ListUserBlogIDs returns the user's owned-set of blog identifiers.
func (s *Store) ListUserBlogIDs(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT blog_id FROM user_blogs WHERE user_id = ? ORDER BY rowid
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned-set: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owned-set row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned-set rows: %w", err)
	}
	return ids, nil
}

func scanUserRow(row *sql.Row) (domain.User, error) {
	var u domain.User
	var createdAt, updatedAt int64
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// isUniqueUsernameError detects the SQLite unique constraint violation
// for the username column.
func isUniqueUsernameError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "unique constraint failed") && strings.Contains(value, "users.username")
}
