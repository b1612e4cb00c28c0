package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

const blogColumns = "id, title, author, url, likes, owner_id, created_at, updated_at"

// CreateBlog inserts a blog row and its owned-set entry atomically.
// A failure on either write rolls back both, so the User-Blog relation
// never holds a dangling side.
func (s *Store) CreateBlog(ctx context.Context, blog domain.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(blog.ID) == "" {
		return fmt.Errorf("blog id is required")
	}
	if strings.TrimSpace(blog.OwnerID) == "" {
		return fmt.Errorf("blog owner id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO blogs (id, title, author, url, likes, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.OwnerID,
		toMillis(blog.CreatedAt),
		toMillis(blog.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO user_blogs (user_id, blog_id) VALUES (?, ?)
`,
		blog.OwnerID,
		blog.ID,
	); err != nil {
		return fmt.Errorf("append owned-set entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit blog: %w", err)
	}
	return nil
}

// GetBlog returns one blog by identifier.
func (s *Store) GetBlog(ctx context.Context, blogID string) (domain.Blog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Blog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Blog{}, fmt.Errorf("storage is not configured")
	}
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return domain.Blog{}, fmt.Errorf("blog id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT `+blogColumns+` FROM blogs WHERE id = ?
`, blogID)
	blog, err := scanBlog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Blog{}, domain.ErrNotFound
		}
		return domain.Blog{}, fmt.Errorf("get blog: %w", err)
	}
	return blog, nil
}

// ReplaceBlog overwrites the mutable fields of an existing blog.
// Identifier and owner are never written.
func (s *Store) ReplaceBlog(ctx context.Context, blog domain.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(blog.ID) == "" {
		return fmt.Errorf("blog id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE blogs SET title = ?, author = ?, url = ?, likes = ?, updated_at = ?
WHERE id = ?
`,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		toMillis(blog.UpdatedAt),
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("replace blog: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace blog rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteBlog removes a blog row and its owned-set entry atomically.
func (s *Store) DeleteBlog(ctx context.Context, blogID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return fmt.Errorf("blog id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM user_blogs WHERE blog_id = ?", blogID); err != nil {
		return fmt.Errorf("retract owned-set entry: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", blogID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blog rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// ListBlogs returns every blog with its owner summary joined in, in
// insertion order.
func (s *Store) ListBlogs(ctx context.Context) ([]domain.BlogWithOwner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, b.created_at, b.updated_at,
       u.id, u.username, u.name
FROM blogs b
JOIN users u ON u.id = b.owner_id
ORDER BY b.rowid
`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []domain.BlogWithOwner
	for rows.Next() {
		var entry domain.BlogWithOwner
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&entry.Blog.ID,
			&entry.Blog.Title,
			&entry.Blog.Author,
			&entry.Blog.URL,
			&entry.Blog.Likes,
			&entry.Blog.OwnerID,
			&createdAt,
			&updatedAt,
			&entry.Owner.ID,
			&entry.Owner.Username,
			&entry.Owner.Name,
		); err != nil {
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		entry.Blog.CreatedAt = fromMillis(createdAt)
		entry.Blog.UpdatedAt = fromMillis(updatedAt)
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog rows: %w", err)
	}
	return result, nil
}

func scanBlog(scan func(dest ...any) error) (domain.Blog, error) {
	var blog domain.Blog
	var createdAt, updatedAt int64
	if err := scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.OwnerID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Blog{}, err
	}
	blog.CreatedAt = fromMillis(createdAt)
	blog.UpdatedAt = fromMillis(updatedAt)
	return blog, nil
}
