package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

type BlogPostRepo struct {
	pool *pgxpool.Pool
}

type BlogPostRecord struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	ImageURL    string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
}

func NewBlogPostRepo(pool *pgxpool.Pool) *BlogPostRepo {
	return &BlogPostRepo{pool: pool}
}

func (r *BlogPostRepo) Create(ctx context.Context, post BlogPostRecord) (BlogPostRecord, error) {
	if r.pool == nil {
		return BlogPostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(post.Title) == "" {
		return BlogPostRecord{}, fmt.Errorf("blog post title is required")
	}
	if strings.TrimSpace(post.Slug) == "" {
		post.Slug = slugify(post.Title)
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO blog_posts (title, slug, excerpt, content, image_url, published, published_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at
`, post.Title, post.Slug, post.Excerpt, post.Content, post.ImageURL, post.Published, post.PublishedAt).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return BlogPostRecord{}, fmt.Errorf("create blog post: %w", err)
	}

	return post, nil
}

func (r *BlogPostRepo) GetBySlug(ctx context.Context, slug string) (BlogPostRecord, error) {
	if r.pool == nil {
		return BlogPostRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(slug) == "" {
		return BlogPostRecord{}, fmt.Errorf("blog post slug is required")
	}

	var post BlogPostRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, title, slug, excerpt, content, image_url, published, published_at, created_at
FROM blog_posts
WHERE slug = $1
`, slug).Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&post.ImageURL, &post.Published, &post.PublishedAt, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BlogPostRecord{}, ErrBlogPostNotFound
		}
		return BlogPostRecord{}, fmt.Errorf("get blog post by slug: %w", err)
	}

	return post, nil
}

func (r *BlogPostRepo) List(ctx context.Context, publishedOnly bool) ([]BlogPostRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, title, slug, excerpt, content, image_url, published, published_at, created_at
FROM blog_posts
`
	if publishedOnly {
		query += "WHERE published\n"
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []BlogPostRecord
	for rows.Next() {
		var post BlogPostRecord
		if err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
			&post.ImageURL, &post.Published, &post.PublishedAt, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog post rows: %w", err)
	}

	return posts, nil
}

func (r *BlogPostRepo) Update(ctx context.Context, post BlogPostRecord) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if post.ID <= 0 {
		return fmt.Errorf("invalid blog post id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE blog_posts
SET title = $2, slug = $3, excerpt = $4, content = $5, image_url = $6,
    published = $7, published_at = $8, updated_at = NOW()
WHERE id = $1
`, post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.ImageURL,
		post.Published, post.PublishedAt)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogPostNotFound
	}

	return nil
}

func (r *BlogPostRepo) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid blog post id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogPostNotFound
	}

	return nil
}

func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
