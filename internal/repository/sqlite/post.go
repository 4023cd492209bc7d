package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
)

const feedColumns = `p.id, p.user_id, p.content, p.post_type, p.media_urls, p.media_type, p.location, p.tags, p.likes_count, p.comments_count, p.created_at, p.updated_at,
	u.id, u.first_name, u.last_name, u.user_type, u.company_name, u.business_type`

const feedFrom = ` FROM posts p INNER JOIN users u ON u.id = p.user_id`

func scanFeedPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var a models.PostAuthor
	var content, mediaURLs, mediaType, location, tags sql.NullString
	var company, businessType sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &content, &p.PostType, &mediaURLs, &mediaType, &location, &tags,
		&p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt,
		&a.ID, &a.FirstName, &a.LastName, &a.UserType, &company, &businessType); err != nil {
		return nil, err
	}

	p.Content = nullToPtr(content)
	p.MediaType = nullToPtr(mediaType)
	p.Location = nullToPtr(location)

	var err error
	if p.MediaURLs, err = decodeStrings(mediaURLs); err != nil {
		return nil, err
	}
	if p.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}

	a.CompanyName = nullToPtr(company)
	a.BusinessType = nullToPtr(businessType)
	p.User = &a

	return &p, nil
}

func (r *SQLiteRepo) CreatePost(ctx context.Context, p *models.Post) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("post is nil")
	}

	mediaURLs, err := encodeStrings(p.MediaURLs)
	if err != nil {
		return 0, err
	}
	tags, err := encodeStrings(p.Tags)
	if err != nil {
		return 0, err
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO posts (user_id, content, post_type, media_urls, media_type, location, tags, likes_count, comments_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		p.UserID, ptrToNull(p.Content), p.PostType, mediaURLs, ptrToNull(p.MediaType), ptrToNull(p.Location), tags, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+feedColumns+feedFrom+` WHERE p.id = ?`, id)
	p, err := scanFeedPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// ListPosts returns the feed, newest first, each row joined with its author's
// public fields. Tag membership is filtered after scanning.
func (r *SQLiteRepo) ListPosts(ctx context.Context, f repository.PostFilters) ([]models.Post, error) {
	query := `SELECT ` + feedColumns + feedFrom
	var args []any
	var where []string

	if f.UserID > 0 {
		where = append(where, `p.user_id = ?`)
		args = append(args, f.UserID)
	}
	if f.PostType != "" {
		where = append(where, `p.post_type = ?`)
		args = append(args, f.PostType)
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	return r.queryFeed(ctx, query, f.Tags, args...)
}

// ListPostsForYou returns everyone else's posts, newest first. There is no
// ranking beyond recency.
func (r *SQLiteRepo) ListPostsForYou(ctx context.Context, excludeUserID int64) ([]models.Post, error) {
	query := `SELECT ` + feedColumns + feedFrom + ` WHERE p.user_id != ? ORDER BY p.created_at DESC, p.id DESC`
	return r.queryFeed(ctx, query, nil, excludeUserID)
}

func (r *SQLiteRepo) queryFeed(ctx context.Context, query string, tagFilter []string, args ...any) ([]models.Post, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		p, err := scanFeedPost(rows)
		if err != nil {
			return nil, err
		}
		if len(tagFilter) > 0 && !containsAny(p.Tags, tagFilter) {
			continue
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeletePost(ctx context.Context, id int64) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_comments WHERE post_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
		return err
	})
}
