package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
)

const commentColumns = `c.id, c.post_id, c.user_id, c.content, c.created_at,
	u.id, u.first_name, u.last_name, u.user_type, u.company_name, u.business_type`

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	var a models.PostAuthor
	var company, businessType sql.NullString
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt,
		&a.ID, &a.FirstName, &a.LastName, &a.UserType, &company, &businessType); err != nil {
		return nil, err
	}

	a.CompanyName = nullToPtr(company)
	a.BusinessType = nullToPtr(businessType)
	c.User = &a

	return &c, nil
}

// CreateComment inserts the comment and bumps the post's comments_count in
// one transaction.
func (r *SQLiteRepo) CreateComment(ctx context.Context, c *models.Comment) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("comment is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO post_comments (post_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
			c.PostID, c.UserID, c.Content, now())
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE posts SET comments_count = comments_count + 1 WHERE id = ?`, c.PostID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+commentColumns+` FROM post_comments c INNER JOIN users u ON u.id = c.user_id WHERE c.id = ?`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *SQLiteRepo) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+commentColumns+` FROM post_comments c INNER JOIN users u ON u.id = c.user_id WHERE c.post_id = ? ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}

	return out, rows.Err()
}

// DeleteComment removes the comment and decrements the post's comments_count
// in one transaction.
func (r *SQLiteRepo) DeleteComment(ctx context.Context, id int64) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var postID int64
		if err := tx.QueryRowContext(ctx, `SELECT post_id FROM post_comments WHERE id = ?`, id).Scan(&postID); err != nil {
			if err == sql.ErrNoRows {
				return nil
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_comments WHERE id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE posts SET comments_count = comments_count - 1 WHERE id = ? AND comments_count > 0`, postID)
		return err
	})
}
