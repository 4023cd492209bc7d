package sqlite

import (
	"context"
	"database/sql"
)

// ToggleLike flips the like state for (userID, postID). The like row and the
// post's likes_count move together inside one transaction so the counter
// cannot drift from the underlying rows.
func (r *SQLiteRepo) ToggleLike(ctx context.Context, userID, postID int64) (bool, int64, error) {
	var liked bool
	var likes int64

	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM post_likes WHERE user_id = ? AND post_id = ?`, userID, postID).Scan(&exists); err != nil {
			return err
		}

		if exists > 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE user_id = ? AND post_id = ?`, userID, postID); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `UPDATE posts SET likes_count = likes_count - 1 WHERE id = ? AND likes_count > 0`, postID); err != nil {
				return err
			}
			liked = false
		} else {
			if _, err := tx.ExecContext(ctx, `INSERT INTO post_likes (user_id, post_id, created_at) VALUES (?, ?, ?)`, userID, postID, now()); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `UPDATE posts SET likes_count = likes_count + 1 WHERE id = ?`, postID); err != nil {
				return err
			}
			liked = true
		}

		return tx.QueryRowContext(ctx, `SELECT likes_count FROM posts WHERE id = ?`, postID).Scan(&likes)
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likes, nil
}

func (r *SQLiteRepo) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM post_likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
