package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
)

func (r *SQLiteRepo) CreateOtp(ctx context.Context, o *models.OtpVerification) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("otp is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO otp_verifications (email, otp, expires_at, is_used, created_at) VALUES (?, ?, ?, 0, ?)`,
		o.Email, o.Otp, o.ExpiresAt, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// GetValidOtp returns the newest matching record that is neither used nor
// expired, or nil when no such record exists.
func (r *SQLiteRepo) GetValidOtp(ctx context.Context, email, code string) (*models.OtpVerification, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, otp, expires_at, is_used, created_at FROM otp_verifications WHERE email = ? AND otp = ? AND is_used = 0 AND expires_at > ? ORDER BY created_at DESC LIMIT 1`,
		email, code, now())

	var o models.OtpVerification
	if err := row.Scan(&o.ID, &o.Email, &o.Otp, &o.ExpiresAt, &o.IsUsed, &o.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &o, nil
}

func (r *SQLiteRepo) MarkOtpUsed(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE otp_verifications SET is_used = 1 WHERE id = ?`, id)
	return err
}
