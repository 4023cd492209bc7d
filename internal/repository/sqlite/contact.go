package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
)

func (r *SQLiteRepo) CreateContactSubmission(ctx context.Context, c *models.ContactSubmission) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("contact submission is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO contact_submissions (name, email, user_type, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.UserType, c.Message, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) CreateNewsletterSubscription(ctx context.Context, email string) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO newsletter_subscriptions (email, created_at) VALUES (?, ?)`, email, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetNewsletterSubscriptionByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, created_at FROM newsletter_subscriptions WHERE email = ?`, email)

	var n models.NewsletterSubscription
	if err := row.Scan(&n.ID, &n.Email, &n.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &n, nil
}
