package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
)

const userColumns = `id, email, password, first_name, last_name, user_type, company_name, business_type, phone_number, location, skills, certifications, tags, bio, is_verified, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var company, businessType, phone, location, bio sql.NullString
	var skills, certifications, tags sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.UserType,
		&company, &businessType, &phone, &location, &skills, &certifications, &tags, &bio,
		&u.IsVerified, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.CompanyName = nullToPtr(company)
	u.BusinessType = nullToPtr(businessType)
	u.PhoneNumber = nullToPtr(phone)
	u.Location = nullToPtr(location)
	u.Bio = nullToPtr(bio)

	var err error
	if u.Skills, err = decodeStrings(skills); err != nil {
		return nil, err
	}
	if u.Certifications, err = decodeStrings(certifications); err != nil {
		return nil, err
	}
	if u.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	skills, err := encodeStrings(u.Skills)
	if err != nil {
		return 0, err
	}
	certifications, err := encodeStrings(u.Certifications)
	if err != nil {
		return 0, err
	}
	tags, err := encodeStrings(u.Tags)
	if err != nil {
		return 0, err
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password, first_name, last_name, user_type, company_name, business_type, phone_number, location, skills, certifications, tags, bio, is_verified, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.UserType,
		ptrToNull(u.CompanyName), ptrToNull(u.BusinessType), ptrToNull(u.PhoneNumber), ptrToNull(u.Location),
		skills, certifications, tags, ptrToNull(u.Bio), u.IsVerified, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *SQLiteRepo) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	_, err := r.conn.Exec(ctx, `UPDATE users SET is_verified = ? WHERE id = ?`, verified, id)
	return err
}

func (r *SQLiteRepo) ListBusinesses(ctx context.Context, f repository.DirectoryFilters) ([]models.User, error) {
	return r.listUsersByType(ctx, models.UserTypeBusiness, f)
}

func (r *SQLiteRepo) ListContractors(ctx context.Context, f repository.DirectoryFilters) ([]models.User, error) {
	return r.listUsersByType(ctx, models.UserTypeContractor, f)
}

// listUsersByType composes the directory query: the user type plus the
// conjunction of whatever filters were supplied. Search and location are
// substring matches (LIKE is case-insensitive for ASCII in SQLite), tag and
// skill membership is applied after scanning since arrays are stored as JSON
// text.
func (r *SQLiteRepo) listUsersByType(ctx context.Context, userType string, f repository.DirectoryFilters) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_type = ?`
	args := []any{userType}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query += ` AND (first_name LIKE ? OR last_name LIKE ? OR company_name LIKE ? OR bio LIKE ?)`
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if f.BusinessType != "" {
		query += ` AND business_type = ?`
		args = append(args, f.BusinessType)
	}
	if f.Location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+f.Location+"%")
	}

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		if len(f.Skills) > 0 && !containsAny(u.Skills, f.Skills) {
			continue
		}
		if len(f.Tags) > 0 && !containsAny(u.Tags, f.Tags) {
			continue
		}
		out = append(out, *u)
	}

	return out, rows.Err()
}
