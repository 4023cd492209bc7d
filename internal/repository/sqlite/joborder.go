package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/connectpro/connectpro/pkg/models"
)

const jobOrderColumns = `id, business_owner_id, title, description, budget_range, project_size, deadline, location, required_skills, status, created_at, updated_at`

func scanJobOrder(row rowScanner) (*models.JobOrder, error) {
	var j models.JobOrder
	var budget, size, location, skills sql.NullString
	var deadline sql.NullInt64
	if err := row.Scan(&j.ID, &j.BusinessOwnerID, &j.Title, &j.Description,
		&budget, &size, &deadline, &location, &skills, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}

	j.BudgetRange = nullToPtr(budget)
	j.ProjectSize = nullToPtr(size)
	j.Location = nullToPtr(location)
	if deadline.Valid {
		v := deadline.Int64
		j.Deadline = &v
	}

	var err error
	if j.RequiredSkills, err = decodeStrings(skills); err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *SQLiteRepo) CreateJobOrder(ctx context.Context, j *models.JobOrder) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job order is nil")
	}

	skills, err := encodeStrings(j.RequiredSkills)
	if err != nil {
		return 0, err
	}

	var deadline any
	if j.Deadline != nil {
		deadline = *j.Deadline
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO job_orders (business_owner_id, title, description, budget_range, project_size, deadline, location, required_skills, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.BusinessOwnerID, j.Title, j.Description, ptrToNull(j.BudgetRange), ptrToNull(j.ProjectSize),
		deadline, ptrToNull(j.Location), skills, j.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobOrderByID(ctx context.Context, id int64) (*models.JobOrder, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE id = ?`, id)
	j, err := scanJobOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func (r *SQLiteRepo) ListJobOrdersByOwner(ctx context.Context, ownerID int64, status string) ([]models.JobOrder, error) {
	query := `SELECT ` + jobOrderColumns + ` FROM job_orders WHERE business_owner_id = ?`
	args := []any{ownerID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobOrder
	for rows.Next() {
		j, err := scanJobOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateJobOrder(ctx context.Context, j *models.JobOrder) error {
	if j == nil {
		return fmt.Errorf("job order is nil")
	}

	skills, err := encodeStrings(j.RequiredSkills)
	if err != nil {
		return err
	}

	var deadline any
	if j.Deadline != nil {
		deadline = *j.Deadline
	}

	_, err = r.conn.Exec(ctx, `UPDATE job_orders SET title = ?, description = ?, budget_range = ?, project_size = ?, deadline = ?, location = ?, required_skills = ?, status = ?, updated_at = ? WHERE id = ?`,
		j.Title, j.Description, ptrToNull(j.BudgetRange), ptrToNull(j.ProjectSize),
		deadline, ptrToNull(j.Location), skills, j.Status, now(), j.ID)
	return err
}

func (r *SQLiteRepo) DeleteJobOrder(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM job_orders WHERE id = ?`, id)
	return err
}
