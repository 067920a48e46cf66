package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type DepartmentRepo struct{ db *pgxpool.Pool }

func NewDepartmentRepo(db *pgxpool.Pool) *DepartmentRepo { return &DepartmentRepo{db: db} }

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

func (r *DepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DepartmentRepo) Get(ctx context.Context, id string) (*models.Department, error) {
	var d models.Department
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM departments WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepo) Create(ctx context.Context, d *models.Department) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (name) VALUES ($1) RETURNING id, created_at
	`, d.Name).Scan(&d.ID, &d.CreatedAt)
	return wrapErr(err)
}

// Departments are immutable after creation except for name edits.
func (r *DepartmentRepo) Update(ctx context.Context, d *models.Department) error {
	ct, err := r.db.Exec(ctx, `UPDATE departments SET name=$1 WHERE id=$2`, d.Name, d.ID)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("department %s", d.ID)
	}
	return nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("department %s", id)
	}
	return nil
}
