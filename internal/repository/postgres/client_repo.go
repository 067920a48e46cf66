package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type ClientRepo struct{ db *pgxpool.Pool }

func NewClientRepo(db *pgxpool.Pool) *ClientRepo { return &ClientRepo{db: db} }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) List(ctx context.Context) ([]models.Client, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, department, active, created_at
		FROM clients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Department, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Get(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, department, active, created_at
		FROM clients WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Department, &c.Active, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO clients (name, email, phone, department, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, c.Name, c.Email, c.Phone, c.Department, c.Active).Scan(&c.ID, &c.CreatedAt)
	return wrapErr(err)
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE clients SET name=$1, email=$2, phone=$3, department=$4, active=$5
		WHERE id=$6
	`, c.Name, c.Email, c.Phone, c.Department, c.Active, c.ID)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("client %s", c.ID)
	}
	return nil
}

// Delete cascades the client's requests. Any task born from a cascaded
// request keeps running with its request reference cleared.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE tasks SET request_id=NULL
		WHERE request_id IN (SELECT id FROM client_requests WHERE client_id=$1)
	`, id); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM client_requests WHERE client_id=$1`, id); err != nil {
		return wrapErr(err)
	}
	ct, err := tx.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("client %s", id)
	}
	return tx.Commit(ctx)
}
