package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

var _ repository.UserRepository = (*UserRepo)(nil)

// Create stores a new user (bcrypt hash in password_h).
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, last_name, role, password_h)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, active, created_at, updated_at
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Role, passwordHash).
		Scan(&u.ID, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return wrapErr(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, first_name, last_name, role, active, created_at, updated_at
		FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, first_name, last_name, role, active, password_h, created_at, updated_at
		FROM users WHERE username=$1
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Active, &ph, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

// List returns users ordered by username, optionally filtered by exact role.
func (r *UserRepo) List(ctx context.Context, role models.Role) ([]models.User, error) {
	sql := `
		SELECT id, username, email, first_name, last_name, role, active, created_at, updated_at
		FROM users`
	args := []any{}
	if role != "" {
		sql += ` WHERE role=$1`
		args = append(args, role)
	}
	sql += ` ORDER BY username ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET email=$1, first_name=$2, last_name=$3, role=$4, active=$5, updated_at=now()
		WHERE id=$6
		RETURNING updated_at
	`, u.Email, u.FirstName, u.LastName, u.Role, u.Active, u.ID).Scan(&u.UpdatedAt)
	if err == pgx.ErrNoRows {
		return apperr.NotFoundf("user %s", u.ID)
	}
	return wrapErr(err)
}

// Delete nullifies every reference to the user, then removes the row.
// Dependent tasks, logs, comments and requests survive with the
// reference cleared.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, sql := range []string{
		`UPDATE tasks SET created_by=NULL WHERE created_by=$1`,
		`UPDATE tasks SET assignee=NULL WHERE assignee=$1`,
		`UPDATE task_logs SET user_id=NULL WHERE user_id=$1`,
		`UPDATE task_comments SET user_id=NULL WHERE user_id=$1`,
		`UPDATE client_requests SET reviewed_by=NULL WHERE reviewed_by=$1`,
	} {
		if _, err := tx.Exec(ctx, sql, id); err != nil {
			return wrapErr(err)
		}
	}

	ct, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("user %s", id)
	}
	return tx.Commit(ctx)
}
