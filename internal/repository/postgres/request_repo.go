package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type RequestRepo struct{ db *pgxpool.Pool }

func NewRequestRepo(db *pgxpool.Pool) *RequestRepo { return &RequestRepo{db: db} }

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `
	id, client_id, category, description, priority, status, submitted_at,
	COALESCE(reviewed_by::text, '')`

func (r *RequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]models.ClientRequest, error) {
	conds := []string{"1=1"}
	args := []any{}

	if f.ClientID != "" {
		args = append(args, f.ClientID)
		conds = append(conds, "client_id = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "status = $"+itoa(len(args)))
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+requestColumns+`
		FROM client_requests
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY submitted_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ClientRequest
	for rows.Next() {
		var cr models.ClientRequest
		if err := rows.Scan(&cr.ID, &cr.ClientID, &cr.Category, &cr.Description, &cr.Priority, &cr.Status, &cr.SubmittedAt, &cr.ReviewedBy); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *RequestRepo) Get(ctx context.Context, id string) (*models.ClientRequest, error) {
	var cr models.ClientRequest
	err := r.db.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM client_requests WHERE id=$1
	`, id).Scan(&cr.ID, &cr.ClientID, &cr.Category, &cr.Description, &cr.Priority, &cr.Status, &cr.SubmittedAt, &cr.ReviewedBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cr, nil
}

// Create relies on the client_id foreign key: an unresolvable client
// comes back as an integrity error from wrapErr.
func (r *RequestRepo) Create(ctx context.Context, cr *models.ClientRequest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO client_requests (client_id, category, description, priority, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, submitted_at
	`, cr.ClientID, cr.Category, cr.Description, cr.Priority, cr.Status).Scan(&cr.ID, &cr.SubmittedAt)
	return wrapErr(err)
}

func (r *RequestRepo) Update(ctx context.Context, cr *models.ClientRequest) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE client_requests
		SET category=$1, description=$2, priority=$3, status=$4, reviewed_by=NULLIF($5,'')::uuid
		WHERE id=$6
	`, cr.Category, cr.Description, cr.Priority, cr.Status, cr.ReviewedBy, cr.ID)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("client request %s", cr.ID)
	}
	return nil
}

func (r *RequestRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE tasks SET request_id=NULL WHERE request_id=$1`, id); err != nil {
		return wrapErr(err)
	}
	ct, err := tx.Exec(ctx, `DELETE FROM client_requests WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("client request %s", id)
	}
	return tx.Commit(ctx)
}

// Convert creates the task born from the request, writes the task's
// creation log, and marks the request Converted — one transaction. The
// unique index on tasks.request_id turns a second convert into an
// integrity error.
func (r *RequestRepo) Convert(ctx context.Context, cr *models.ClientRequest, t *models.Task, log *models.TaskLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (category, description, created_by, assignee, request_id, status, priority, due_date)
		VALUES ($1,$2,NULLIF($3,'')::uuid,NULLIF($4,'')::uuid,$5,$6,$7,$8)
		RETURNING id, created_at
	`,
		t.Category, t.Description, t.CreatedBy, t.Assignee, cr.ID, t.Status, t.Priority, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return wrapErr(err)
	}
	t.RequestID = cr.ID

	if log != nil {
		log.TaskID = t.ID
		if err := insertLog(ctx, tx, log); err != nil {
			return wrapErr(err)
		}
	}

	ct, err := tx.Exec(ctx, `
		UPDATE client_requests SET status=$1, reviewed_by=NULLIF($2,'')::uuid WHERE id=$3
	`, models.RequestConverted, cr.ReviewedBy, cr.ID)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("client request %s", cr.ID)
	}
	cr.Status = models.RequestConverted

	return tx.Commit(ctx)
}
