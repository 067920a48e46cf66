package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type TaskRepo struct{ db *pgxpool.Pool }

func NewTaskRepo(db *pgxpool.Pool) *TaskRepo { return &TaskRepo{db: db} }

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `
	t.id, t.category, t.description,
	COALESCE(t.created_by::text, ''), COALESCE(t.assignee::text, ''), COALESCE(t.request_id::text, ''),
	t.status, t.priority, t.due_date, t.completed_at, t.created_at,
	COALESCE(CASE WHEN u.first_name <> '' AND u.last_name <> '' THEN u.first_name || ' ' || u.last_name ELSE u.username END, '')`

func scanTask(row pgx.Row, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.Category, &t.Description,
		&t.CreatedBy, &t.Assignee, &t.RequestID,
		&t.Status, &t.Priority, &t.DueDate, &t.CompletedAt, &t.CreatedAt,
		&t.AssigneeName,
	)
}

// -----------------------------------------------------------------------------
// List / Get
// -----------------------------------------------------------------------------

func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]models.Task, error) {
	conds := []string{"1=1"}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "t.status = $"+itoa(len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, "t.priority = $"+itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "t.category = $"+itoa(len(args)))
	}
	if f.Assignee != "" {
		args = append(args, f.Assignee)
		conds = append(conds, "t.assignee = $"+itoa(len(args))+"::uuid")
	}
	if f.Creator != "" {
		args = append(args, f.Creator)
		conds = append(conds, "t.created_by = $"+itoa(len(args))+"::uuid")
	}

	sql := `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := scanTask(r.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee
		WHERE t.id = $1
	`, id), &t)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	comments, err := r.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Comments = comments
	return &t, nil
}

// -----------------------------------------------------------------------------
// Create / Update / Delete — multi-write mutations run in one transaction
// so the task change and its audit entries commit or roll back together.
// -----------------------------------------------------------------------------

func (r *TaskRepo) Create(ctx context.Context, t *models.Task, log *models.TaskLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (category, description, created_by, assignee, request_id, status, priority, due_date)
		VALUES ($1,$2,NULLIF($3,'')::uuid,NULLIF($4,'')::uuid,NULLIF($5,'')::uuid,$6,$7,$8)
		RETURNING id, created_at
	`,
		t.Category, t.Description, t.CreatedBy, t.Assignee, t.RequestID, t.Status, t.Priority, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return wrapErr(err)
	}

	if log != nil {
		log.TaskID = t.ID
		if err := insertLog(ctx, tx, log); err != nil {
			return wrapErr(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task, logs []models.TaskLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE tasks SET
			category=$1, description=$2, assignee=NULLIF($3,'')::uuid,
			status=$4, priority=$5, due_date=$6, completed_at=$7
		WHERE id=$8
	`,
		t.Category, t.Description, t.Assignee, t.Status, t.Priority, t.DueDate, t.CompletedAt, t.ID,
	)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("task %s", t.ID)
	}

	for i := range logs {
		logs[i].TaskID = t.ID
		if err := insertLog(ctx, tx, &logs[i]); err != nil {
			return wrapErr(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_logs WHERE task_id=$1`, id); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM task_comments WHERE task_id=$1`, id); err != nil {
		return wrapErr(err)
	}
	ct, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("task %s", id)
	}
	return tx.Commit(ctx)
}

// -----------------------------------------------------------------------------
// Comments / logs
// -----------------------------------------------------------------------------

func (r *TaskRepo) AddComment(ctx context.Context, c *models.TaskComment, log *models.TaskLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO task_comments (task_id, user_id, text, internal)
		VALUES ($1,NULLIF($2,'')::uuid,$3,$4)
		RETURNING id, created_at
	`, c.TaskID, c.UserID, c.Text, c.Internal).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return wrapErr(err)
	}

	if log != nil {
		log.TaskID = c.TaskID
		if err := insertLog(ctx, tx, log); err != nil {
			return wrapErr(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *TaskRepo) ListComments(ctx context.Context, taskID string) ([]models.TaskComment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.task_id, COALESCE(c.user_id::text, ''), c.text, c.internal, c.created_at,
			COALESCE(CASE WHEN u.first_name <> '' AND u.last_name <> '' THEN u.first_name || ' ' || u.last_name ELSE u.username END, '')
		FROM task_comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskComment
	for rows.Next() {
		var c models.TaskComment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Text, &c.Internal, &c.CreatedAt, &c.UserName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListLogs: newest first; f.Ascending flips to creation order.
func (r *TaskRepo) ListLogs(ctx context.Context, f repository.LogFilter) ([]models.TaskLog, error) {
	conds := []string{"1=1"}
	args := []any{}
	order := "l.created_at DESC"
	if f.Ascending {
		order = "l.created_at ASC"
	}

	if f.TaskID != "" {
		args = append(args, f.TaskID)
		conds = append(conds, "l.task_id = $"+itoa(len(args)))
	}
	if f.Action != "" {
		action := f.Action
		if action == models.LogTaskAssigned { // legacy alias
			action = models.LogAssignmentChange
		}
		args = append(args, action)
		conds = append(conds, "l.action = $"+itoa(len(args)))
	}

	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.task_id, COALESCE(l.user_id::text, ''), l.action,
			COALESCE(l.old_value, ''), COALESCE(l.new_value, ''), l.created_at,
			COALESCE(CASE WHEN u.first_name <> '' AND u.last_name <> '' THEN u.first_name || ' ' || u.last_name ELSE u.username END, '')
		FROM task_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY `+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskLog
	for rows.Next() {
		var l models.TaskLog
		if err := rows.Scan(&l.ID, &l.TaskID, &l.UserID, &l.Action, &l.OldValue, &l.NewValue, &l.CreatedAt, &l.UserName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func insertLog(ctx context.Context, tx pgx.Tx, l *models.TaskLog) error {
	return tx.QueryRow(ctx, `
		INSERT INTO task_logs (task_id, user_id, action, old_value, new_value)
		VALUES ($1,NULLIF($2,'')::uuid,$3,$4,$5)
		RETURNING id, created_at
	`, l.TaskID, l.UserID, l.Action, l.OldValue, l.NewValue).Scan(&l.ID, &l.CreatedAt)
}

// small helper to avoid fmt on the hot path.
func itoa(i int) string { return strconv.Itoa(i) }
