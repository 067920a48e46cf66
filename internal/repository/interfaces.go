package repository

import (
	"context"

	"taskdesk/internal/models"
)

// TaskRepository persists tasks and their owned logs/comments. Mutations
// that carry log entries write everything in one transaction: the task
// change and its audit entries commit or roll back together.
type TaskRepository interface {
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, t *models.Task, log *models.TaskLog) error
	Update(ctx context.Context, t *models.Task, logs []models.TaskLog) error
	// Delete removes the task and cascades its logs and comments.
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, c *models.TaskComment, log *models.TaskLog) error
	// ListComments returns a task's comments in creation order.
	ListComments(ctx context.Context, taskID string) ([]models.TaskComment, error)
	// ListLogs returns audit entries, newest first; f.Ascending flips to
	// creation order (used by the task-scoped sub-collection).
	ListLogs(ctx context.Context, f LogFilter) ([]models.TaskLog, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, string, error)
	List(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	// Delete nullifies every reference to the user (task creator/assignee,
	// log and comment authors, request reviewer) before removing the row.
	Delete(ctx context.Context, id string) error
}

// ClientRepository owns clients and their requests (cascade on delete).
type ClientRepository interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id string) error
}

type RequestRepository interface {
	List(ctx context.Context, f RequestFilter) ([]models.ClientRequest, error)
	Get(ctx context.Context, id string) (*models.ClientRequest, error)
	Create(ctx context.Context, cr *models.ClientRequest) error
	Update(ctx context.Context, cr *models.ClientRequest) error
	Delete(ctx context.Context, id string) error
	// Convert atomically creates the task born from the request, writes its
	// creation log, and marks the request Converted. Fails with an
	// integrity error when the request already has a task.
	Convert(ctx context.Context, cr *models.ClientRequest, t *models.Task, log *models.TaskLog) error
}

type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	Get(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, d *models.Department) error
	Update(ctx context.Context, d *models.Department) error
	Delete(ctx context.Context, id string) error
}
