package service

import (
	"context"
	"strings"
	"time"

	"taskdesk/internal/access"
	"taskdesk/internal/apperr"
	"taskdesk/internal/audit"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

// TaskService owns task mutations: policy check, validation, and the
// snapshot/diff/persist sequence that produces audit entries. The diff
// always runs against the snapshot this request read itself.
type TaskService struct {
	tasks repository.TaskRepository
	users repository.UserRepository
}

func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Category    *models.TaskCategory
	Description *string
	Assignee    *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
	CompletedAt *time.Time
}

func (s *TaskService) Create(ctx context.Context, principal *models.User, t *models.Task) error {
	if err := access.CheckMutate(principal, access.ResourceTask); err != nil {
		return err
	}

	// created_by is always the acting principal, whatever the payload said.
	t.CreatedBy = principal.ID

	if t.Status == "" {
		t.Status = models.StatusNew
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if err := validateTask(t); err != nil {
		return err
	}
	if _, err := s.resolveAssignee(ctx, t.Assignee); err != nil {
		return err
	}

	log := audit.CreationLog(t.ID, principal, t.Status)
	return s.tasks.Create(ctx, t, &log)
}

func (s *TaskService) Update(ctx context.Context, principal *models.User, id string, patch TaskPatch) (*models.Task, error) {
	if err := access.CheckMutate(principal, access.ResourceTask); err != nil {
		return nil, err
	}

	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFoundf("task %s", id)
	}

	beforeAssignee, err := s.resolveAssignee(ctx, t.Assignee)
	if err != nil {
		return nil, err
	}
	before := audit.Snapshot{Status: t.Status, Assignee: beforeAssignee}

	applyPatch(t, patch)
	if err := validateTask(t); err != nil {
		return nil, err
	}

	afterAssignee := beforeAssignee
	if beforeAssignee == nil || beforeAssignee.ID != t.Assignee {
		if afterAssignee, err = s.resolveAssignee(ctx, t.Assignee); err != nil {
			return nil, err
		}
	}
	after := audit.Snapshot{Status: t.Status, Assignee: afterAssignee}

	logs := audit.ChangeLogs(t.ID, before, after, principal)
	if err := s.tasks.Update(ctx, t, logs); err != nil {
		return nil, err
	}

	// Re-read so joined fields (assignee display name) are current.
	return s.tasks.Get(ctx, t.ID)
}

func (s *TaskService) Delete(ctx context.Context, principal *models.User, id string) error {
	if err := access.CheckMutate(principal, access.ResourceTask); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// Comment attaches a remark to a task and records a COMMENT_ADDED audit
// entry in the same transaction. Any authenticated principal may comment.
func (s *TaskService) Comment(ctx context.Context, principal *models.User, taskID, text string, internal bool) (*models.TaskComment, error) {
	if principal == nil {
		return nil, apperr.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Invalid("text", "is required")
	}

	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFoundf("task %s", taskID)
	}

	c := &models.TaskComment{
		TaskID:   taskID,
		UserID:   principal.ID,
		Text:     text,
		Internal: internal,
	}
	log := audit.CommentLog(taskID, principal, text)
	if err := s.tasks.AddComment(ctx, c, &log); err != nil {
		return nil, err
	}
	return c, nil
}

func applyPatch(t *models.Task, p TaskPatch) {
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Assignee != nil {
		t.Assignee = strings.TrimSpace(*p.Assignee)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
}

func validateTask(t *models.Task) error {
	fields := map[string]string{}
	if !t.Category.Valid() {
		fields["category"] = "unknown category"
	}
	if strings.TrimSpace(t.Description) == "" {
		fields["description"] = "is required"
	}
	if !t.Status.Valid() {
		fields["status"] = "unknown status"
	}
	if !t.Priority.Valid() {
		fields["priority"] = "unknown priority"
	}
	if len(fields) > 0 {
		return apperr.Validation{Fields: fields}
	}
	return nil
}

// resolveAssignee loads the assignee user, nil for an unassigned task.
// An id that resolves to no user is a validation failure.
func (s *TaskService) resolveAssignee(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Invalid("assignee", "unknown user")
	}
	return u, nil
}
