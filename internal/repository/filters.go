package repository

import "taskdesk/internal/models"

// TaskFilter narrows List by exact-match fields. Zero values mean "any".
type TaskFilter struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	Category models.TaskCategory
	Assignee string
	Creator  string
}

// LogFilter narrows ListLogs. Action "TASK_ASSIGNED" is accepted as an
// alias of ASSIGNMENT_CHANGE. Results are newest first unless Ascending
// is set.
type LogFilter struct {
	TaskID    string
	Action    models.LogAction
	Ascending bool
}

type RequestFilter struct {
	ClientID string
	Status   models.RequestStatus
}
