package models

import "time"

type TaskStatus string

const (
	StatusNew        TaskStatus = "New"
	StatusInProgress TaskStatus = "In Progress"
	StatusWaiting    TaskStatus = "Waiting"
	StatusDone       TaskStatus = "Done"
	StatusCancelled  TaskStatus = "Cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusWaiting, StatusDone, StatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TaskCategory string

const (
	CategorySoftware TaskCategory = "Software"
	CategoryHardware TaskCategory = "Hardware"
	CategoryNetwork  TaskCategory = "Network"
	CategoryAccount  TaskCategory = "Account"
	CategoryOther    TaskCategory = "Other"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case CategorySoftware, CategoryHardware, CategoryNetwork, CategoryAccount, CategoryOther:
		return true
	}
	return false
}

// Task is the central work item. CreatedBy/Assignee/RequestID are empty
// strings when the reference is null (deleted user, no assignee, no
// originating client request).
type Task struct {
	ID           string       `json:"id"`
	Category     TaskCategory `json:"category"`
	Description  string       `json:"description"`
	CreatedBy    string       `json:"createdBy"`
	Assignee     string       `json:"assignee"`
	AssigneeName string       `json:"assigneeName,omitempty"`
	RequestID    string       `json:"requestId,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	Comments     []TaskComment `json:"comments,omitempty"`
}

// LogAction is the kind of an audit entry. TASK_ASSIGNED appears in older
// call paths as an alias of ASSIGNMENT_CHANGE; repositories accept it on
// the read path, writes always use LogAssignmentChange.
type LogAction string

const (
	LogStatusChange     LogAction = "STATUS_CHANGE"
	LogCommentAdded     LogAction = "COMMENT_ADDED"
	LogAssignmentChange LogAction = "ASSIGNMENT_CHANGE"
	LogTaskAssigned     LogAction = "TASK_ASSIGNED"
	LogUpdate           LogAction = "UPDATE"
)

// TaskLog is an immutable append-only audit record. UserID is empty when
// the acting user has since been deleted.
type TaskLog struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Action    LogAction `json:"action"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskComment is immutable once created. Internal comments are staff-only.
type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Text      string    `json:"text"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"createdAt"`
}
