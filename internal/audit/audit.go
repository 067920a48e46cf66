// Package audit computes the append-only log entries produced by task
// mutations. It is pure: callers capture before/after snapshots from
// their own read, and the resulting entries are persisted in the same
// transaction as the mutation itself.
package audit

import (
	"taskdesk/internal/models"
)

// Snapshot is the audited slice of a task's state. Assignee is the
// resolved user, nil when the task is unassigned.
type Snapshot struct {
	Status   models.TaskStatus
	Assignee *models.User
}

// CreationLog is the entry recorded when a task is created: a status
// change from empty to the initial status.
func CreationLog(taskID string, actor *models.User, status models.TaskStatus) models.TaskLog {
	return models.TaskLog{
		TaskID:   taskID,
		UserID:   actorID(actor),
		Action:   models.LogStatusChange,
		OldValue: "",
		NewValue: string(status),
	}
}

// CommentLog is the entry recorded alongside a new comment.
func CommentLog(taskID string, actor *models.User, text string) models.TaskLog {
	return models.TaskLog{
		TaskID:   taskID,
		UserID:   actorID(actor),
		Action:   models.LogCommentAdded,
		OldValue: "",
		NewValue: text,
	}
}

// ChangeLogs diffs two snapshots of one task and returns the entries the
// update produced: one per changed audited field (status, assignee),
// nothing for anything else. An update that changes neither returns nil.
func ChangeLogs(taskID string, before, after Snapshot, actor *models.User) []models.TaskLog {
	var logs []models.TaskLog

	if before.Status != after.Status {
		logs = append(logs, models.TaskLog{
			TaskID:   taskID,
			UserID:   actorID(actor),
			Action:   models.LogStatusChange,
			OldValue: string(before.Status),
			NewValue: string(after.Status),
		})
	}

	if !sameUser(before.Assignee, after.Assignee) {
		logs = append(logs, models.TaskLog{
			TaskID:   taskID,
			UserID:   actorID(actor),
			Action:   models.LogAssignmentChange,
			OldValue: models.LogName(before.Assignee),
			NewValue: models.LogName(after.Assignee),
		})
	}

	return logs
}

// sameUser compares nullable users by identity.
func sameUser(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func actorID(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
