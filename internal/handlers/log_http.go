package handlers

import (
	"net/http"
	"strings"

	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/utils"
)

// LogHTTP exposes the flat audit-log collection. Logs are written only
// as side effects of task mutations; there is no write surface here.
type LogHTTP struct {
	tasks repository.TaskRepository
}

func NewLogHTTP(tasks repository.TaskRepository) *LogHTTP { return &LogHTTP{tasks: tasks} }

// GET /api/task-logs?task_id=&action= — newest first.
func (h *LogHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.LogFilter{
			TaskID: strings.TrimSpace(qv.Get("task_id")),
			Action: models.LogAction(strings.TrimSpace(qv.Get("action"))),
		}
		logs, err := h.tasks.ListLogs(r.Context(), f)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": logs, "total": len(logs)})
	}
}
