package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/middleware"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
	"taskdesk/internal/utils"
)

// TaskHTTP wires task endpoints to the task service (mutations) and
// repository (reads).
type TaskHTTP struct {
	svc   *service.TaskService
	tasks repository.TaskRepository
}

func NewTaskHTTP(svc *service.TaskService, tasks repository.TaskRepository) *TaskHTTP {
	return &TaskHTTP{svc: svc, tasks: tasks}
}

// GET /api/tasks?status=&priority=&category=&assignee=&created_by=
func (h *TaskHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.TaskFilter{
			Status:   models.TaskStatus(strings.TrimSpace(qv.Get("status"))),
			Priority: models.TaskPriority(strings.TrimSpace(qv.Get("priority"))),
			Category: models.TaskCategory(strings.TrimSpace(qv.Get("category"))),
			Assignee: strings.TrimSpace(qv.Get("assignee")),
			Creator:  strings.TrimSpace(qv.Get("created_by")),
		}
		items, err := h.tasks.List(r.Context(), f)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/tasks/{id}
func (h *TaskHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		t, err := h.tasks.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tasks
func (h *TaskHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Category    string     `json:"category"`
		Description string     `json:"description"`
		Assignee    string     `json:"assignee"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t := &models.Task{
			Category:    models.TaskCategory(strings.TrimSpace(in.Category)),
			Description: strings.TrimSpace(in.Description),
			Assignee:    strings.TrimSpace(in.Assignee),
			Status:      models.TaskStatus(strings.TrimSpace(in.Status)),
			Priority:    models.TaskPriority(strings.TrimSpace(in.Priority)),
			DueDate:     in.DueDate,
		}
		if err := h.svc.Create(r.Context(), middleware.Principal(r.Context()), t); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// PATCH /api/tasks/{id}
func (h *TaskHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Category    *string    `json:"category"`
		Description *string    `json:"description"`
		Assignee    *string    `json:"assignee"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
		CompletedAt *time.Time `json:"completedAt"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		patch := service.TaskPatch{
			Description: in.Description,
			Assignee:    in.Assignee,
			DueDate:     in.DueDate,
			CompletedAt: in.CompletedAt,
		}
		if in.Category != nil {
			c := models.TaskCategory(strings.TrimSpace(*in.Category))
			patch.Category = &c
		}
		if in.Status != nil {
			s := models.TaskStatus(strings.TrimSpace(*in.Status))
			patch.Status = &s
		}
		if in.Priority != nil {
			p := models.TaskPriority(strings.TrimSpace(*in.Priority))
			patch.Priority = &p
		}

		t, err := h.svc.Update(r.Context(), middleware.Principal(r.Context()), id, patch)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// DELETE /api/tasks/{id}
func (h *TaskHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.svc.Delete(r.Context(), middleware.Principal(r.Context()), id); err != nil {
			utils.Fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /api/tasks/{id}/comments
func (h *TaskHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Text     string `json:"text"`
		Internal bool   `json:"internal"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c, err := h.svc.Comment(r.Context(), middleware.Principal(r.Context()), id, in.Text, in.Internal)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, c)
	}
}

// GET /api/tasks/{id}/comments — creation order.
func (h *TaskHTTP) ListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		t, err := h.tasks.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": t.Comments, "total": len(t.Comments)})
	}
}

// GET /api/tasks/{id}/logs — creation order for the scoped collection.
func (h *TaskHTTP) ListLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		t, err := h.tasks.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		logs, err := h.tasks.ListLogs(r.Context(), repository.LogFilter{TaskID: id, Ascending: true})
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": logs, "total": len(logs)})
	}
}
