package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/utils"
)

type DepartmentHTTP struct {
	departments repository.DepartmentRepository
}

func NewDepartmentHTTP(departments repository.DepartmentRepository) *DepartmentHTTP {
	return &DepartmentHTTP{departments: departments}
}

// GET /api/departments
func (h *DepartmentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.departments.List(r.Context())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/departments/{id}
func (h *DepartmentHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := h.departments.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if d == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, d)
	}
}

// POST /api/departments
func (h *DepartmentHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			utils.Fail(w, apperr.Invalid("name", "is required"))
			return
		}
		d := &models.Department{Name: in.Name}
		if err := h.departments.Create(r.Context(), d); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, d)
	}
}

// PATCH /api/departments/{id} — name is the only mutable field.
func (h *DepartmentHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			utils.Fail(w, apperr.Invalid("name", "is required"))
			return
		}
		d := &models.Department{ID: id, Name: in.Name}
		if err := h.departments.Update(r.Context(), d); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, d)
	}
}

// DELETE /api/departments/{id}
func (h *DepartmentHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.departments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.Fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
