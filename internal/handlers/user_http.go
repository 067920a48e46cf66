package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/utils"
)

type UserHTTP struct {
	repo repository.UserRepository
}

func NewUserHTTP(r repository.UserRepository) *UserHTTP {
	return &UserHTTP{repo: r}
}

// GET /api/users?role= — exact role filter, username order.
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := models.Role(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role"))))
		users, err := h.repo.List(r.Context(), role)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": users, "total": len(users)})
	}
}

// GET /api/users/{id}
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PATCH /api/users/{id} — profile fields; role changes stay manager-gated
// at the route level.
func (h *UserHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Email     *string `json:"email"`
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Role      *string `json:"role"`
		Active    *bool   `json:"active"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		if in.Email != nil {
			u.Email = strings.TrimSpace(*in.Email)
		}
		if in.FirstName != nil {
			u.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			u.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Role != nil {
			role := models.Role(strings.ToLower(strings.TrimSpace(*in.Role)))
			if !role.Valid() {
				utils.Error(w, http.StatusBadRequest, "unknown role")
				return
			}
			u.Role = role
		}
		if in.Active != nil {
			u.Active = *in.Active
		}

		if err := h.repo.Update(r.Context(), u); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// DELETE /api/users/{id} — references to the user are nulled, dependent
// rows survive.
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.Fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
