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

type ClientHTTP struct {
	clients repository.ClientRepository
}

func NewClientHTTP(clients repository.ClientRepository) *ClientHTTP {
	return &ClientHTTP{clients: clients}
}

// GET /api/clients
func (h *ClientHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.clients.List(r.Context())
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/clients/{id}
func (h *ClientHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.clients.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if c == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}

// POST /api/clients
func (h *ClientHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Department string `json:"department"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			utils.Fail(w, apperr.Invalid("name", "is required"))
			return
		}

		c := &models.Client{
			Name:       in.Name,
			Email:      strings.TrimSpace(in.Email),
			Phone:      strings.TrimSpace(in.Phone),
			Department: strings.TrimSpace(in.Department),
			Active:     true,
		}
		if err := h.clients.Create(r.Context(), c); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, c)
	}
}

// PATCH /api/clients/{id}
func (h *ClientHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name       *string `json:"name"`
		Email      *string `json:"email"`
		Phone      *string `json:"phone"`
		Department *string `json:"department"`
		Active     *bool   `json:"active"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := h.clients.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if c == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		if in.Name != nil {
			c.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			c.Email = strings.TrimSpace(*in.Email)
		}
		if in.Phone != nil {
			c.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Department != nil {
			c.Department = strings.TrimSpace(*in.Department)
		}
		if in.Active != nil {
			c.Active = *in.Active
		}
		if c.Name == "" {
			utils.Fail(w, apperr.Invalid("name", "is required"))
			return
		}

		if err := h.clients.Update(r.Context(), c); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}

// DELETE /api/clients/{id} — cascades the client's requests.
func (h *ClientHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.Fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
