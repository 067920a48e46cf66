package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/middleware"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
	"taskdesk/internal/utils"
)

type RequestHTTP struct {
	svc      *service.RequestService
	requests repository.RequestRepository
}

func NewRequestHTTP(svc *service.RequestService, requests repository.RequestRepository) *RequestHTTP {
	return &RequestHTTP{svc: svc, requests: requests}
}

// GET /api/client-requests?client_id=&status=
func (h *RequestHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.RequestFilter{
			ClientID: strings.TrimSpace(qv.Get("client_id")),
			Status:   models.RequestStatus(strings.TrimSpace(qv.Get("status"))),
		}
		items, err := h.requests.List(r.Context(), f)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/client-requests/{id}
func (h *RequestHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cr, err := h.requests.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if cr == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, cr)
	}
}

// POST /api/client-requests
func (h *RequestHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		ClientID    string `json:"clientId"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		cr := &models.ClientRequest{
			ClientID:    strings.TrimSpace(in.ClientID),
			Category:    strings.TrimSpace(in.Category),
			Description: strings.TrimSpace(in.Description),
			Priority:    models.RequestPriority(strings.TrimSpace(in.Priority)),
		}
		if err := h.svc.Create(r.Context(), middleware.Principal(r.Context()), cr); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, cr)
	}
}

// PATCH /api/client-requests/{id}
func (h *RequestHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Category    *string `json:"category"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		cr, err := h.requests.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		if cr == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		if in.Category != nil {
			cr.Category = strings.TrimSpace(*in.Category)
		}
		if in.Description != nil {
			cr.Description = strings.TrimSpace(*in.Description)
		}
		if in.Priority != nil {
			cr.Priority = models.RequestPriority(strings.TrimSpace(*in.Priority))
		}
		if in.Status != nil {
			cr.Status = models.RequestStatus(strings.TrimSpace(*in.Status))
		}

		if err := h.svc.Update(r.Context(), middleware.Principal(r.Context()), cr); err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, cr)
	}
}

// DELETE /api/client-requests/{id}
func (h *RequestHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requests.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.Fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /api/client-requests/{id}/convert
func (h *RequestHTTP) Convert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.svc.Convert(r.Context(), middleware.Principal(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}
