package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"taskdesk/internal/middleware"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
	"taskdesk/internal/utils"
)

type AuthHTTP struct {
	svc   *service.AuthService
	users repository.UserRepository
}

func NewAuthHTTP(s *service.AuthService, users repository.UserRepository) *AuthHTTP {
	return &AuthHTTP{svc: s, users: users}
}

// POST /api/auth/register
func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username  string `json:"username"`
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Role      string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), in.Username, in.Email, in.Password, in.FirstName, in.LastName, in.Role)
		if err != nil {
			utils.Fail(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// POST /api/auth/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Username, in.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				utils.Error(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			utils.Fail(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(24 * time.Hour),
		})
		utils.JSON(w, http.StatusOK, map[string]any{"user": u, "token": token})
	}
}

// POST /api/auth/logout
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/auth/me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := middleware.Principal(r.Context())
		if p == nil {
			utils.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		u, err := h.users.GetByID(r.Context(), p.ID)
		if err != nil || u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
