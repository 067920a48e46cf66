package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskdesk/internal/config"
	"taskdesk/internal/models"
	"taskdesk/internal/utils"
)

type ctxKey string

const (
	CtxUserID ctxKey = "uid"
	CtxRole   ctxKey = "role"
)

func WithAuth(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// JWT from cookie "session" or Authorization: Bearer
			var tok string
			if c, err := r.Cookie("session"); err == nil {
				tok = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tok = strings.TrimPrefix(h, "Bearer ")
			}

			if tok == "" {
				next.ServeHTTP(w, r) // unauthenticated; handlers decide
				return
			}

			claims, err := utils.ParseJWT(cfg.SessionSecret, tok)
			if err != nil {
				// Clear a broken/expired cookie so it stops being sent.
				http.SetCookie(w, &http.Cookie{
					Name:     "session",
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal materializes the authenticated actor from the request
// context, nil when the request carries no valid session. Only identity
// and role are populated; handlers load the full profile when they need
// more.
func Principal(ctx context.Context) *models.User {
	uid, _ := utils.GetString(ctx, CtxUserID)
	if uid == "" {
		return nil
	}
	role, _ := utils.GetString(ctx, CtxRole)
	return &models.User{ID: uid, Role: models.Role(role)}
}
