package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/models"
	"taskdesk/internal/utils"
)

// RequireSelfOrRoles allows if {id} == ctx user id OR the user holds one
// of the given roles. Used for profile updates: users manage their own
// profile, managers manage anyone's.
func RequireSelfOrRoles(roles ...models.Role) func(http.Handler) http.Handler {
	roleSet := map[models.Role]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxUID, _ := utils.GetString(r.Context(), CtxUserID)
			ctxRole, _ := utils.GetString(r.Context(), CtxRole)
			pathID := chi.URLParam(r, "id")

			if _, ok := roleSet[models.Role(ctxRole)]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if ctxUID != "" && pathID == ctxUID {
				next.ServeHTTP(w, r)
				return
			}
			utils.Error(w, http.StatusForbidden, "forbidden")
		})
	}
}
