// Package access holds the capability policy for write operations. The
// check is stateless: it looks only at the principal passed in.
package access

import (
	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
)

type Resource string

const (
	ResourceTask       Resource = "task"
	ResourceClient     Resource = "client"
	ResourceRequest    Resource = "client-request"
	ResourceDepartment Resource = "department"
	ResourceComment    Resource = "comment"
	ResourceLog        Resource = "log"
	ResourceUser       Resource = "user"
)

// CanMutate reports whether the principal may perform a write on the
// given resource kind. Task writes need an admin or manager; every other
// resource only needs an authenticated principal.
func CanMutate(principal *models.User, res Resource) bool {
	if principal == nil {
		return false
	}
	if res != ResourceTask {
		return true
	}
	return principal.Role == models.RoleAdmin || principal.Role == models.RoleManager
}

// CheckMutate is CanMutate expressed as an error: ErrUnauthenticated for
// a nil principal, ErrForbidden for an unqualified one.
func CheckMutate(principal *models.User, res Resource) error {
	if principal == nil {
		return apperr.ErrUnauthenticated
	}
	if !CanMutate(principal, res) {
		return apperr.ErrForbidden
	}
	return nil
}
