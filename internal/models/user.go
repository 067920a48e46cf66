package models

import (
	"strings"
	"time"
)

// Role is the effective permission level of a user. It is a closed set;
// raw group/flag state from registration is mapped through ResolveRole.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// ResolveRole maps raw account state (superuser flag + group names) to an
// effective Role. Superusers and members of the Admin group are presented
// as managers; accounts with no group default to employee.
func ResolveRole(superuser bool, groups []string) Role {
	if superuser {
		return RoleManager
	}
	for _, g := range groups {
		switch Role(strings.ToLower(strings.TrimSpace(g))) {
		case RoleAdmin:
			return RoleManager
		case RoleManager:
			return RoleManager
		case RoleEmployee:
			return RoleEmployee
		case RoleClient:
			return RoleClient
		}
	}
	return RoleEmployee
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName is "First Last" when both parts are set, otherwise the
// unique username.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// Unassigned is the display literal used in audit entries when a task has
// no assignee on one side of a change.
const Unassigned = "Unassigned"

// LogName renders a nullable user for an audit entry.
func LogName(u *User) string {
	if u == nil {
		return Unassigned
	}
	return u.DisplayName()
}
