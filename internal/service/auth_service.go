package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

// Register creates a user. Self-registration may only claim manager,
// employee or client (empty defaults to employee); anything else,
// "admin" included, is rejected with a validation error.
func (a *AuthService) Register(ctx context.Context, username, email, password, firstName, lastName, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "is required"
	}
	if email == "" {
		fields["email"] = "is required"
	}
	if len(password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "manager", "employee", "client":
	case "":
		role = "employee"
	default:
		fields["role"] = "must be manager, employee or client"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation{Fields: fields}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      models.ResolveRole(false, []string{role}),
	}
	if err := a.users.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.Active {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
