package service

import (
	"context"
	"strings"

	"taskdesk/internal/access"
	"taskdesk/internal/apperr"
	"taskdesk/internal/audit"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

// RequestService owns client-request mutations, including the convert
// flow that turns a request into a task.
type RequestService struct {
	requests repository.RequestRepository
	clients  repository.ClientRepository
}

func NewRequestService(requests repository.RequestRepository, clients repository.ClientRepository) *RequestService {
	return &RequestService{requests: requests, clients: clients}
}

func (s *RequestService) Create(ctx context.Context, principal *models.User, cr *models.ClientRequest) error {
	if principal == nil {
		return apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(cr.Description) == "" {
		return apperr.Invalid("description", "is required")
	}
	if cr.Priority == "" {
		cr.Priority = models.RequestMedium
	}
	if cr.Status == "" {
		cr.Status = models.RequestNew
	}
	if !cr.Priority.Valid() {
		return apperr.Invalid("priority", "unknown priority")
	}
	if !cr.Status.Valid() {
		return apperr.Invalid("status", "unknown status")
	}

	// A request must reference a resolvable client.
	c, err := s.clients.Get(ctx, cr.ClientID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.Integrityf("client %s does not exist", cr.ClientID)
	}

	return s.requests.Create(ctx, cr)
}

func (s *RequestService) Update(ctx context.Context, principal *models.User, cr *models.ClientRequest) error {
	if principal == nil {
		return apperr.ErrUnauthenticated
	}
	if !cr.Priority.Valid() {
		return apperr.Invalid("priority", "unknown priority")
	}
	if !cr.Status.Valid() {
		return apperr.Invalid("status", "unknown status")
	}
	return s.requests.Update(ctx, cr)
}

// Convert turns a request into a task: the new task takes the request's
// category/description/priority, the request becomes Converted with the
// principal as reviewer, and the task's creation log lands in the same
// transaction. Converting creates a task, so the task mutation policy
// applies. A request can back at most one task.
func (s *RequestService) Convert(ctx context.Context, principal *models.User, requestID string) (*models.Task, error) {
	if err := access.CheckMutate(principal, access.ResourceTask); err != nil {
		return nil, err
	}

	cr, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, apperr.NotFoundf("client request %s", requestID)
	}
	if cr.Status == models.RequestConverted {
		return nil, apperr.Integrityf("request %s is already converted", requestID)
	}

	t := &models.Task{
		Category:    taskCategory(cr.Category),
		Description: cr.Description,
		CreatedBy:   principal.ID,
		Status:      models.StatusNew,
		Priority:    taskPriority(cr.Priority),
	}
	cr.ReviewedBy = principal.ID

	log := audit.CreationLog("", principal, t.Status)
	if err := s.requests.Convert(ctx, cr, t, &log); err != nil {
		return nil, err
	}
	return t, nil
}

// taskCategory maps a request's free-text category onto the task
// enumeration, falling back to Other.
func taskCategory(s string) models.TaskCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "software":
		return models.CategorySoftware
	case "hardware":
		return models.CategoryHardware
	case "network":
		return models.CategoryNetwork
	case "account":
		return models.CategoryAccount
	default:
		return models.CategoryOther
	}
}

// Request priorities are a subset of task priorities (no Urgent), so the
// literals carry over directly.
func taskPriority(p models.RequestPriority) models.TaskPriority {
	switch p {
	case models.RequestLow:
		return models.PriorityLow
	case models.RequestHigh:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}
