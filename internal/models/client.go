package models

import "time"

type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RequestPriority string

const (
	RequestLow    RequestPriority = "Low"
	RequestMedium RequestPriority = "Medium"
	RequestHigh   RequestPriority = "High"
)

func (p RequestPriority) Valid() bool {
	switch p {
	case RequestLow, RequestMedium, RequestHigh:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestNew       RequestStatus = "New"
	RequestReviewing RequestStatus = "Reviewing"
	RequestApproved  RequestStatus = "Approved"
	RequestRejected  RequestStatus = "Rejected"
	RequestConverted RequestStatus = "Converted"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestNew, RequestReviewing, RequestApproved, RequestRejected, RequestConverted:
		return true
	}
	return false
}

// ClientRequest is a client-submitted issue. At most one Task may
// reference a given request; converting it sets Status to Converted.
type ClientRequest struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"clientId"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Priority    RequestPriority `json:"priority"`
	Status      RequestStatus   `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
	ReviewedBy  string          `json:"reviewedBy,omitempty"`
}
