package models

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ProRequest mirrors the pro_requests table.
type ProRequest struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// PendingRequest is a pending row joined with the requester, as rendered in
// the admin panel.
type PendingRequest struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FullName    string    `json:"full_name"`
	RequestedAt time.Time `json:"requested_at"`
}
