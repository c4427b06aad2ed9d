package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the review state of a teacher application.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// TeacherRequest is an application to become a teacher, keyed by the
// applicant's email. Re-submitting moves a rejected request back to pending.
type TeacherRequest struct {
	ID         uuid.UUID     `json:"id"`
	Email      string        `json:"email"`
	Name       string        `json:"name"`
	Experience string        `json:"experience"`
	Category   string        `json:"category"`
	Title      string        `json:"title"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CreateTeacherRequestRequest is the payload for submitting a teacher application.
type CreateTeacherRequestRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Experience string `json:"experience" binding:"required,oneof=beginner mid-level experienced"`
	Category   string `json:"category" binding:"required,min=1,max=100"`
	Title      string `json:"title" binding:"required,min=1,max=200"`
}
