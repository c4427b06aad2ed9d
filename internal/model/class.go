package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassStatus represents the moderation state of a class.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusRejected ClassStatus = "rejected"
)

// Class represents a course offered by a teacher. Only approved classes are
// visible on public listing endpoints. EnrolledCount and AssignmentCount are
// maintained by relative increments, never read-modify-write.
type Class struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	TeacherEmail    string      `json:"teacher_email"`
	TeacherName     string      `json:"teacher_name"`
	ImageURL        string      `json:"image_url"`
	Price           float64     `json:"price"`
	Description     string      `json:"description"`
	Status          ClassStatus `json:"status"`
	EnrolledCount   int         `json:"enrolled_count"`
	AssignmentCount int         `json:"assignment_count"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
// Price uses min=0 without required so a free class is a valid payload.
type CreateClassRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	Price       float64 `json:"price" binding:"min=0"`
	Description string  `json:"description" binding:"required,min=1,max=5000"`
}

// UpdateClassStatusRequest is the payload for an admin status transition.
type UpdateClassStatusRequest struct {
	Status ClassStatus `json:"status" binding:"required,oneof=approved rejected"`
}
