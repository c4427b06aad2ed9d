package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is a task attached to a class by its teacher.
type Assignment struct {
	ID              uuid.UUID `json:"id"`
	ClassID         uuid.UUID `json:"class_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Deadline        time.Time `json:"deadline"`
	SubmissionCount int       `json:"submission_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Submission is a student's answer to an assignment.
type Submission struct {
	ID           uuid.UUID `json:"id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	StudentEmail string    `json:"student_email"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"required,min=1,max=5000"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// CreateSubmissionRequest is the payload for submitting an assignment answer.
type CreateSubmissionRequest struct {
	Body string `json:"body" binding:"required,min=1,max=10000"`
}
