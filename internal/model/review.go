package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a student's rating of a class they are enrolled in.
type Review struct {
	ID           uuid.UUID `json:"id"`
	ClassID      uuid.UUID `json:"class_id"`
	StudentEmail string    `json:"student_email"`
	StudentName  string    `json:"student_name"`
	Rating       int       `json:"rating"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateReviewRequest is the payload for posting a class review.
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Body   string `json:"body" binding:"required,min=1,max=2000"`
}
