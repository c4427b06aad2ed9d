package model

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links a student to a class after payment completes.
// (class_id, student_email) is unique at the store layer.
type Enrollment struct {
	ID           uuid.UUID `json:"id"`
	ClassID      uuid.UUID `json:"class_id"`
	StudentEmail string    `json:"student_email"`
	PaymentID    string    `json:"payment_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// EnrolledClass is an enrollment joined with its class for listing.
type EnrolledClass struct {
	Enrollment Enrollment `json:"enrollment"`
	Class      Class      `json:"class"`
}

// CreateEnrollmentRequest is the payload for recording an enrollment after
// client-side payment confirmation.
type CreateEnrollmentRequest struct {
	ClassID   uuid.UUID `json:"class_id" binding:"required"`
	PaymentID string    `json:"payment_id" binding:"required,min=1,max=200"`
}

// CreatePaymentIntentRequest is the payload for creating a payment intent.
type CreatePaymentIntentRequest struct {
	ClassID uuid.UUID `json:"class_id" binding:"required"`
}
