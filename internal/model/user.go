package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's platform role.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// UserStatus represents a user's verification state.
type UserStatus string

const (
	UserStatusNotVerified UserStatus = "not-verified"
	UserStatusVerified    UserStatus = "verified"
	UserStatusPending     UserStatus = "pending"
)

// User represents a platform account, created on first sign-in.
// Email is the business key and is unique at the store layer.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	PhotoURL    string     `json:"photo_url"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt time.Time  `json:"last_login_at"`
}

// SignInRequest is the payload for the sign-in upsert.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url"`
}

// UpdateRoleRequest is the payload for an admin role change.
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=student teacher admin"`
}
