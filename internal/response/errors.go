package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminOnly       ErrCode = "ADMIN_ACCESS_ONLY"
	ErrTeacherOnly     ErrCode = "TEACHER_ACCESS_ONLY"
	ErrNotClassOwner   ErrCode = "NOT_CLASS_OWNER"
	ErrNotEnrolled     ErrCode = "NOT_ENROLLED"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrAlreadyEnrolled ErrCode = "ALREADY_ENROLLED"

	// ─── Payments ──────────────────────────────────────────────────────
	ErrPaymentProvider ErrCode = "PAYMENT_PROVIDER_ERROR"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Internal error detail is never surfaced to clients.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminOnly:
		return "This resource is restricted to administrators."
	case ErrTeacherOnly:
		return "This resource is restricted to teachers."
	case ErrNotClassOwner:
		return "You are not the owner of this class."
	case ErrNotEnrolled:
		return "You are not enrolled in this class."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrAlreadyEnrolled:
		return "You are already enrolled in this class."

	// ─── Payments ──────────────────────────────────────────────────────
	case ErrPaymentProvider:
		return "The payment provider could not process the request."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
