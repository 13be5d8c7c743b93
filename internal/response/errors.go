package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrAuthRequired       ErrCode = "AUTHENTICATION_REQUIRED"
	ErrSessionInvalid     ErrCode = "SESSION_INVALID"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrQuestionNotFound ErrCode = "QUESTION_NOT_FOUND"

	// ─── Upload ────────────────────────────────────────────────────────
	ErrFileRequired       ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile    ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge       ErrCode = "FILE_TOO_LARGE"
	ErrInvalidSpreadsheet ErrCode = "INVALID_SPREADSHEET"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrAuthRequired:
		return "Please log in to continue."
	case ErrSessionInvalid:
		return "Your session has ended. Please log in again."
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrEmailTaken:
		return "Email already registered."

	case ErrAdminAccessOnly:
		return "Admin access required."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrQuestionNotFound:
		return "One or more answered questions do not exist."

	case ErrFileRequired:
		return "No file uploaded."
	case ErrUnsupportedFile:
		return "Please upload an Excel file (.xlsx)."
	case ErrFileTooLarge:
		return "File size exceeds the upload limit."
	case ErrInvalidSpreadsheet:
		return "The spreadsheet could not be processed."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrNotFound:
		return "Resource not found."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
