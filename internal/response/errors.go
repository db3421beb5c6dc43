package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrFacultyOnly     ErrCode = "FACULTY_ACCESS_ONLY"
	ErrAdminOnly       ErrCode = "ADMIN_ACCESS_ONLY"
	ErrNotAssigned     ErrCode = "QUESTION_NOT_ASSIGNED"
	ErrEmailRegistered ErrCode = "EMAIL_ALREADY_REGISTERED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidID       ErrCode = "INVALID_ID"
	ErrSubjectRequired ErrCode = "SUBJECT_REQUIRED"
	ErrInvalidStudent  ErrCode = "INVALID_STUDENT_ID"
	ErrInvalidFaculty  ErrCode = "INVALID_FACULTY_ID"
	ErrNotAFaculty     ErrCode = "NOT_A_FACULTY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrUserNotFound     ErrCode = "USER_NOT_FOUND"
	ErrQuestionNotFound ErrCode = "QUESTION_NOT_FOUND"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS_FOUND"
	ErrNoFaculty        ErrCode = "NO_FACULTY_FOUND"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		// Same message whether the account is missing or the password is
		// wrong, so responses carry no account-existence oracle.
		return "Invalid email or password."
	case ErrTokenRequired:
		return "Access denied: no session token provided."
	case ErrTokenInvalid:
		return "Invalid session token."
	case ErrTokenExpired:
		return "Session has expired. Please log in again."

	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrFacultyOnly:
		return "Access denied: faculty only."
	case ErrAdminOnly:
		return "Access denied: admins only."
	case ErrNotAssigned:
		return "This question is not assigned to you."
	case ErrEmailRegistered:
		return "An account with this email already exists."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrSubjectRequired:
		return "Subject is required."
	case ErrInvalidStudent:
		return "Student ID does not reference a student account."
	case ErrInvalidFaculty:
		return "Faculty ID does not reference a faculty account."
	case ErrNotAFaculty:
		return "Only faculty accounts can be deleted."

	case ErrUserNotFound:
		return "User not found."
	case ErrQuestionNotFound:
		return "Question not found."
	case ErrNoQuestions:
		return "No questions found."
	case ErrNoFaculty:
		return "No faculty found."

	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
