package apperror

// Stable machine-readable error codes surfaced in API responses.
// Callers branch on these instead of parsing messages.
const (
	CodeSlotConflict      = "slot_conflict"
	CodeSlotMismatch      = "slot_mismatch"
	CodeInvalidTransition = "invalid_transition"
	CodeNotFound          = "not_found"
	CodeInvalidInput      = "invalid_input"
	CodePermissionDenied  = "permission_denied"
	CodeInternal          = "internal"
)

// AppError is a custom error type carrying an HTTP status code and a stable
// machine code alongside the user-facing message.
type AppError struct {
	Status  int    // HTTP status code (e.g., 400, 404, 409)
	Code    string // Machine-readable code (e.g., "slot_conflict")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status, code and message.
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
