package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"

	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	ErrCodeDuplicatePanchayath   ErrorCode = "DUPLICATE_PANCHAYATH"

	ErrCodeDatabaseQueryFailed  ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseUpdateFailed ErrorCode = "DATABASE_UPDATE_FAILED"
	ErrCodeSessionStoreFailed   ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeRegistrationNotFound ErrorCode = "REGISTRATION_NOT_FOUND"
	ErrCodeCategoryNotFound     ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodePanchayathNotFound   ErrorCode = "PANCHAYATH_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape every worker reports back to the process.
// Retryable tells the caller whether resubmitting the same request may succeed;
// it never triggers an automatic retry.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError unwraps err to a *StandardError if it carries one.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInputParsingFailedError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", err.Error(), false)
}

func NewValidationFailedError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

func NewDuplicateRegistrationError(phone string) *StandardError {
	return newError(ErrCodeDuplicateRegistration, "This phone number is already registered",
		fmt.Sprintf("phone: %s", phone), false)
}

func NewDuplicatePanchayathError(name string) *StandardError {
	return newError(ErrCodeDuplicatePanchayath, "A panchayath with this name already exists",
		fmt.Sprintf("name: %s", name), false)
}

func NewDatabaseQueryFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseQueryFailed, "Database query failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewDatabaseInsertFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewDatabaseUpdateFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseUpdateFailed, "Database update failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store unavailable", err.Error(), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewRegistrationNotFoundError(id string) *StandardError {
	return newError(ErrCodeRegistrationNotFound, "Registration not found",
		fmt.Sprintf("registrationId: %s", id), false)
}

func NewCategoryNotFoundError(id string) *StandardError {
	return newError(ErrCodeCategoryNotFound, "Category not found",
		fmt.Sprintf("categoryId: %s", id), false)
}

func NewPanchayathNotFoundError(id string) *StandardError {
	return newError(ErrCodePanchayathNotFound, "Panchayath not found",
		fmt.Sprintf("panchayathId: %s", id), false)
}

// NewInvalidCredentialsError never says which of username or password was wrong.
func NewInvalidCredentialsError() *StandardError {
	return newError(ErrCodeInvalidCredentials, "Invalid username or password", "", false)
}

func NewSessionNotFoundError() *StandardError {
	return newError(ErrCodeSessionNotFound, "Not logged in", "session missing or expired", false)
}

func NewPermissionDeniedError(role, action string) *StandardError {
	return newError(ErrCodePermissionDenied, "You do not have permission for this action",
		fmt.Sprintf("role: %s, action: %s", role, action), false)
}

// BPMNErrorMapping maps internal codes to the error codes caught by boundary events.
// Codes without an entry are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputParsingFailed:    "VALIDATION_FAILED",
	ErrCodeDatabaseQueryFailed:   "REPOSITORY_UNAVAILABLE",
	ErrCodeDatabaseInsertFailed:  "REPOSITORY_UNAVAILABLE",
	ErrCodeDatabaseUpdateFailed:  "REPOSITORY_UNAVAILABLE",
	ErrCodeSessionStoreFailed:    "SESSION_UNAVAILABLE",
	ErrCodeRegistrationNotFound:  "NOT_FOUND",
	ErrCodeCategoryNotFound:      "NOT_FOUND",
	ErrCodePanchayathNotFound:    "NOT_FOUND",
	ErrCodeDuplicateRegistration: "DUPLICATE_REGISTRATION",
	ErrCodeDuplicatePanchayath:   "DUPLICATE_PANCHAYATH",
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"errorCategory":     GetErrorCategory(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		ErrorVariables: vars,
	}
}

// GetErrorCategory buckets codes into the four failure kinds the UI distinguishes.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "DUPLICATE"):
		return "CONFLICT"
	case strings.HasSuffix(codeStr, "NOT_FOUND") && code != ErrCodeSessionNotFound:
		return "NOT_FOUND"
	case code == ErrCodeInvalidCredentials || code == ErrCodeSessionNotFound || code == ErrCodePermissionDenied:
		return "AUTH"
	default:
		return "TRANSPORT"
	}
}
