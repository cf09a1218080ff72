package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNicknameTooShort is returned when a nickname or password fails length validation.
	ErrNicknameTooShort = errors.New("nickname or password is too short")
	// ErrPasswordTooLong is returned when a password exceeds the hashable length.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrNicknameTaken is returned when the nickname is already registered.
	ErrNicknameTaken = errors.New("nickname already taken")
	// ErrInvalidCredentials is returned for both unknown nickname and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPayload is returned when a sync payload cannot be serialized.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound is returned when a token references a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Validation -> 400, authentication -> 401, conflict -> 409, anything else
// is a generic 500 so storage internals never leak to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNicknameTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOO_SHORT")
	case errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOO_LONG")
	case errors.Is(err, ErrInvalidPayload):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAYLOAD")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrNicknameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "NICKNAME_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
