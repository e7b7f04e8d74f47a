package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when signing up with an existing email.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode is returned when the login verification code does not match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrInvalidResetToken is returned when a reset token is wrong or expired.
	// Wrong and expired are deliberately indistinguishable to the caller.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrChildNotFound is returned when a child record is not found.
	ErrChildNotFound = errors.New("child not found")
	// ErrDonationNotFound is returned when a donation record is not found.
	ErrDonationNotFound = errors.New("donation not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidCode:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CODE")
	case ErrInvalidResetToken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	case ErrChildNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CHILD_NOT_FOUND")
	case ErrDonationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "DONATION_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
