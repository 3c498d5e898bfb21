package session

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to session errors so callers can branch on the failure
// kind without matching message strings.
const (
	TextCodeAlreadyExists      = "ACCOUNT_ALREADY_EXISTS"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeValidationRejected = "VALIDATION_REJECTED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeUnauthenticated    = "UNAUTHENTICATED"
	TextCodeUserNotFound       = "USER_NOT_FOUND"
	TextCodeUnreachable        = "SERVICE_UNREACHABLE"
	TextCodeUnknown            = "UNKNOWN_AUTH_ERROR"
)

// ErrAlreadyExists is returned when the identity service rejects a signup
// because the account exists.
var ErrAlreadyExists = goerrors.New("user already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyExists).
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials is returned when the identity service rejects a
// sign-in exchange.
var ErrInvalidCredentials = goerrors.New("sign in failed", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when the identity service signals that the
// bearer token is no longer valid. The durable token slot is cleared before
// this error surfaces.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoToken is returned when an authenticated call is attempted with no
// durable token present.
var ErrNoToken = goerrors.New("no authentication token found", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrUserNotFound is returned when the identity service has no record for
// the requested user id.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(goerrors.CodeNotFound)

// newServiceError builds an error of the same class as base, carrying the
// service-provided message verbatim when present.
func newServiceError(base *goerrors.Error, message string) *goerrors.Error {
	if message == "" {
		return base
	}
	return goerrors.New(message, base.Category).
		WithTextCode(base.TextCode).
		WithCode(base.Code)
}

// newValidationRejected wraps a service-side validation rejection.
func newValidationRejected(message, fallback string) *goerrors.Error {
	if message == "" {
		message = fallback
	}
	return goerrors.New(message, goerrors.CategoryValidation).
		WithTextCode(TextCodeValidationRejected).
		WithCode(goerrors.CodeBadRequest)
}

// newUnreachable wraps a transport-level failure reaching the identity
// service.
func newUnreachable(err error, operation string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "identity service unreachable").
		WithTextCode(TextCodeUnreachable).
		WithMetadata(map[string]any{"operation": operation})
}

// newUnknownServiceError covers replies the taxonomy does not name.
func newUnknownServiceError(message, fallback string) *goerrors.Error {
	if message == "" {
		message = fallback
	}
	return goerrors.New(message, goerrors.CategoryInternal).
		WithTextCode(TextCodeUnknown)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

// IsAlreadyExistsError checks for signup conflicts.
func IsAlreadyExistsError(err error) bool {
	return hasTextCode(err, TextCodeAlreadyExists)
}

// IsInvalidCredentialsError checks for rejected sign-in exchanges.
func IsInvalidCredentialsError(err error) bool {
	return hasTextCode(err, TextCodeInvalidCredentials)
}

// IsValidationRejectedError checks for service-side validation rejections.
func IsValidationRejectedError(err error) bool {
	return hasTextCode(err, TextCodeValidationRejected)
}

// IsTokenExpiredError will check for expired tokens.
func IsTokenExpiredError(err error) bool {
	return hasTextCode(err, TextCodeTokenExpired)
}

// IsUnauthenticatedError checks for calls made without a durable token.
func IsUnauthenticatedError(err error) bool {
	return hasTextCode(err, TextCodeUnauthenticated)
}

// IsUserNotFoundError checks for unknown user ids.
func IsUserNotFoundError(err error) bool {
	return hasTextCode(err, TextCodeUserNotFound)
}

// IsUnreachableError checks for transport-level failures, as opposed to
// replies the service rejected.
func IsUnreachableError(err error) bool {
	return hasTextCode(err, TextCodeUnreachable)
}
