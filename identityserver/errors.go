package identityserver

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrUserNotFound is returned for unknown emails or ids.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrUserExists is returned when a signup hits an existing email.
var ErrUserExists = goerrors.New("user already exists", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrEmptyPassword rejects blank passwords before hashing.
var ErrEmptyPassword = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenInvalid covers expired, malformed, or unsigned bearer tokens.
var ErrTokenInvalid = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)
