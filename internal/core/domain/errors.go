package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDiagramSyntax indicates the renderer rejected the diagram source
	ErrDiagramSyntax = errors.New("diagram syntax error")

	// ErrUpstreamOverloaded indicates the generation service returned HTTP 502
	ErrUpstreamOverloaded = errors.New("upstream overloaded")

	// ErrNoResults indicates an image search returned zero results
	ErrNoResults = errors.New("no results")

	// ErrProcessingTimeout indicates note generation exceeded its wall-clock budget
	ErrProcessingTimeout = errors.New("processing timed out")

	// ErrServiceUnavailable indicates an external AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrStorageNotConfigured indicates no object storage backend is available
	ErrStorageNotConfigured = errors.New("object storage not configured")
)
