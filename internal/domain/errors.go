package domain

import "errors"

var (
	// ErrNoStructure is returned when the model response contains no
	// brace-delimited structure to parse.
	ErrNoStructure = errors.New("no structured data found in model response")

	// ErrMalformedResponse is returned when a brace-delimited span was found
	// but could not be parsed as literal data.
	ErrMalformedResponse = errors.New("failed to parse model response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrDuplicateProduct is returned when a record with the same product
	// and brand name already exists in the store.
	ErrDuplicateProduct = errors.New("product already exists")

	// ErrProductNotFound is returned when a product record cannot be found
	ErrProductNotFound = errors.New("product not found")

	// ErrModelUnavailable is returned when the generative-model collaborator fails
	ErrModelUnavailable = errors.New("model request failed")

	// ErrOCRUnavailable is returned when the OCR collaborator fails
	ErrOCRUnavailable = errors.New("text recognition failed")

	// ErrStoreUnavailable is returned when the document store is unreachable
	ErrStoreUnavailable = errors.New("document store request failed")

	// ErrTranslateUnavailable is returned when the translation collaborator fails
	ErrTranslateUnavailable = errors.New("translation request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUserNotFound is returned when no account exists for an email
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an already-registered email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when a password fails the strength rules
	ErrWeakPassword = errors.New("password does not meet strength requirements")
)
