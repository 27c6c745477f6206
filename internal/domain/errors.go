package domain

import "errors"

// Anticipated failures. All of these map to a 4xx response at the API
// boundary; anything else is treated as an internal error.
var (
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidEmailDomain = errors.New("only institutional email addresses are allowed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrListingNotFound    = errors.New("listing not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidRange       = errors.New("minPrice cannot be greater than maxPrice")
	ErrEmptyContent       = errors.New("message content cannot be empty")
	ErrInvalidStatus      = errors.New("invalid listing status")
)
