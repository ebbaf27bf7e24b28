package domain

import "errors"

// ErrNotFound signals that an entity does not exist for a by-id operation.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput signals that a request failed service-level validation.
var ErrInvalidInput = errors.New("invalid input")
