package services

import "errors"

// Sentinel errors letting handlers map service failures onto status codes
// without inspecting error strings.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid data")
)
