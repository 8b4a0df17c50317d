package service

import "errors"

var (
	// ErrNotFound means the requested category or item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means a required parameter was missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")
)
