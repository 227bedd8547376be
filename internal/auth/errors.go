package auth

import "errors"

var (
	// ErrCompanyMismatch indicates a resource belongs to a different company.
	ErrCompanyMismatch = errors.New("company mismatch")
	// ErrNotFound indicates the resource was not found.
	ErrNotFound = errors.New("resource not found")
)
