package model

import "errors"

var (
	// ErrMemberNotFound indicates that the requested member does not exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrInvalidSearch indicates that search parameters failed validation.
	ErrInvalidSearch = errors.New("invalid search request")
	// ErrInvalidMember indicates that a member payload is invalid (e.g., negative age).
	ErrInvalidMember = errors.New("invalid member")
)
