// Package errs holds core's error taxonomy in a leaf package so that
// utils can translate typed failures without importing core itself.
package errs

import (
	"errors"

	"homeroom/models"
)

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
	KindConflict
	KindAlreadyExists
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAlreadyExists:
		return "already_exists"
	case KindForbidden:
		return "forbidden"
	}
	return "unknown"
}

// Error is the typed failure every core operation raises. For friendship
// conflicts, Status and InitiatedBy carry the existing record's state so
// the caller can decide its next action without a second read.
type Error struct {
	Kind        Kind                    `json:"kind"`
	Message     string                  `json:"message"`
	Status      models.FriendshipStatus `json:"status,omitempty"`
	InitiatedBy string                  `json:"initiated_by,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the taxonomy kind, or zero for non-core errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
