// Package core implements the social graph and conversation logic: the
// friendship ledger, group membership registry, conversation store and its
// derived index, and the task tracker. Services are persistence-agnostic;
// they speak the store interfaces and raise typed errors.
package core

import (
	"fmt"

	"homeroom/core/errs"
)

// The taxonomy lives in core/errs (a leaf package) so utils can import it
// without creating an import cycle; these aliases keep core's API intact.
type Kind = errs.Kind

const (
	KindInvalid       = errs.KindInvalid
	KindNotFound      = errs.KindNotFound
	KindConflict      = errs.KindConflict
	KindAlreadyExists = errs.KindAlreadyExists
	KindForbidden     = errs.KindForbidden
)

// Error is the typed failure every core operation raises. For friendship
// conflicts, Status and InitiatedBy carry the existing record's state so
// the caller can decide its next action without a second read.
type Error = errs.Error

// KindOf extracts the taxonomy kind, or zero for non-core errors.
func KindOf(err error) Kind {
	return errs.KindOf(err)
}

func errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...interface{}) *Error {
	return errf(KindInvalid, format, args...)
}

func notFoundf(format string, args ...interface{}) *Error {
	return errf(KindNotFound, format, args...)
}

func conflictf(format string, args ...interface{}) *Error {
	return errf(KindConflict, format, args...)
}

func forbiddenf(format string, args ...interface{}) *Error {
	return errf(KindForbidden, format, args...)
}
