package lifecycle

import (
	"errors"
	"fmt"

	"github.com/mjcarter/shortlist/internal/model"
)

// Error represents a failure detected by the lifecycle controller.
//
// Lifecycle errors include:
//   - Invalid transition: requested status not reachable from current
//   - Invalid operation: undo of the creation entry, interview edit
//     outside InterviewScheduled, bad initial status
//   - Not found: operation referenced a missing record id
//
// Store-layer failures (duplicate key, storage unavailable, transaction
// failed) are not wrapped in Error; they propagate with their sentinel
// from the store package.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// RecordID identifies the affected record, 0 when unassigned.
	RecordID int64

	// From and To carry the statuses of a rejected transition.
	From model.Status
	To   model.Status
}

// ErrorCode categorizes lifecycle errors.
type ErrorCode string

const (
	// ErrCodeInvalidTransition indicates the requested status is not
	// reachable from the record's current status.
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// ErrCodeInvalidOperation indicates the operation is not permitted in
	// the record's current state.
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ErrCodeNotFound indicates the referenced record does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.From != "" || e.To != "" {
		return fmt.Sprintf("%s: %s (record=%d, from=%s, to=%s)", e.Code, e.Message, e.RecordID, e.From, e.To)
	}
	if e.RecordID != 0 {
		return fmt.Sprintf("%s: %s (record=%d)", e.Code, e.Message, e.RecordID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidTransition reports whether err is an invalid-transition error.
// Uses errors.As to handle wrapped errors.
func IsInvalidTransition(err error) bool {
	return hasCode(err, ErrCodeInvalidTransition)
}

// IsInvalidOperation reports whether err is an invalid-operation error.
func IsInvalidOperation(err error) bool {
	return hasCode(err, ErrCodeInvalidOperation)
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

func notFound(id int64) *Error {
	return &Error{Code: ErrCodeNotFound, Message: "no such record", RecordID: id}
}
