package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord matches every formal rejection: linkage, malformed content and signature failures.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrLinkageMismatch is returned when a record's prevId is not the id of the last accepted record.
	ErrLinkageMismatch = errors.New("previous transaction id is incorrect")
	// ErrSignatureInvalid is returned when a signature recovers a key but fails verification against it.
	ErrSignatureInvalid = errors.New("invalid signature")
	// ErrMalformedRecord is returned for records with an unparsable recipient or a negative amount.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInsufficientFunds is returned at submission time when the sender cannot cover the amount.
	ErrInsufficientFunds = errors.New("not enough funds")
)

// RejectionError describes why a single record was not accepted into the chain.
type RejectionError struct {
	RecordID uint64
	Reason   error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("transaction %d is invalid: %v", e.RecordID, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// Is makes every rejection match ErrInvalidRecord in addition to its reason.
func (e *RejectionError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func reject(r Record, reason error) *RejectionError {
	return &RejectionError{
		RecordID: r.ID,
		Reason:   reason,
	}
}
