package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// BorrowerStatus – immutable value object
// ---------------------------------------------------------------------------

// BorrowerStatus represents the lifecycle stage of a borrower record.
// `overdue` is deliberately absent: days overdue and accrued penalty are
// derived metadata recomputed by the sweep, not a stored status, so an
// overdue borrower can still complete repayment.
type BorrowerStatus struct {
	value string
}

const (
	borrowerStatusPending        = "pending"
	borrowerStatusApproved       = "approved"
	borrowerStatusRejected       = "rejected"
	borrowerStatusContractSigned = "contract_signed"
	borrowerStatusCompleted      = "completed"
)

var (
	BorrowerStatusPending        = BorrowerStatus{value: borrowerStatusPending}
	BorrowerStatusApproved       = BorrowerStatus{value: borrowerStatusApproved}
	BorrowerStatusRejected       = BorrowerStatus{value: borrowerStatusRejected}
	BorrowerStatusContractSigned = BorrowerStatus{value: borrowerStatusContractSigned}
	BorrowerStatusCompleted      = BorrowerStatus{value: borrowerStatusCompleted}
)

var validBorrowerStatuses = map[string]BorrowerStatus{
	borrowerStatusPending:        BorrowerStatusPending,
	borrowerStatusApproved:       BorrowerStatusApproved,
	borrowerStatusRejected:       BorrowerStatusRejected,
	borrowerStatusContractSigned: BorrowerStatusContractSigned,
	borrowerStatusCompleted:      BorrowerStatusCompleted,
}

// allowedTransitions describes the lifecycle state machine.
var allowedTransitions = map[string][]string{
	borrowerStatusPending:        {borrowerStatusApproved, borrowerStatusRejected},
	borrowerStatusApproved:       {borrowerStatusContractSigned, borrowerStatusCompleted},
	borrowerStatusContractSigned: {borrowerStatusCompleted},
}

// NewBorrowerStatus creates a BorrowerStatus from a raw string.
func NewBorrowerStatus(s string) (BorrowerStatus, error) {
	v, ok := validBorrowerStatuses[s]
	if !ok {
		return BorrowerStatus{}, fmt.Errorf("invalid borrower status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s BorrowerStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s BorrowerStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s BorrowerStatus) Equal(other BorrowerStatus) bool { return s.value == other.value }

// IsTerminal reports whether the status permits no further transitions.
func (s BorrowerStatus) IsTerminal() bool {
	return s.value == borrowerStatusRejected || s.value == borrowerStatusCompleted
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (s BorrowerStatus) CanTransitionTo(target BorrowerStatus) bool {
	for _, next := range allowedTransitions[s.value] {
		if next == target.value {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var ErrInvalidStatusTransition = errors.New("invalid status transition")
