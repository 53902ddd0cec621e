package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// DomainEvent is the interface all borrower domain events implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   string
	aggregateType string
	occurredAt    time.Time
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
	}
}

// EventID returns the unique identifier for this event.
func (e BaseEvent) EventID() uuid.UUID { return e.id }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string { return e.aggregateID }

// AggregateType returns the type name of the aggregate that produced this event.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// ---------------------------------------------------------------------------
// Borrower lifecycle events
// ---------------------------------------------------------------------------

// BorrowerRegistered is raised when a new borrower record enters the system.
type BorrowerRegistered struct {
	BaseEvent
	LineUserID      string          `json:"line_user_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Frequency       string          `json:"frequency"`
}

func NewBorrowerRegistered(borrowerID, lineUserID string, amount decimal.Decimal, freq valueobject.PaymentFrequency) BorrowerRegistered {
	return BorrowerRegistered{
		BaseEvent:       NewBaseEvent("baantk.borrower.registered", borrowerID, "Borrower"),
		LineUserID:      lineUserID,
		RequestedAmount: amount,
		Frequency:       freq.String(),
	}
}

// CreditAssessed is raised when the scoring engine writes an assessment.
type CreditAssessed struct {
	BaseEvent
	Score    int    `json:"score"`
	Grade    string `json:"grade"`
	Risk     string `json:"risk_level"`
	Source   string `json:"source"`
	Degraded bool   `json:"degraded"`
}

func NewCreditAssessed(borrowerID string, score int, grade valueobject.Grade, risk valueobject.RiskLevel, source string, degraded bool) CreditAssessed {
	return CreditAssessed{
		BaseEvent: NewBaseEvent("baantk.borrower.credit_assessed", borrowerID, "Borrower"),
		Score:     score,
		Grade:     string(grade),
		Risk:      risk.String(),
		Source:    source,
		Degraded:  degraded,
	}
}

// BorrowerApproved is raised when an application is approved (admin or policy).
type BorrowerApproved struct {
	BaseEvent
	Reason    string `json:"reason"`
	DecidedBy string `json:"decided_by"`
}

func NewBorrowerApproved(borrowerID, reason, decidedBy string) BorrowerApproved {
	return BorrowerApproved{
		BaseEvent: NewBaseEvent("baantk.borrower.approved", borrowerID, "Borrower"),
		Reason:    reason,
		DecidedBy: decidedBy,
	}
}

// BorrowerRejected is raised when an application is rejected.
type BorrowerRejected struct {
	BaseEvent
	Reason    string `json:"reason"`
	DecidedBy string `json:"decided_by"`
}

func NewBorrowerRejected(borrowerID, reason, decidedBy string) BorrowerRejected {
	return BorrowerRejected{
		BaseEvent: NewBaseEvent("baantk.borrower.rejected", borrowerID, "Borrower"),
		Reason:    reason,
		DecidedBy: decidedBy,
	}
}

// ContractSigned is raised when the loan contract is signed.
type ContractSigned struct {
	BaseEvent
}

func NewContractSigned(borrowerID string) ContractSigned {
	return ContractSigned{
		BaseEvent: NewBaseEvent("baantk.borrower.contract_signed", borrowerID, "Borrower"),
	}
}

// PaymentRecorded is raised when a payment confirmation is applied.
type PaymentRecorded struct {
	BaseEvent
	Amount     decimal.Decimal `json:"amount"`
	PaidTotal  decimal.Decimal `json:"paid_total"`
	OnSchedule bool            `json:"on_schedule"`
}

func NewPaymentRecorded(borrowerID string, amount, paidTotal decimal.Decimal, onSchedule bool) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:  NewBaseEvent("baantk.borrower.payment_recorded", borrowerID, "Borrower"),
		Amount:     amount,
		PaidTotal:  paidTotal,
		OnSchedule: onSchedule,
	}
}

// LoanCompleted is raised when the loan is fully repaid.
type LoanCompleted struct {
	BaseEvent
}

func NewLoanCompleted(borrowerID string) LoanCompleted {
	return LoanCompleted{
		BaseEvent: NewBaseEvent("baantk.borrower.completed", borrowerID, "Borrower"),
	}
}

// OverdueAssessed is raised by the sweep when penalty metadata is recomputed.
type OverdueAssessed struct {
	BaseEvent
	OverdueDays int             `json:"overdue_days"`
	Penalty     decimal.Decimal `json:"penalty"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
	Tier        string          `json:"tier"`
}

func NewOverdueAssessed(borrowerID string, days int, penalty, totalOwed decimal.Decimal, tier valueobject.EscalationTier) OverdueAssessed {
	return OverdueAssessed{
		BaseEvent:   NewBaseEvent("baantk.borrower.overdue_assessed", borrowerID, "Borrower"),
		OverdueDays: days,
		Penalty:     penalty,
		TotalOwed:   totalOwed,
		Tier:        tier.String(),
	}
}
