package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/event"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Borrower aggregate root
// ---------------------------------------------------------------------------

// Borrower is the persisted entity representing one loan application and its
// lifecycle. It is an immutable aggregate: every mutation returns a new copy.
// Identity fields, the requested amount and the frequency never change after
// creation; the assessment and the terms are written exactly once.
type Borrower struct {
	id              string
	lineUserID      string
	firstName       string
	lastName        string
	nationalID      string
	birthDate       time.Time
	address         string
	requestedAmount decimal.Decimal
	frequency       valueobject.PaymentFrequency
	assessment      *CreditAssessment
	terms           *LoanTerms
	status          valueobject.BorrowerStatus
	decisionReason  string
	paidAmount      decimal.Decimal
	paidOnTime      int
	paidTotal       int
	overdueDays     int
	penaltyAccrued  decimal.Decimal
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewBorrower creates a borrower record in pending status. The caller is
// expected to have validated the national ID checksum and run the intake
// guard beforehand.
func NewBorrower(
	lineUserID, firstName, lastName, nationalID string,
	birthDate time.Time,
	address string,
	requestedAmount decimal.Decimal,
	frequency valueobject.PaymentFrequency,
	now time.Time,
) (Borrower, error) {
	if lineUserID == "" {
		return Borrower{}, errors.New("line user ID is required")
	}
	if firstName == "" || lastName == "" {
		return Borrower{}, errors.New("first and last name are required")
	}
	if nationalID == "" {
		return Borrower{}, errors.New("national ID is required")
	}
	if birthDate.IsZero() || !birthDate.Before(now) {
		return Borrower{}, errors.New("birth date must be in the past")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return Borrower{}, errors.New("requested amount must be positive")
	}
	if frequency.IsZero() {
		return Borrower{}, errors.New("payment frequency is required")
	}

	id := uuid.New().String()
	b := Borrower{
		id:              id,
		lineUserID:      lineUserID,
		firstName:       firstName,
		lastName:        lastName,
		nationalID:      nationalID,
		birthDate:       birthDate,
		address:         address,
		requestedAmount: requestedAmount,
		frequency:       frequency,
		status:          valueobject.BorrowerStatusPending,
		paidAmount:      decimal.Zero,
		penaltyAccrued:  decimal.Zero,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	b.domainEvents = append(b.domainEvents, event.NewBorrowerRegistered(
		id, lineUserID, requestedAmount, frequency,
	))
	return b, nil
}

// ReconstructBorrower rebuilds a Borrower aggregate from persistence.
func ReconstructBorrower(
	id, lineUserID, firstName, lastName, nationalID string,
	birthDate time.Time,
	address string,
	requestedAmount decimal.Decimal,
	frequency valueobject.PaymentFrequency,
	assessment *CreditAssessment,
	terms *LoanTerms,
	status valueobject.BorrowerStatus,
	decisionReason string,
	paidAmount decimal.Decimal,
	paidOnTime, paidTotal int,
	overdueDays int,
	penaltyAccrued decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) Borrower {
	return Borrower{
		id:              id,
		lineUserID:      lineUserID,
		firstName:       firstName,
		lastName:        lastName,
		nationalID:      nationalID,
		birthDate:       birthDate,
		address:         address,
		requestedAmount: requestedAmount,
		frequency:       frequency,
		assessment:      assessment,
		terms:           terms,
		status:          status,
		decisionReason:  decisionReason,
		paidAmount:      paidAmount,
		paidOnTime:      paidOnTime,
		paidTotal:       paidTotal,
		overdueDays:     overdueDays,
		penaltyAccrued:  penaltyAccrued,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Assess writes the credit assessment and the calculated terms. Both are
// write-once: a resubmission creates a new record, it never patches this one.
func (b Borrower) Assess(assessment CreditAssessment, terms LoanTerms, now time.Time) (Borrower, error) {
	if !b.status.Equal(valueobject.BorrowerStatusPending) {
		return b, valueobject.ErrInvalidStatusTransition
	}
	if b.assessment != nil {
		return b, errors.New("credit assessment already written")
	}
	next := b
	next.assessment = &assessment
	next.terms = &terms
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCreditAssessed(
		b.id, assessment.Score, assessment.Grade, assessment.RiskLevel,
		assessment.Source, assessment.Degraded,
	))
	return next, nil
}

// Approve transitions pending -> approved.
func (b Borrower) Approve(reason, decidedBy string, now time.Time) (Borrower, error) {
	if !b.status.CanTransitionTo(valueobject.BorrowerStatusApproved) {
		return b, valueobject.ErrInvalidStatusTransition
	}
	next := b
	next.status = valueobject.BorrowerStatusApproved
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewBorrowerApproved(b.id, reason, decidedBy))
	return next, nil
}

// Reject transitions pending -> rejected. Rejected is terminal.
func (b Borrower) Reject(reason, decidedBy string, now time.Time) (Borrower, error) {
	if !b.status.CanTransitionTo(valueobject.BorrowerStatusRejected) {
		return b, valueobject.ErrInvalidStatusTransition
	}
	next := b
	next.status = valueobject.BorrowerStatusRejected
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewBorrowerRejected(b.id, reason, decidedBy))
	return next, nil
}

// SignContract transitions approved -> contract_signed.
func (b Borrower) SignContract(now time.Time) (Borrower, error) {
	if !b.status.CanTransitionTo(valueobject.BorrowerStatusContractSigned) {
		return b, valueobject.ErrInvalidStatusTransition
	}
	next := b
	next.status = valueobject.BorrowerStatusContractSigned
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewContractSigned(b.id))
	return next, nil
}

// RecordPayment applies a confirmed payment. When the paid amount covers the
// total owed (terms total plus accrued penalty) the loan completes. Being
// overdue never blocks completion.
func (b Borrower) RecordPayment(amount decimal.Decimal, onSchedule bool, now time.Time) (Borrower, error) {
	if !b.status.Equal(valueobject.BorrowerStatusApproved) && !b.status.Equal(valueobject.BorrowerStatusContractSigned) {
		return b, errors.New("payments apply only to approved or contract-signed loans")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return b, errors.New("payment amount must be positive")
	}
	if b.terms == nil {
		return b, errors.New("loan terms not set")
	}

	next := b
	next.paidAmount = b.paidAmount.Add(amount)
	next.paidTotal = b.paidTotal + 1
	if onSchedule {
		next.paidOnTime = b.paidOnTime + 1
	}
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentRecorded(
		b.id, amount, next.paidAmount, onSchedule,
	))

	if next.paidAmount.GreaterThanOrEqual(next.TotalOwed()) {
		next.status = valueobject.BorrowerStatusCompleted
		next.domainEvents = append(next.domainEvents, event.NewLoanCompleted(b.id))
	}
	return next, nil
}

// MarkOverdue writes the derived overdue metadata computed by the sweep.
// It is not a status transition: the record stays approved/contract_signed.
func (b Borrower) MarkOverdue(days int, penalty decimal.Decimal, tier valueobject.EscalationTier, now time.Time) (Borrower, error) {
	if !b.status.Equal(valueobject.BorrowerStatusApproved) && !b.status.Equal(valueobject.BorrowerStatusContractSigned) {
		return b, errors.New("overdue metadata applies only to active loans")
	}
	if days < 0 {
		return b, errors.New("overdue days cannot be negative")
	}
	next := b
	next.overdueDays = days
	next.penaltyAccrued = penalty
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewOverdueAssessed(
		b.id, days, penalty, next.TotalOwed(), tier,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Derived values
// ---------------------------------------------------------------------------

// TotalOwed is the terms total plus the accrued penalty. Zero when no terms
// have been calculated yet.
func (b Borrower) TotalOwed() decimal.Decimal {
	if b.terms == nil {
		return decimal.Zero
	}
	return b.terms.TotalPayable.Add(b.penaltyAccrued)
}

// IsOverdue reports whether the sweep has recorded at least one day overdue.
func (b Borrower) IsOverdue() bool { return b.overdueDays > 0 }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (b Borrower) ID() string                              { return b.id }
func (b Borrower) LineUserID() string                      { return b.lineUserID }
func (b Borrower) FirstName() string                       { return b.firstName }
func (b Borrower) LastName() string                        { return b.lastName }
func (b Borrower) NationalID() string                      { return b.nationalID }
func (b Borrower) BirthDate() time.Time                    { return b.birthDate }
func (b Borrower) Address() string                         { return b.address }
func (b Borrower) RequestedAmount() decimal.Decimal        { return b.requestedAmount }
func (b Borrower) Frequency() valueobject.PaymentFrequency { return b.frequency }
func (b Borrower) Status() valueobject.BorrowerStatus      { return b.status }
func (b Borrower) DecisionReason() string                  { return b.decisionReason }
func (b Borrower) PaidAmount() decimal.Decimal             { return b.paidAmount }
func (b Borrower) PaidOnTime() int                         { return b.paidOnTime }
func (b Borrower) PaidTotal() int                          { return b.paidTotal }
func (b Borrower) OverdueDays() int                        { return b.overdueDays }
func (b Borrower) PenaltyAccrued() decimal.Decimal         { return b.penaltyAccrued }
func (b Borrower) Version() int                            { return b.version }
func (b Borrower) CreatedAt() time.Time                    { return b.createdAt }
func (b Borrower) UpdatedAt() time.Time                    { return b.updatedAt }
func (b Borrower) DomainEvents() []event.DomainEvent       { return b.domainEvents }

// Assessment returns a copy of the credit assessment, or nil before scoring.
func (b Borrower) Assessment() *CreditAssessment {
	if b.assessment == nil {
		return nil
	}
	a := *b.assessment
	a.Factors = make([]FactorScore, len(b.assessment.Factors))
	copy(a.Factors, b.assessment.Factors)
	return &a
}

// Terms returns a copy of the loan terms, or nil before calculation.
func (b Borrower) Terms() *LoanTerms {
	if b.terms == nil {
		return nil
	}
	t := *b.terms
	return &t
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (b Borrower) ClearEvents() Borrower {
	next := b
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
