package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// AssessmentSource records how the applicant's identity was verified before
// scoring: the full external check, or the local checksum-only fallback.
const (
	AssessmentSourceFull             = "full"
	AssessmentSourceChecksumFallback = "checksum_fallback"
)

// FactorScore is one factor's contribution to a credit assessment, kept for
// audit. Degraded marks a factor that could not be computed and contributed
// a zero delta instead of aborting the assessment.
type FactorScore struct {
	Name     string `json:"name"`
	Delta    int    `json:"delta"`
	Reason   string `json:"reason"`
	Degraded bool   `json:"degraded"`
}

// CreditAssessment is the scored, graded, risk-classified output of the
// scoring engine. Immutable once computed: a resubmission creates a new
// assessment on a new borrower record.
type CreditAssessment struct {
	Score      int
	Grade      valueobject.Grade
	RiskLevel  valueobject.RiskLevel
	Source     string
	Degraded   bool
	Factors    []FactorScore
	AssessedAt time.Time
}

// LoanTerms is an immutable value object holding the calculated repayment
// terms for one borrower record.
type LoanTerms struct {
	Principal         decimal.Decimal
	AnnualRate        decimal.Decimal
	TermMonths        int
	Installments      int
	InstallmentAmount decimal.Decimal
	TotalPayable      decimal.Decimal
	DueDate           time.Time
}

// RepaymentStats summarises an applicant's prior loans for the scoring engine.
type RepaymentStats struct {
	CompletedLoans     int
	TotalInstallments  int
	OnTimeInstallments int
	// HasDetail is false when completed loans exist but no per-installment
	// history was recorded for them.
	HasDetail bool
}
