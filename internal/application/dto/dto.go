package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data needed to submit a new application.
type SubmitApplicationRequest struct {
	LineUserID      string          `json:"line_user_id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	NationalID      string          `json:"national_id"`
	BirthDate       time.Time       `json:"birth_date"`
	Address         string          `json:"address"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Frequency       string          `json:"frequency"`
}

// DecideApplicationRequest carries an admin's manual review decision.
type DecideApplicationRequest struct {
	BorrowerID string `json:"borrower_id"`
	Approve    bool   `json:"approve"`
	Reason     string `json:"reason"`
	DecidedBy  string `json:"decided_by"`
}

// SignContractRequest identifies the approved record whose contract was signed.
type SignContractRequest struct {
	BorrowerID string `json:"borrower_id"`
}

// RecordPaymentRequest carries one confirmed repayment.
type RecordPaymentRequest struct {
	BorrowerID string          `json:"borrower_id"`
	Amount     decimal.Decimal `json:"amount"`
	OnSchedule bool            `json:"on_schedule"`
}

// GetBorrowerRequest identifies a borrower record to retrieve.
type GetBorrowerRequest struct {
	BorrowerID string `json:"borrower_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// FactorScoreResponse is one scoring factor's audit record.
type FactorScoreResponse struct {
	Name     string `json:"name"`
	Delta    int    `json:"delta"`
	Reason   string `json:"reason"`
	Degraded bool   `json:"degraded,omitempty"`
}

// AssessmentResponse is the external representation of a credit assessment.
type AssessmentResponse struct {
	Score      int                   `json:"score"`
	Grade      string                `json:"grade"`
	RiskLevel  string                `json:"risk_level"`
	Source     string                `json:"source"`
	Degraded   bool                  `json:"degraded"`
	Factors    []FactorScoreResponse `json:"factors"`
	AssessedAt time.Time             `json:"assessed_at"`
}

// TermsResponse is the external representation of the calculated loan terms.
type TermsResponse struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRate        decimal.Decimal `json:"annual_rate"`
	TermMonths        int             `json:"term_months"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	DueDate           time.Time       `json:"due_date"`
}

// BorrowerResponse is the external representation of a borrower record.
type BorrowerResponse struct {
	ID              string              `json:"id"`
	LineUserID      string              `json:"line_user_id"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	RequestedAmount decimal.Decimal     `json:"requested_amount"`
	Frequency       string              `json:"frequency"`
	Status          string              `json:"status"`
	DecisionReason  string              `json:"decision_reason,omitempty"`
	Assessment      *AssessmentResponse `json:"assessment,omitempty"`
	Terms           *TermsResponse      `json:"terms,omitempty"`
	PaidAmount      decimal.Decimal     `json:"paid_amount"`
	OverdueDays     int                 `json:"overdue_days"`
	PenaltyAccrued  decimal.Decimal     `json:"penalty_accrued"`
	TotalOwed       decimal.Decimal     `json:"total_owed"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SweepResponse summarises one overdue sweep run.
type SweepResponse struct {
	Processed     int `json:"processed"`
	Overdue       int `json:"overdue"`
	RemindersSent int `json:"reminders_sent"`
	Failed        int `json:"failed"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

// ToBorrowerResponse maps the aggregate to its external representation.
func ToBorrowerResponse(b model.Borrower) BorrowerResponse {
	resp := BorrowerResponse{
		ID:              b.ID(),
		LineUserID:      b.LineUserID(),
		FirstName:       b.FirstName(),
		LastName:        b.LastName(),
		RequestedAmount: b.RequestedAmount(),
		Frequency:       b.Frequency().String(),
		Status:          b.Status().String(),
		DecisionReason:  b.DecisionReason(),
		PaidAmount:      b.PaidAmount(),
		OverdueDays:     b.OverdueDays(),
		PenaltyAccrued:  b.PenaltyAccrued(),
		TotalOwed:       b.TotalOwed(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
	if a := b.Assessment(); a != nil {
		factors := make([]FactorScoreResponse, len(a.Factors))
		for i, f := range a.Factors {
			factors[i] = FactorScoreResponse{Name: f.Name, Delta: f.Delta, Reason: f.Reason, Degraded: f.Degraded}
		}
		resp.Assessment = &AssessmentResponse{
			Score:      a.Score,
			Grade:      string(a.Grade),
			RiskLevel:  a.RiskLevel.String(),
			Source:     a.Source,
			Degraded:   a.Degraded,
			Factors:    factors,
			AssessedAt: a.AssessedAt,
		}
	}
	if t := b.Terms(); t != nil {
		resp.Terms = &TermsResponse{
			Principal:         t.Principal,
			AnnualRate:        t.AnnualRate,
			TermMonths:        t.TermMonths,
			Installments:      t.Installments,
			InstallmentAmount: t.InstallmentAmount,
			TotalPayable:      t.TotalPayable,
			DueDate:           t.DueDate,
		}
	}
	return resp
}
