package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan Terms Calculator
// ---------------------------------------------------------------------------

var (
	twelve  = decimal.NewFromInt(12)
	percent = decimal.NewFromInt(100)
)

// TermsCalculator derives the repayment terms for an application. It is pure:
// identical inputs always produce identical terms.
type TermsCalculator struct{}

// NewTermsCalculator creates the calculator.
func NewTermsCalculator() *TermsCalculator {
	return &TermsCalculator{}
}

// Calculate derives the loan terms from the principal, the repayment
// frequency and the credit score. Pass hasScore=false to use the
// frequency-based fallback rates instead of the score tiers.
func (c *TermsCalculator) Calculate(principal decimal.Decimal, frequency valueobject.PaymentFrequency, score int, hasScore bool, applicationDate time.Time) model.LoanTerms {
	rate := c.annualRate(frequency, score, hasScore)
	termMonths := c.termMonths(frequency)
	installments := c.installments(frequency, termMonths)

	// totalInterest = principal * rate * (termMonths / 12)
	interest := principal.Mul(rate).Mul(decimal.NewFromInt(int64(termMonths))).Div(twelve)
	total := principal.Add(interest)

	// Round each installment up so the schedule never shorts the lender.
	installmentAmount := total.Div(decimal.NewFromInt(int64(installments))).Ceil()

	return model.LoanTerms{
		Principal:         principal,
		AnnualRate:        rate,
		TermMonths:        termMonths,
		Installments:      installments,
		InstallmentAmount: installmentAmount,
		TotalPayable:      total,
		DueDate:           applicationDate.AddDate(0, termMonths, 0),
	}
}

// annualRate selects the interest rate. Scored applicants get the tiered
// rates; otherwise the frequency-based fallback applies.
func (c *TermsCalculator) annualRate(frequency valueobject.PaymentFrequency, score int, hasScore bool) decimal.Decimal {
	if hasScore {
		switch {
		case score >= 750:
			return ratePercent(8)
		case score >= 650:
			return ratePercent(9)
		case score >= 550:
			return ratePercent(12)
		default:
			return ratePercent(15)
		}
	}
	switch frequency {
	case valueobject.FrequencyDaily:
		return ratePercent(20)
	case valueobject.FrequencyWeekly:
		return ratePercent(15)
	default:
		return ratePercent(10)
	}
}

func (c *TermsCalculator) termMonths(frequency valueobject.PaymentFrequency) int {
	switch frequency {
	case valueobject.FrequencyDaily:
		return 1
	case valueobject.FrequencyWeekly:
		return 3
	case valueobject.FrequencyMonthly:
		return 12
	default:
		return 6
	}
}

// installments is the number of payments over the term. Weekly terms run
// three months at four payments per month.
func (c *TermsCalculator) installments(frequency valueobject.PaymentFrequency, termMonths int) int {
	switch frequency {
	case valueobject.FrequencyDaily:
		return 30
	case valueobject.FrequencyWeekly:
		return 12
	default:
		return termMonths
	}
}

func ratePercent(p int64) decimal.Decimal {
	return decimal.NewFromInt(p).Div(percent)
}
