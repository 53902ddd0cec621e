package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Overdue penalty calculation
// ---------------------------------------------------------------------------

// penaltyDailyRate is the simple (non-compounding) daily penalty rate applied
// to the base amount once a loan is past due.
var penaltyDailyRate = decimal.NewFromFloat(0.05)

// PenaltyResult is the outcome of assessing one record for overdue penalty.
type PenaltyResult struct {
	OverdueDays int
	BaseAmount  decimal.Decimal
	Penalty     decimal.Decimal
	TotalOwed   decimal.Decimal
	Tier        valueobject.EscalationTier
}

// AssessPenalty computes the overdue state of a loan at the given instant.
//
//	baseAmount = principal + principal*annualRate
//	penalty    = baseAmount * 0.05 * overdueDays
//
// The penalty is simple daily, never compounding. A loan not yet due carries
// zero penalty and tier none.
func AssessPenalty(principal, annualRate decimal.Decimal, dueDate, now time.Time) PenaltyResult {
	days := overdueDays(dueDate, now)
	base := principal.Add(principal.Mul(annualRate))

	if days == 0 {
		return PenaltyResult{
			OverdueDays: 0,
			BaseAmount:  base,
			Penalty:     decimal.Zero,
			TotalOwed:   base,
			Tier:        valueobject.TierNone,
		}
	}

	penalty := base.Mul(penaltyDailyRate).Mul(decimal.NewFromInt(int64(days)))
	return PenaltyResult{
		OverdueDays: days,
		BaseAmount:  base,
		Penalty:     penalty,
		TotalOwed:   base.Add(penalty),
		Tier:        valueobject.TierFromOverdueDays(days),
	}
}

// overdueDays is the number of whole days elapsed past the due date,
// floored at zero.
func overdueDays(dueDate, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	return int(now.Sub(dueDate).Hours() / 24)
}
