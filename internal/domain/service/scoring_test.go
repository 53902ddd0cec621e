package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

var scoringNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func strongApplicant() Applicant {
	return Applicant{
		FirstName:       "สมชาย",
		LastName:        "ใจดี",
		BirthDate:       scoringNow.AddDate(-30, 0, 0),
		Address:         "99 หมู่ 4 ต.บางรักใหญ่ อ.บางบัวทอง จ.นนทบุรี 11110",
		RequestedAmount: decimal.NewFromInt(5_000),
		Frequency:       valueobject.FrequencyMonthly,
	}
}

func TestScoringEngine_Score(t *testing.T) {
	engine := NewScoringEngine(DefaultScoringConfig())

	t.Run("strong first-time applicant scores 740", func(t *testing.T) {
		// 600 base +50 age +50 amount +30 monthly +0 history +10 quiet week
		// +0 address +0 name
		got := engine.Score(strongApplicant(), ApplicantHistory{}, scoringNow)

		assert.Equal(t, 740, got.Score)
		assert.Equal(t, valueobject.GradeA, got.Grade)
		assert.True(t, got.RiskLevel.Equal(valueobject.RiskLevelLow))
		assert.False(t, got.Degraded)
		require.Len(t, got.Factors, 7)
		for _, f := range got.Factors {
			assert.NotEmpty(t, f.Reason, "factor %s", f.Name)
		}
	})

	t.Run("score stays within floor and ceiling", func(t *testing.T) {
		worst := Applicant{
			FirstName:       "x",
			LastName:        "y",
			BirthDate:       scoringNow.AddDate(-90, 0, 0),
			Address:         "แพ",
			RequestedAmount: decimal.NewFromInt(200_000),
			Frequency:       valueobject.PaymentFrequency{},
		}
		low := engine.Score(worst, ApplicantHistory{ApplicationsLast24h: 5}, scoringNow)
		assert.GreaterOrEqual(t, low.Score, 300)
		assert.True(t, low.RiskLevel.Equal(valueobject.RiskLevelVeryHigh))

		best := strongApplicant()
		history := ApplicantHistory{
			Repayment: model.RepaymentStats{
				CompletedLoans:     3,
				TotalInstallments:  36,
				OnTimeInstallments: 36,
				HasDetail:          true,
			},
		}
		high := engine.Score(best, history, scoringNow)
		assert.LessOrEqual(t, high.Score, 850)
	})

	t.Run("score is monotonic in the on-time ratio", func(t *testing.T) {
		applicant := strongApplicant()
		base := model.RepaymentStats{CompletedLoans: 2, TotalInstallments: 100, HasDetail: true}

		prev := -1
		for _, onTime := range []int{50, 70, 85, 95, 100} {
			stats := base
			stats.OnTimeInstallments = onTime
			got := engine.Score(applicant, ApplicantHistory{Repayment: stats}, scoringNow)
			assert.GreaterOrEqual(t, got.Score, prev, "on-time %d", onTime)
			prev = got.Score
		}
	})

	t.Run("history without installment detail earns a flat bonus", func(t *testing.T) {
		applicant := strongApplicant()
		got := engine.Score(applicant, ApplicantHistory{
			Repayment: model.RepaymentStats{CompletedLoans: 2},
		}, scoringNow)
		assert.Equal(t, 760, got.Score)
	})

	t.Run("factor failure degrades instead of aborting", func(t *testing.T) {
		history := ApplicantHistory{
			RepaymentErr: errors.New("store timeout"),
			TimingErr:    errors.New("store timeout"),
		}
		got := engine.Score(strongApplicant(), history, scoringNow)

		assert.True(t, got.Degraded)
		require.Len(t, got.Factors, 7)
		// 740 scenario minus the +10 quiet-week bonus the failed lookup
		// would have granted.
		assert.Equal(t, 730, got.Score)

		degradedCount := 0
		for _, f := range got.Factors {
			if f.Degraded {
				degradedCount++
				assert.Zero(t, f.Delta)
			}
		}
		assert.Equal(t, 2, degradedCount)
	})

	t.Run("rapid resubmission is penalised", func(t *testing.T) {
		quiet := engine.Score(strongApplicant(), ApplicantHistory{ApplicationsLast7d: 1}, scoringNow)
		burst := engine.Score(strongApplicant(), ApplicantHistory{ApplicationsLast24h: 3, ApplicationsLast7d: 3}, scoringNow)
		assert.Equal(t, quiet.Score-30, burst.Score)
	})

	t.Run("placeholder names are penalised", func(t *testing.T) {
		applicant := strongApplicant()
		applicant.FirstName = "Test"
		got := engine.Score(applicant, ApplicantHistory{}, scoringNow)
		assert.Equal(t, 710, got.Score)
	})

	t.Run("urban address marker adds a bonus", func(t *testing.T) {
		applicant := strongApplicant()
		applicant.Address = "889 อาคารไทยซีซี ถนนสาทรใต้ กรุงเทพฯ 10120"
		got := engine.Score(applicant, ApplicantHistory{}, scoringNow)
		assert.Equal(t, 760, got.Score)
	})
}
