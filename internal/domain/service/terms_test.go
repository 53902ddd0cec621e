package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

var termsNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestTermsCalculator_Calculate(t *testing.T) {
	calc := NewTermsCalculator()

	t.Run("monthly loan with top-tier score", func(t *testing.T) {
		got := calc.Calculate(decimal.NewFromInt(10_000), valueobject.FrequencyMonthly, 760, true, termsNow)

		// 10000 * 0.08 * 12/12 = 800 interest
		assert.True(t, got.AnnualRate.Equal(decimal.NewFromFloat(0.08)), "rate %s", got.AnnualRate)
		assert.Equal(t, 12, got.TermMonths)
		assert.Equal(t, 12, got.Installments)
		assert.True(t, got.TotalPayable.Equal(decimal.NewFromInt(10_800)), "total %s", got.TotalPayable)
		assert.True(t, got.InstallmentAmount.Equal(decimal.NewFromInt(900)), "installment %s", got.InstallmentAmount)
		assert.Equal(t, termsNow.AddDate(0, 12, 0), got.DueDate)
	})

	t.Run("score tiers select the rate", func(t *testing.T) {
		for _, tc := range []struct {
			score int
			want  float64
		}{
			{score: 800, want: 0.08},
			{score: 750, want: 0.08},
			{score: 700, want: 0.09},
			{score: 650, want: 0.09},
			{score: 600, want: 0.12},
			{score: 550, want: 0.12},
			{score: 500, want: 0.15},
			{score: 300, want: 0.15},
		} {
			got := calc.Calculate(decimal.NewFromInt(10_000), valueobject.FrequencyMonthly, tc.score, true, termsNow)
			assert.True(t, got.AnnualRate.Equal(decimal.NewFromFloat(tc.want)),
				"score %d: rate %s", tc.score, got.AnnualRate)
		}
	})

	t.Run("fallback rates apply without a score", func(t *testing.T) {
		daily := calc.Calculate(decimal.NewFromInt(3_000), valueobject.FrequencyDaily, 0, false, termsNow)
		assert.True(t, daily.AnnualRate.Equal(decimal.NewFromFloat(0.20)))
		assert.Equal(t, 1, daily.TermMonths)
		assert.Equal(t, 30, daily.Installments)

		weekly := calc.Calculate(decimal.NewFromInt(3_000), valueobject.FrequencyWeekly, 0, false, termsNow)
		assert.True(t, weekly.AnnualRate.Equal(decimal.NewFromFloat(0.15)))
		assert.Equal(t, 3, weekly.TermMonths)
		assert.Equal(t, 12, weekly.Installments)

		monthly := calc.Calculate(decimal.NewFromInt(3_000), valueobject.FrequencyMonthly, 0, false, termsNow)
		assert.True(t, monthly.AnnualRate.Equal(decimal.NewFromFloat(0.10)))
		assert.Equal(t, 12, monthly.TermMonths)
		assert.Equal(t, 12, monthly.Installments)
	})

	t.Run("schedule never shorts the lender", func(t *testing.T) {
		amounts := []int64{500, 3_333, 9_999, 10_000, 25_007, 49_999}
		frequencies := []valueobject.PaymentFrequency{
			valueobject.FrequencyDaily, valueobject.FrequencyWeekly, valueobject.FrequencyMonthly,
		}
		scores := []int{320, 560, 660, 780}

		for _, amt := range amounts {
			for _, freq := range frequencies {
				for _, score := range scores {
					got := calc.Calculate(decimal.NewFromInt(amt), freq, score, true, termsNow)
					scheduled := got.InstallmentAmount.Mul(decimal.NewFromInt(int64(got.Installments)))
					assert.True(t, scheduled.GreaterThanOrEqual(got.TotalPayable),
						"amount %d freq %s score %d: %s < %s",
						amt, freq.String(), score, scheduled, got.TotalPayable)
				}
			}
		}
	})

	t.Run("identical inputs produce identical terms", func(t *testing.T) {
		a := calc.Calculate(decimal.NewFromInt(7_777), valueobject.FrequencyWeekly, 612, true, termsNow)
		b := calc.Calculate(decimal.NewFromInt(7_777), valueobject.FrequencyWeekly, 612, true, termsNow)

		require.True(t, a.Principal.Equal(b.Principal))
		require.True(t, a.AnnualRate.Equal(b.AnnualRate))
		require.Equal(t, a.TermMonths, b.TermMonths)
		require.Equal(t, a.Installments, b.Installments)
		require.True(t, a.InstallmentAmount.Equal(b.InstallmentAmount))
		require.True(t, a.TotalPayable.Equal(b.TotalPayable))
		require.Equal(t, a.DueDate, b.DueDate)
	})
}
