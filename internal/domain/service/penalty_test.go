package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

var penaltyNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAssessPenalty(t *testing.T) {
	principal := decimal.NewFromInt(10_000)
	rate := decimal.NewFromFloat(0.1)

	t.Run("five days overdue", func(t *testing.T) {
		due := penaltyNow.AddDate(0, 0, -5)
		got := AssessPenalty(principal, rate, due, penaltyNow)

		assert.Equal(t, 5, got.OverdueDays)
		assert.True(t, got.BaseAmount.Equal(decimal.NewFromInt(11_000)), "base %s", got.BaseAmount)
		assert.True(t, got.Penalty.Equal(decimal.NewFromInt(2_750)), "penalty %s", got.Penalty)
		assert.True(t, got.TotalOwed.Equal(decimal.NewFromInt(13_750)), "total %s", got.TotalOwed)
		assert.True(t, got.Tier.Equal(valueobject.TierUrgent))
	})

	t.Run("not yet due", func(t *testing.T) {
		due := penaltyNow.AddDate(0, 0, 3)
		got := AssessPenalty(principal, rate, due, penaltyNow)

		assert.Zero(t, got.OverdueDays)
		assert.True(t, got.Penalty.IsZero())
		assert.True(t, got.TotalOwed.Equal(got.BaseAmount))
		assert.True(t, got.Tier.Equal(valueobject.TierNone))
	})

	t.Run("due today counts as zero days", func(t *testing.T) {
		got := AssessPenalty(principal, rate, penaltyNow, penaltyNow)
		assert.Zero(t, got.OverdueDays)
		assert.True(t, got.Penalty.IsZero())
	})

	t.Run("partial days floor to whole days", func(t *testing.T) {
		due := penaltyNow.Add(-36 * time.Hour)
		got := AssessPenalty(principal, rate, due, penaltyNow)
		assert.Equal(t, 1, got.OverdueDays)
	})

	t.Run("penalty grows linearly, never compounds", func(t *testing.T) {
		one := AssessPenalty(principal, rate, penaltyNow.AddDate(0, 0, -1), penaltyNow)
		ten := AssessPenalty(principal, rate, penaltyNow.AddDate(0, 0, -10), penaltyNow)
		assert.True(t, ten.Penalty.Equal(one.Penalty.Mul(decimal.NewFromInt(10))),
			"1d %s 10d %s", one.Penalty, ten.Penalty)
	})

	t.Run("tier boundaries", func(t *testing.T) {
		for _, tc := range []struct {
			days int
			want valueobject.EscalationTier
		}{
			{days: 1, want: valueobject.TierGentle},
			{days: 3, want: valueobject.TierGentle},
			{days: 4, want: valueobject.TierUrgent},
			{days: 7, want: valueobject.TierUrgent},
			{days: 8, want: valueobject.TierFinal},
			{days: 30, want: valueobject.TierFinal},
		} {
			due := penaltyNow.AddDate(0, 0, -tc.days)
			got := AssessPenalty(principal, rate, due, penaltyNow)
			assert.True(t, got.Tier.Equal(tc.want), "days %d: got %s", tc.days, got.Tier.String())
		}
	})
}
