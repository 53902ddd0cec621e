package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

type stubBorrowerRepo struct {
	open      []model.Borrower
	openErr   error
	recent    int
	recentErr error
}

func (s *stubBorrowerRepo) Save(context.Context, model.Borrower) error { return nil }
func (s *stubBorrowerRepo) FindByID(context.Context, string) (model.Borrower, error) {
	return model.Borrower{}, apperror.ErrNotFound
}
func (s *stubBorrowerRepo) FindOpenByIdentity(context.Context, string, string) ([]model.Borrower, error) {
	return s.open, s.openErr
}
func (s *stubBorrowerRepo) CountBySubjectCreatedSince(context.Context, string, time.Time) (int, error) {
	return s.recent, s.recentErr
}
func (s *stubBorrowerRepo) ListByStatus(context.Context, valueobject.BorrowerStatus) ([]model.Borrower, error) {
	return nil, nil
}
func (s *stubBorrowerRepo) RepaymentStats(context.Context, string) (model.RepaymentStats, error) {
	return model.RepaymentStats{}, nil
}

type stubBlacklistRepo struct {
	active    []model.BlacklistEntry
	activeErr error
}

func (s *stubBlacklistRepo) Save(context.Context, model.BlacklistEntry) error { return nil }
func (s *stubBlacklistRepo) FindActiveByIdentity(context.Context, string, string) ([]model.BlacklistEntry, error) {
	return s.active, s.activeErr
}

func pendingBorrower(t *testing.T) model.Borrower {
	t.Helper()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b, err := model.NewBorrower(
		"U1234567890", "สมชาย", "ใจดี", "1101700203451",
		now.AddDate(-30, 0, 0), "99 หมู่ 4 ต.บางรักใหญ่ จ.นนทบุรี",
		decimal.NewFromInt(5_000), valueobject.FrequencyMonthly, now,
	)
	require.NoError(t, err)
	return b
}

func TestIntakeGuard_Check(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("clean identity passes", func(t *testing.T) {
		guard := NewIntakeGuard(&stubBorrowerRepo{}, &stubBlacklistRepo{})
		assert.NoError(t, guard.Check(ctx, "1101700203451", "U1234567890", now))
	})

	t.Run("active blacklist entry rejects", func(t *testing.T) {
		entry, err := model.NewBlacklistEntry("1101700203451", "", "fraud confirmed", time.Now())
		require.NoError(t, err)

		guard := NewIntakeGuard(&stubBorrowerRepo{}, &stubBlacklistRepo{active: []model.BlacklistEntry{entry}})
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)

		require.Error(t, got)
		assert.ErrorIs(t, got, apperror.ErrBlacklisted)
		assert.Contains(t, got.Error(), "fraud confirmed")
		assert.True(t, apperror.IsRejection(got))
	})

	t.Run("open application rejects as duplicate", func(t *testing.T) {
		open := pendingBorrower(t)
		guard := NewIntakeGuard(&stubBorrowerRepo{open: []model.Borrower{open}}, &stubBlacklistRepo{})
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)

		require.Error(t, got)
		assert.ErrorIs(t, got, apperror.ErrDuplicateApplication)
		assert.Contains(t, got.Error(), open.ID())
	})

	t.Run("submission inside the 24h cool-down rejects as duplicate", func(t *testing.T) {
		guard := NewIntakeGuard(&stubBorrowerRepo{recent: 1}, &stubBlacklistRepo{})
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)

		require.Error(t, got)
		assert.ErrorIs(t, got, apperror.ErrDuplicateApplication)
		assert.True(t, apperror.IsRejection(got))
	})

	t.Run("cool-down lookup failure surfaces as system error", func(t *testing.T) {
		guard := NewIntakeGuard(&stubBorrowerRepo{recentErr: errors.New("connection refused")}, &stubBlacklistRepo{})
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)

		require.Error(t, got)
		var sysErr *apperror.SystemError
		require.ErrorAs(t, got, &sysErr)
		assert.Equal(t, "guard.cooldown_lookup", sysErr.Op)
	})

	t.Run("blacklist wins over duplicate", func(t *testing.T) {
		entry, err := model.NewBlacklistEntry("", "U1234567890", "charge-off", time.Now())
		require.NoError(t, err)

		guard := NewIntakeGuard(
			&stubBorrowerRepo{open: []model.Borrower{pendingBorrower(t)}},
			&stubBlacklistRepo{active: []model.BlacklistEntry{entry}},
		)
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)
		assert.ErrorIs(t, got, apperror.ErrBlacklisted)
	})

	t.Run("store failure surfaces as system error", func(t *testing.T) {
		guard := NewIntakeGuard(
			&stubBorrowerRepo{openErr: errors.New("connection refused")},
			&stubBlacklistRepo{},
		)
		got := guard.Check(ctx, "1101700203451", "U1234567890", now)

		require.Error(t, got)
		var sysErr *apperror.SystemError
		require.ErrorAs(t, got, &sysErr)
		assert.Equal(t, "guard.duplicate_lookup", sysErr.Op)
		assert.False(t, apperror.IsRejection(got))
	})
}
