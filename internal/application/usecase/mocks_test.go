package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/event"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockBorrowerRepository struct {
	saveFunc       func(ctx context.Context, b model.Borrower) error
	findByIDFunc   func(ctx context.Context, id string) (model.Borrower, error)
	findOpenFunc   func(ctx context.Context, nationalID, lineUserID string) ([]model.Borrower, error)
	countSinceFunc func(ctx context.Context, lineUserID string, since time.Time) (int, error)
	listFunc       func(ctx context.Context, status valueobject.BorrowerStatus) ([]model.Borrower, error)
	statsFunc      func(ctx context.Context, nationalID string) (model.RepaymentStats, error)
	saved          []model.Borrower
}

func (m *mockBorrowerRepository) Save(ctx context.Context, b model.Borrower) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, b)
	}
	m.saved = append(m.saved, b)
	return nil
}

func (m *mockBorrowerRepository) FindByID(ctx context.Context, id string) (model.Borrower, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Borrower{}, apperror.ErrNotFound
}

func (m *mockBorrowerRepository) FindOpenByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.Borrower, error) {
	if m.findOpenFunc != nil {
		return m.findOpenFunc(ctx, nationalID, lineUserID)
	}
	return nil, nil
}

func (m *mockBorrowerRepository) CountBySubjectCreatedSince(ctx context.Context, lineUserID string, since time.Time) (int, error) {
	if m.countSinceFunc != nil {
		return m.countSinceFunc(ctx, lineUserID, since)
	}
	return 0, nil
}

func (m *mockBorrowerRepository) ListByStatus(ctx context.Context, status valueobject.BorrowerStatus) ([]model.Borrower, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockBorrowerRepository) RepaymentStats(ctx context.Context, nationalID string) (model.RepaymentStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, nationalID)
	}
	return model.RepaymentStats{}, nil
}

type mockBlacklistRepository struct {
	findActiveFunc func(ctx context.Context, nationalID, lineUserID string) ([]model.BlacklistEntry, error)
}

func (m *mockBlacklistRepository) Save(context.Context, model.BlacklistEntry) error { return nil }

func (m *mockBlacklistRepository) FindActiveByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.BlacklistEntry, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, nationalID, lineUserID)
	}
	return nil, nil
}

type mockReminderLogRepository struct {
	tryInsertFunc func(ctx context.Context, entry model.ReminderLog) (bool, error)
	inserted      []model.ReminderLog
}

func (m *mockReminderLogRepository) TryInsert(ctx context.Context, entry model.ReminderLog) (bool, error) {
	if m.tryInsertFunc != nil {
		return m.tryInsertFunc(ctx, entry)
	}
	m.inserted = append(m.inserted, entry)
	return true, nil
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, events ...event.DomainEvent) error
	published   []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockIdentityVerifier struct {
	verifyFunc func(ctx context.Context, nationalID string) (port.VerificationResult, error)
}

func (m *mockIdentityVerifier) Verify(ctx context.Context, nationalID string) (port.VerificationResult, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, nationalID)
	}
	return port.VerificationResult{Valid: true, Status: "verified"}, nil
}

type mockReminderDispatcher struct {
	dispatchFunc func(ctx context.Context, req port.ReminderRequest) error
	dispatched   []port.ReminderRequest
}

func (m *mockReminderDispatcher) Dispatch(ctx context.Context, req port.ReminderRequest) error {
	if m.dispatchFunc != nil {
		return m.dispatchFunc(ctx, req)
	}
	m.dispatched = append(m.dispatched, req)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustFrequency(t *testing.T, s string) valueobject.PaymentFrequency {
	t.Helper()
	f, err := valueobject.NewPaymentFrequency(s)
	require.NoError(t, err)
	return f
}
