package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/service"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// defaultSweepWorkers bounds the fan-out of the overdue sweep.
const defaultSweepWorkers = 8

// OverdueSweepUseCase is the scheduled penalty and escalation engine. It
// assesses every active loan, writes the derived overdue metadata and
// dispatches at most one reminder per tier per calendar day per borrower.
// Records fail individually: one bad record never aborts the batch.
type OverdueSweepUseCase struct {
	borrowers  port.BorrowerRepository
	reminders  port.ReminderLogRepository
	dispatcher port.ReminderDispatcher
	publisher  port.EventPublisher
	logger     *slog.Logger
	workers    int
}

// NewOverdueSweepUseCase wires dependencies. workers <= 0 selects the default
// fan-out bound.
func NewOverdueSweepUseCase(
	borrowers port.BorrowerRepository,
	reminders port.ReminderLogRepository,
	dispatcher port.ReminderDispatcher,
	publisher port.EventPublisher,
	logger *slog.Logger,
	workers int,
) *OverdueSweepUseCase {
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	return &OverdueSweepUseCase{
		borrowers:  borrowers,
		reminders:  reminders,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		workers:    workers,
	}
}

// Execute runs one sweep over all active loans. Safe to re-run within the
// same day: the reminder log suppresses duplicate dispatches and the penalty
// is recomputed from the due date, never accumulated.
func (uc *OverdueSweepUseCase) Execute(ctx context.Context) (dto.SweepResponse, error) {
	now := time.Now().UTC()

	var active []model.Borrower
	for _, status := range []valueobject.BorrowerStatus{
		valueobject.BorrowerStatusApproved,
		valueobject.BorrowerStatusContractSigned,
	} {
		batch, err := uc.borrowers.ListByStatus(ctx, status)
		if err != nil {
			return dto.SweepResponse{}, err
		}
		active = append(active, batch...)
	}

	var (
		mu   sync.Mutex
		resp dto.SweepResponse
		wg   sync.WaitGroup
		sem  = make(chan struct{}, uc.workers)
	)

	for _, borrower := range active {
		wg.Add(1)
		sem <- struct{}{}
		go func(b model.Borrower) {
			defer wg.Done()
			defer func() { <-sem }()

			overdue, reminded, err := uc.sweepOne(ctx, b, now)

			mu.Lock()
			defer mu.Unlock()
			resp.Processed++
			if err != nil {
				resp.Failed++
				uc.logger.Error("sweep failed for record",
					"borrower_id", b.ID(), "error", err)
				return
			}
			if overdue {
				resp.Overdue++
			}
			if reminded {
				resp.RemindersSent++
			}
		}(borrower)
	}
	wg.Wait()

	uc.logger.Info("overdue sweep finished",
		"processed", resp.Processed,
		"overdue", resp.Overdue,
		"reminders_sent", resp.RemindersSent,
		"failed", resp.Failed)
	return resp, nil
}

// sweepOne assesses a single record. It reports whether the record is overdue
// and whether a reminder was dispatched.
func (uc *OverdueSweepUseCase) sweepOne(ctx context.Context, b model.Borrower, now time.Time) (overdue, reminded bool, err error) {
	terms := b.Terms()
	if terms == nil {
		return false, false, errors.New("record has no loan terms")
	}
	if terms.DueDate.IsZero() {
		return false, false, errors.New("record has no due date")
	}

	result := service.AssessPenalty(terms.Principal, terms.AnnualRate, terms.DueDate, now)
	if result.OverdueDays == 0 && !b.IsOverdue() {
		return false, false, nil
	}

	b, err = b.MarkOverdue(result.OverdueDays, result.Penalty, result.Tier, now)
	if err != nil {
		return false, false, err
	}
	if err := uc.borrowers.Save(ctx, b); err != nil {
		return false, false, err
	}
	if err := uc.publisher.Publish(ctx, b.DomainEvents()...); err != nil {
		return false, false, err
	}
	if result.OverdueDays == 0 {
		return false, false, nil
	}

	// Idempotent dispatch: the conditional insert on (borrower, tier, day)
	// wins exactly once however often the sweep reruns.
	entry := model.NewReminderLog(b.ID(), result.Tier, now, now)
	inserted, err := uc.reminders.TryInsert(ctx, entry)
	if err != nil {
		return true, false, err
	}
	if !inserted {
		return true, false, nil
	}

	if err := uc.dispatcher.Dispatch(ctx, port.ReminderRequest{
		BorrowerID:  b.ID(),
		Tier:        result.Tier,
		TotalOwed:   result.TotalOwed,
		OverdueDays: result.OverdueDays,
	}); err != nil {
		return true, false, err
	}
	return true, true, nil
}
