package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// RecordPaymentUseCase applies one confirmed repayment to an active loan.
type RecordPaymentUseCase struct {
	borrowers port.BorrowerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	borrowers port.BorrowerRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{borrowers: borrowers, publisher: publisher, logger: logger}
}

// Execute records the payment and completes the loan when fully repaid.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.BorrowerResponse, error) {
	now := time.Now().UTC()

	borrower, err := uc.borrowers.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("load borrower: %w", err)
	}

	borrower, err = borrower.RecordPayment(req.Amount, req.OnSchedule, now)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("record payment: %w", err)
	}

	if err := uc.borrowers.Save(ctx, borrower); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("record_payment.save", err)
	}
	if err := uc.publisher.Publish(ctx, borrower.DomainEvents()...); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("record_payment.publish", err)
	}

	if borrower.Status().Equal(valueobject.BorrowerStatusCompleted) {
		uc.logger.Info("loan fully repaid", "borrower_id", borrower.ID())
	}
	return dto.ToBorrowerResponse(borrower), nil
}
