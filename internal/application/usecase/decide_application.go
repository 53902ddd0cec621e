package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// DecideApplicationUseCase applies an admin's manual review decision to a
// pending record.
type DecideApplicationUseCase struct {
	borrowers port.BorrowerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewDecideApplicationUseCase wires dependencies.
func NewDecideApplicationUseCase(
	borrowers port.BorrowerRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *DecideApplicationUseCase {
	return &DecideApplicationUseCase{borrowers: borrowers, publisher: publisher, logger: logger}
}

// Execute approves or rejects the pending record.
func (uc *DecideApplicationUseCase) Execute(
	ctx context.Context,
	req dto.DecideApplicationRequest,
) (dto.BorrowerResponse, error) {
	now := time.Now().UTC()

	borrower, err := uc.borrowers.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("load borrower: %w", err)
	}

	if req.Approve {
		borrower, err = borrower.Approve(req.Reason, req.DecidedBy, now)
	} else {
		borrower, err = borrower.Reject(req.Reason, req.DecidedBy, now)
	}
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := uc.borrowers.Save(ctx, borrower); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("decide_application.save", err)
	}
	if err := uc.publisher.Publish(ctx, borrower.DomainEvents()...); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("decide_application.publish", err)
	}

	uc.logger.Info("manual decision applied",
		"borrower_id", borrower.ID(),
		"approved", req.Approve,
		"decided_by", req.DecidedBy)

	return dto.ToBorrowerResponse(borrower), nil
}
