package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// SignContractUseCase records that the borrower signed the loan contract.
type SignContractUseCase struct {
	borrowers port.BorrowerRepository
	publisher port.EventPublisher
}

// NewSignContractUseCase wires dependencies.
func NewSignContractUseCase(borrowers port.BorrowerRepository, publisher port.EventPublisher) *SignContractUseCase {
	return &SignContractUseCase{borrowers: borrowers, publisher: publisher}
}

// Execute transitions the approved record to contract_signed.
func (uc *SignContractUseCase) Execute(ctx context.Context, req dto.SignContractRequest) (dto.BorrowerResponse, error) {
	now := time.Now().UTC()

	borrower, err := uc.borrowers.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("load borrower: %w", err)
	}

	borrower, err = borrower.SignContract(now)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("sign contract: %w", err)
	}

	if err := uc.borrowers.Save(ctx, borrower); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("sign_contract.save", err)
	}
	if err := uc.publisher.Publish(ctx, borrower.DomainEvents()...); err != nil {
		return dto.BorrowerResponse{}, apperror.NewSystemError("sign_contract.publish", err)
	}
	return dto.ToBorrowerResponse(borrower), nil
}
