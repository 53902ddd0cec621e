package usecase

import (
	"context"
	"fmt"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// GetBorrowerUseCase retrieves one borrower record.
type GetBorrowerUseCase struct {
	borrowers port.BorrowerRepository
}

// NewGetBorrowerUseCase wires dependencies.
func NewGetBorrowerUseCase(borrowers port.BorrowerRepository) *GetBorrowerUseCase {
	return &GetBorrowerUseCase{borrowers: borrowers}
}

// Execute looks up the record by its identifier.
func (uc *GetBorrowerUseCase) Execute(ctx context.Context, req dto.GetBorrowerRequest) (dto.BorrowerResponse, error) {
	borrower, err := uc.borrowers.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("load borrower: %w", err)
	}
	return dto.ToBorrowerResponse(borrower), nil
}
