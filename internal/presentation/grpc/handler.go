package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/application/usecase"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
	"github.com/Fouxth/BaanTK-sub000/pkg/auth"
)

const birthDateLayout = "2006-01-02"

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// userIDFromContext extracts the caller's user ID from JWT claims.
func userIDFromContext(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID, nil
}

// statusFromError maps the application error taxonomy to gRPC status codes.
// Rejections and lifecycle conflicts are FailedPrecondition: the request was
// well-formed, the record's state forbids it. SystemError keeps only the
// correlation identifier on the wire.
func statusFromError(err error) error {
	var validationErr *apperror.ValidationError
	var systemErr *apperror.SystemError
	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, apperror.ErrNotFound):
		return status.Error(codes.NotFound, "borrower not found")
	case apperror.IsRejection(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &systemErr):
		return status.Errorf(codes.Internal, "internal error (correlation %s)", systemErr.CorrelationID)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that BorrowerServiceHandler implements BorrowerServiceServer.
var _ BorrowerServiceServer = (*BorrowerServiceHandler)(nil)

// BorrowerServiceHandler implements the gRPC BorrowerServiceServer interface.
type BorrowerServiceHandler struct {
	UnimplementedBorrowerServiceServer
	submitApplication *usecase.SubmitApplicationUseCase
	getBorrower       *usecase.GetBorrowerUseCase
	decideApplication *usecase.DecideApplicationUseCase
	signContract      *usecase.SignContractUseCase
	recordPayment     *usecase.RecordPaymentUseCase
	overdueSweep      *usecase.OverdueSweepUseCase
	logger            *slog.Logger
}

// NewBorrowerServiceHandler creates a new gRPC handler.
func NewBorrowerServiceHandler(
	submitApplication *usecase.SubmitApplicationUseCase,
	getBorrower *usecase.GetBorrowerUseCase,
	decideApplication *usecase.DecideApplicationUseCase,
	signContract *usecase.SignContractUseCase,
	recordPayment *usecase.RecordPaymentUseCase,
	overdueSweep *usecase.OverdueSweepUseCase,
	logger *slog.Logger,
) *BorrowerServiceHandler {
	return &BorrowerServiceHandler{
		submitApplication: submitApplication,
		getBorrower:       getBorrower,
		decideApplication: decideApplication,
		signContract:      signContract,
		recordPayment:     recordPayment,
		overdueSweep:      overdueSweep,
		logger:            logger,
	}
}

// Proto-aligned request/response message types.

// SubmitApplicationRequest represents the proto SubmitApplicationRequest message.
type SubmitApplicationRequest struct {
	LineUserID      string `json:"line_user_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	NationalID      string `json:"national_id"`
	BirthDate       string `json:"birth_date"`
	Address         string `json:"address"`
	RequestedAmount string `json:"requested_amount"`
	Frequency       string `json:"frequency"`
}

// FactorScoreMsg represents the proto FactorScore message.
type FactorScoreMsg struct {
	Name     string `json:"name"`
	Delta    int32  `json:"delta"`
	Reason   string `json:"reason"`
	Degraded bool   `json:"degraded,omitempty"`
}

// AssessmentMsg represents the proto CreditAssessment message.
type AssessmentMsg struct {
	Score      int32            `json:"score"`
	Grade      string           `json:"grade"`
	RiskLevel  string           `json:"risk_level"`
	Source     string           `json:"source"`
	Degraded   bool             `json:"degraded"`
	Factors    []FactorScoreMsg `json:"factors"`
	AssessedAt time.Time        `json:"assessed_at"`
}

// TermsMsg represents the proto LoanTerms message.
type TermsMsg struct {
	Principal         string    `json:"principal"`
	AnnualRate        string    `json:"annual_rate"`
	TermMonths        int32     `json:"term_months"`
	Installments      int32     `json:"installments"`
	InstallmentAmount string    `json:"installment_amount"`
	TotalPayable      string    `json:"total_payable"`
	DueDate           time.Time `json:"due_date"`
}

// BorrowerMsg represents the proto Borrower message.
type BorrowerMsg struct {
	ID              string         `json:"id"`
	LineUserID      string         `json:"line_user_id"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	RequestedAmount string         `json:"requested_amount"`
	Frequency       string         `json:"frequency"`
	Status          string         `json:"status"`
	DecisionReason  string         `json:"decision_reason,omitempty"`
	Assessment      *AssessmentMsg `json:"assessment,omitempty"`
	Terms           *TermsMsg      `json:"terms,omitempty"`
	PaidAmount      string         `json:"paid_amount"`
	OverdueDays     int32          `json:"overdue_days"`
	PenaltyAccrued  string         `json:"penalty_accrued"`
	TotalOwed       string         `json:"total_owed"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// SubmitApplicationResponse represents the proto SubmitApplicationResponse message.
type SubmitApplicationResponse struct {
	Borrower *BorrowerMsg `json:"borrower"`
	Decision string       `json:"decision"`
}

// GetBorrowerRequest represents the proto GetBorrowerRequest message.
type GetBorrowerRequest struct {
	ID string `json:"id"`
}

// GetBorrowerResponse represents the proto GetBorrowerResponse message.
type GetBorrowerResponse struct {
	Borrower *BorrowerMsg `json:"borrower"`
}

// DecideApplicationRequest represents the proto DecideApplicationRequest message.
type DecideApplicationRequest struct {
	ID      string `json:"id"`
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// DecideApplicationResponse represents the proto DecideApplicationResponse message.
type DecideApplicationResponse struct {
	Borrower *BorrowerMsg `json:"borrower"`
}

// SignContractRequest represents the proto SignContractRequest message.
type SignContractRequest struct {
	ID string `json:"id"`
}

// SignContractResponse represents the proto SignContractResponse message.
type SignContractResponse struct {
	Borrower *BorrowerMsg `json:"borrower"`
}

// RecordPaymentRequest represents the proto RecordPaymentRequest message.
type RecordPaymentRequest struct {
	ID         string `json:"id"`
	Amount     string `json:"amount"`
	OnSchedule bool   `json:"on_schedule"`
}

// RecordPaymentResponse represents the proto RecordPaymentResponse message.
type RecordPaymentResponse struct {
	Borrower *BorrowerMsg `json:"borrower"`
}

// RunOverdueSweepRequest represents the proto RunOverdueSweepRequest message.
type RunOverdueSweepRequest struct{}

// RunOverdueSweepResponse represents the proto RunOverdueSweepResponse message.
type RunOverdueSweepResponse struct {
	Processed     int32 `json:"processed"`
	Overdue       int32 `json:"overdue"`
	RemindersSent int32 `json:"reminders_sent"`
	Failed        int32 `json:"failed"`
}

// toBorrowerMsg maps the application DTO to the wire message.
func toBorrowerMsg(b dto.BorrowerResponse) *BorrowerMsg {
	msg := &BorrowerMsg{
		ID:              b.ID,
		LineUserID:      b.LineUserID,
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		RequestedAmount: b.RequestedAmount.String(),
		Frequency:       b.Frequency,
		Status:          b.Status,
		DecisionReason:  b.DecisionReason,
		PaidAmount:      b.PaidAmount.String(),
		OverdueDays:     int32(b.OverdueDays),
		PenaltyAccrued:  b.PenaltyAccrued.String(),
		TotalOwed:       b.TotalOwed.String(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if a := b.Assessment; a != nil {
		factors := make([]FactorScoreMsg, len(a.Factors))
		for i, f := range a.Factors {
			factors[i] = FactorScoreMsg{Name: f.Name, Delta: int32(f.Delta), Reason: f.Reason, Degraded: f.Degraded}
		}
		msg.Assessment = &AssessmentMsg{
			Score:      int32(a.Score),
			Grade:      a.Grade,
			RiskLevel:  a.RiskLevel,
			Source:     a.Source,
			Degraded:   a.Degraded,
			Factors:    factors,
			AssessedAt: a.AssessedAt,
		}
	}
	if t := b.Terms; t != nil {
		msg.Terms = &TermsMsg{
			Principal:         t.Principal.String(),
			AnnualRate:        t.AnnualRate.String(),
			TermMonths:        int32(t.TermMonths),
			Installments:      int32(t.Installments),
			InstallmentAmount: t.InstallmentAmount.String(),
			TotalPayable:      t.TotalPayable.String(),
			DueDate:           t.DueDate,
		}
	}
	return msg
}

// SubmitApplication handles a new loan application.
func (h *BorrowerServiceHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid birth_date: %v", err)
	}

	amount, err := decimal.NewFromString(req.RequestedAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid requested_amount: %v", err)
	}

	h.logger.Info("submitting application",
		slog.String("line_user_id", req.LineUserID),
		slog.String("frequency", req.Frequency),
	)

	result, err := h.submitApplication.Execute(ctx, dto.SubmitApplicationRequest{
		LineUserID:      req.LineUserID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		NationalID:      req.NationalID,
		BirthDate:       birthDate,
		Address:         req.Address,
		RequestedAmount: amount,
		Frequency:       req.Frequency,
	})
	if err != nil {
		h.logger.Error("failed to submit application",
			slog.String("line_user_id", req.LineUserID),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &SubmitApplicationResponse{
		Borrower: toBorrowerMsg(result.Borrower),
		Decision: result.Decision,
	}, nil
}

// GetBorrower handles a borrower lookup.
func (h *BorrowerServiceHandler) GetBorrower(ctx context.Context, req *GetBorrowerRequest) (*GetBorrowerResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor); err != nil {
		return nil, err
	}

	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	result, err := h.getBorrower.Execute(ctx, dto.GetBorrowerRequest{BorrowerID: req.ID})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetBorrowerResponse{Borrower: toBorrowerMsg(result)}, nil
}

// DecideApplication handles an admin's manual review decision. The decider is
// taken from the caller's JWT claims, not the request body.
func (h *BorrowerServiceHandler) DecideApplication(ctx context.Context, req *DecideApplicationRequest) (*DecideApplicationResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	decidedBy, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	h.logger.Info("applying manual decision",
		slog.String("borrower_id", req.ID),
		slog.Bool("approve", req.Approve),
		slog.String("decided_by", decidedBy),
	)

	result, err := h.decideApplication.Execute(ctx, dto.DecideApplicationRequest{
		BorrowerID: req.ID,
		Approve:    req.Approve,
		Reason:     req.Reason,
		DecidedBy:  decidedBy,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &DecideApplicationResponse{Borrower: toBorrowerMsg(result)}, nil
}

// SignContract handles a contract-signed notification.
func (h *BorrowerServiceHandler) SignContract(ctx context.Context, req *SignContractRequest) (*SignContractResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}

	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	result, err := h.signContract.Execute(ctx, dto.SignContractRequest{BorrowerID: req.ID})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &SignContractResponse{Borrower: toBorrowerMsg(result)}, nil
}

// RecordPayment handles one confirmed repayment.
func (h *BorrowerServiceHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}

	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	result, err := h.recordPayment.Execute(ctx, dto.RecordPaymentRequest{
		BorrowerID: req.ID,
		Amount:     amount,
		OnSchedule: req.OnSchedule,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &RecordPaymentResponse{Borrower: toBorrowerMsg(result)}, nil
}

// RunOverdueSweep triggers an on-demand overdue sweep.
func (h *BorrowerServiceHandler) RunOverdueSweep(ctx context.Context, req *RunOverdueSweepRequest) (*RunOverdueSweepResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	h.logger.Info("overdue sweep requested")

	result, err := h.overdueSweep.Execute(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &RunOverdueSweepResponse{
		Processed:     int32(result.Processed),
		Overdue:       int32(result.Overdue),
		RemindersSent: int32(result.RemindersSent),
		Failed:        int32(result.Failed),
	}, nil
}
