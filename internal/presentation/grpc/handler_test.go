package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Fouxth/BaanTK-sub000/internal/application/usecase"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/event"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/service"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
	"github.com/Fouxth/BaanTK-sub000/pkg/auth"
)

// --- Mock implementations ---

type mockBorrowerRepo struct {
	saveErr  error
	byID     map[string]model.Borrower
	open     []model.Borrower
	byStatus []model.Borrower
}

func (m *mockBorrowerRepo) Save(_ context.Context, b model.Borrower) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.byID == nil {
		m.byID = map[string]model.Borrower{}
	}
	m.byID[b.ID()] = b
	return nil
}

func (m *mockBorrowerRepo) FindByID(_ context.Context, id string) (model.Borrower, error) {
	b, ok := m.byID[id]
	if !ok {
		return model.Borrower{}, fmt.Errorf("load borrower %s: %w", id, apperror.ErrNotFound)
	}
	return b, nil
}

func (m *mockBorrowerRepo) FindOpenByIdentity(_ context.Context, _, _ string) ([]model.Borrower, error) {
	return m.open, nil
}

func (m *mockBorrowerRepo) CountBySubjectCreatedSince(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (m *mockBorrowerRepo) ListByStatus(_ context.Context, _ valueobject.BorrowerStatus) ([]model.Borrower, error) {
	return m.byStatus, nil
}

func (m *mockBorrowerRepo) RepaymentStats(_ context.Context, _ string) (model.RepaymentStats, error) {
	return model.RepaymentStats{}, nil
}

type mockBlacklistRepo struct {
	entries []model.BlacklistEntry
}

func (m *mockBlacklistRepo) Save(_ context.Context, _ model.BlacklistEntry) error { return nil }

func (m *mockBlacklistRepo) FindActiveByIdentity(_ context.Context, _, _ string) ([]model.BlacklistEntry, error) {
	return m.entries, nil
}

type mockReminderLogRepo struct{}

func (m *mockReminderLogRepo) TryInsert(_ context.Context, _ model.ReminderLog) (bool, error) {
	return true, nil
}

type mockPublisher struct{}

func (m *mockPublisher) Publish(_ context.Context, _ ...event.DomainEvent) error { return nil }

type mockVerifier struct {
	result port.VerificationResult
	err    error
}

func (m *mockVerifier) Verify(_ context.Context, _ string) (port.VerificationResult, error) {
	return m.result, m.err
}

type mockDispatcher struct{}

func (m *mockDispatcher) Dispatch(_ context.Context, _ port.ReminderRequest) error { return nil }

// --- Helpers ---

// validNationalID carries a correct mod-11 check digit.
const validNationalID = "1101700203450"

func contextWithRoles(roles ...string) context.Context {
	claims := &auth.Claims{UserID: "admin-1", Roles: roles}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func buildHandlerWithRepo(repo *mockBorrowerRepo) *BorrowerServiceHandler {
	publisher := &mockPublisher{}
	verifier := &mockVerifier{result: port.VerificationResult{Valid: true, Status: "verified"}}
	guard := service.NewIntakeGuard(repo, &mockBlacklistRepo{})
	scorer := service.NewScoringEngine(service.DefaultScoringConfig())
	terms := service.NewTermsCalculator()
	policy := service.NewApprovalPolicy(service.DefaultPolicyConfig())
	logger := testLogger()

	return NewBorrowerServiceHandler(
		usecase.NewSubmitApplicationUseCase(repo, publisher, verifier, guard, scorer, terms, policy, logger),
		usecase.NewGetBorrowerUseCase(repo),
		usecase.NewDecideApplicationUseCase(repo, publisher, logger),
		usecase.NewSignContractUseCase(repo, publisher),
		usecase.NewRecordPaymentUseCase(repo, publisher, logger),
		usecase.NewOverdueSweepUseCase(repo, &mockReminderLogRepo{}, &mockDispatcher{}, publisher, logger, 1),
		logger,
	)
}

func buildTestHandler() *BorrowerServiceHandler {
	return buildHandlerWithRepo(&mockBorrowerRepo{})
}

func pendingBorrower(t *testing.T) model.Borrower {
	t.Helper()
	b, err := model.NewBorrower(
		"line-user-1", "Somchai", "Jaidee", validNationalID,
		time.Date(1996, 3, 15, 0, 0, 0, 0, time.UTC),
		"99 หมู่ 4 ต.บางรักใหญ่ อ.บางบัวทอง จ.นนทบุรี 11110",
		decimal.NewFromInt(5_000), valueobject.FrequencyMonthly,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return b.ClearEvents()
}

func submitRequest() *SubmitApplicationRequest {
	return &SubmitApplicationRequest{
		LineUserID:      "line-user-1",
		FirstName:       "Somchai",
		LastName:        "Jaidee",
		NationalID:      validNationalID,
		BirthDate:       "1996-03-15",
		Address:         "99 หมู่ 4 ต.บางรักใหญ่ อ.บางบัวทอง จ.นนทบุรี 11110",
		RequestedAmount: "5000",
		Frequency:       "monthly",
	}
}

func requireGRPCCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %v", err)
	require.Equal(t, want, st.Code(), "unexpected code, message: %s", st.Message())
}

// --- Tests ---

func TestAuthorization(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.GetBorrower(context.Background(), &GetBorrowerRequest{ID: "b-1"})
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("auditor cannot decide applications", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.DecideApplication(contextWithRoles(auth.RoleAuditor), &DecideApplicationRequest{ID: "b-1", Approve: true})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("operator cannot run the sweep", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.RunOverdueSweep(contextWithRoles(auth.RoleOperator), &RunOverdueSweepRequest{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("auditor can read borrowers", func(t *testing.T) {
		repo := &mockBorrowerRepo{}
		b := pendingBorrower(t)
		require.NoError(t, repo.Save(context.Background(), b))
		h := buildHandlerWithRepo(repo)

		resp, err := h.GetBorrower(contextWithRoles(auth.RoleAuditor), &GetBorrowerRequest{ID: b.ID()})
		require.NoError(t, err)
		assert.Equal(t, b.ID(), resp.Borrower.ID)
	})
}

func TestSubmitApplication(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("malformed birth_date returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		req := submitRequest()
		req.BirthDate = "15/03/1996"
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid birth_date")
	})

	t.Run("malformed amount returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		req := submitRequest()
		req.RequestedAmount = "five thousand"
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid requested_amount")
	})

	t.Run("bad checksum returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		req := submitRequest()
		req.NationalID = "1101700203451"
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("duplicate application returns FailedPrecondition", func(t *testing.T) {
		repo := &mockBorrowerRepo{open: []model.Borrower{pendingBorrower(t)}}
		h := buildHandlerWithRepo(repo)
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), submitRequest())
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})

	t.Run("happy path stays pending for review", func(t *testing.T) {
		h := buildTestHandler()
		resp, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), submitRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Borrower)
		assert.Equal(t, "manual_review", resp.Decision)
		assert.Equal(t, "pending", resp.Borrower.Status)
		require.NotNil(t, resp.Borrower.Assessment)
		assert.Equal(t, "full", resp.Borrower.Assessment.Source)
		require.NotNil(t, resp.Borrower.Terms)
		assert.Equal(t, "5000", resp.Borrower.Terms.Principal)
	})

	t.Run("save failure returns Internal with correlation id", func(t *testing.T) {
		repo := &mockBorrowerRepo{saveErr: fmt.Errorf("db error")}
		h := buildHandlerWithRepo(repo)
		_, err := h.SubmitApplication(contextWithRoles(auth.RoleOperator), submitRequest())
		requireGRPCCode(t, err, codes.Internal)
		assert.Contains(t, err.Error(), "correlation")
	})
}

func TestGetBorrower(t *testing.T) {
	t.Run("empty id returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.GetBorrower(contextWithRoles(auth.RoleAdmin), &GetBorrowerRequest{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown id returns NotFound", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.GetBorrower(contextWithRoles(auth.RoleAdmin), &GetBorrowerRequest{ID: "missing"})
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestDecideApplication(t *testing.T) {
	t.Run("approves and stamps the decider from claims", func(t *testing.T) {
		repo := &mockBorrowerRepo{}
		b := pendingBorrower(t)
		require.NoError(t, repo.Save(context.Background(), b))
		h := buildHandlerWithRepo(repo)

		resp, err := h.DecideApplication(contextWithRoles(auth.RoleAdmin), &DecideApplicationRequest{
			ID:      b.ID(),
			Approve: true,
			Reason:  "documents verified",
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Borrower.Status)
		assert.Equal(t, "documents verified", resp.Borrower.DecisionReason)
	})

	t.Run("deciding a non-pending record returns FailedPrecondition", func(t *testing.T) {
		repo := &mockBorrowerRepo{}
		b := pendingBorrower(t)
		rejected, err := b.Reject("manual", "admin-1", time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), rejected))
		h := buildHandlerWithRepo(repo)

		_, err = h.DecideApplication(contextWithRoles(auth.RoleAdmin), &DecideApplicationRequest{
			ID:      rejected.ID(),
			Approve: true,
			Reason:  "second look",
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestRunOverdueSweep(t *testing.T) {
	t.Run("empty book sweeps cleanly", func(t *testing.T) {
		h := buildTestHandler()
		resp, err := h.RunOverdueSweep(contextWithRoles(auth.RoleAdmin), &RunOverdueSweepRequest{})
		require.NoError(t, err)
		assert.Zero(t, resp.Processed)
		assert.Zero(t, resp.RemindersSent)
		assert.Zero(t, resp.Failed)
	})
}
