package expense

import (
	"context"
	"log/slog"
	"time"

	"expensehub/internal"
	"expensehub/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id int64) (*Expense, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Expense, error)
}

// ManagerDirectory resolves the manager of a user so manager-scoped reads can
// be authorized against the actual reporting line.
type ManagerDirectory interface {
	GetManagerID(ctx context.Context, userID int64) (*int64, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, claims *auth.Claims, dto CreateExpenseDTO) (*Expense, error)
	ListOwn(ctx context.Context, claims *auth.Claims, limit, offset int) ([]*Expense, error)
	ListForUser(ctx context.Context, claims *auth.Claims, targetID int64, limit, offset int) ([]*Expense, error)
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service struct {
	repo      Repository
	directory ManagerDirectory
	policy    *auth.Policy
	logger    *slog.Logger
}

func NewService(repo Repository, directory ManagerDirectory, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		policy:    policy,
		logger:    logger,
	}
}

// Create records an expense for the caller. Receipts are attached in the same
// write; the ownership always comes from claims, never from the payload.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, dto CreateExpenseDTO) (*Expense, error) {
	if !s.policy.Allows(claims, auth.OpExpenseCreate) {
		return nil, internal.ErrNotAuthorized
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	e := &Expense{
		UserID:      claims.UserID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    dto.Category,
		ExpenseDate: dto.ExpenseDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	for _, r := range dto.Receipts {
		e.Receipts = append(e.Receipts, Receipt{Receipt: r})
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create expense", "user_id", claims.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("expense created", "expense_id", e.ID, "user_id", claims.UserID, "amount", e.Amount)
	return e, nil
}

func (s *Service) ListOwn(ctx context.Context, claims *auth.Claims, limit, offset int) ([]*Expense, error) {
	if !s.policy.Allows(claims, auth.OpExpenseList) {
		return nil, internal.ErrNotAuthorized
	}

	limit = clampLimit(limit)
	return s.repo.GetByUserID(ctx, claims.UserID, limit, offset)
}

// ListForUser returns another user's expenses. Allowed for the user
// themselves, Admin/SeniorManagement, or the target's direct manager.
func (s *Service) ListForUser(ctx context.Context, claims *auth.Claims, targetID int64, limit, offset int) ([]*Expense, error) {
	if !auth.IsAuthenticated(claims) {
		return nil, internal.ErrNotAuthorized
	}

	if !auth.IsSelfOrAdminOrSeniorManagement(claims, targetID) {
		if claims.Role != auth.RoleManager {
			return nil, internal.ErrNotAuthorized
		}
		managerID, err := s.directory.GetManagerID(ctx, targetID)
		if err != nil {
			return nil, internal.ErrUserNotFound.WithCause(err)
		}
		if managerID == nil || *managerID != claims.UserID {
			s.logger.Warn("expense list denied: not the target's manager",
				"caller_id", claims.UserID, "target_id", targetID)
			return nil, internal.ErrNotAuthorized
		}
	}

	limit = clampLimit(limit)
	return s.repo.GetByUserID(ctx, targetID, limit, offset)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
