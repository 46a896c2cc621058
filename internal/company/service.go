package company

import (
	"context"
	"log/slog"

	"expensehub/internal"
	"expensehub/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
	GetConfig(ctx context.Context, companyID int64) (*Config, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, claims *auth.Claims, dto CreateCompanyDTO) (*Company, error)
	List(ctx context.Context, claims *auth.Claims) ([]*Company, error)
	GetConfig(ctx context.Context, claims *auth.Claims, companyID int64) (*Config, error)
}

type Service struct {
	repo   Repository
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// Create registers a new company. Admin only.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, dto CreateCompanyDTO) (*Company, error) {
	if !s.policy.Allows(claims, auth.OpCompanyCreate) {
		return nil, internal.ErrNotAuthorized
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	c := &Company{Name: dto.Name}
	if dto.Currency != "" || dto.ExpenseLimit > 0 {
		c.Config = &Config{
			Currency:       dto.Currency,
			ExpenseLimit:   dto.ExpenseLimit,
			ReceiptsNeeded: dto.ReceiptsNeeded,
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create company", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("company created", "company_id", c.ID, "created_by", claims.UserID)
	return c, nil
}

func (s *Service) List(ctx context.Context, claims *auth.Claims) ([]*Company, error) {
	if !s.policy.Allows(claims, auth.OpCompanyList) {
		return nil, internal.ErrNotAuthorized
	}
	return s.repo.List(ctx)
}

// GetConfig returns a company's expense configuration. Members may only read
// their own company's config; Admin may read any.
func (s *Service) GetConfig(ctx context.Context, claims *auth.Claims, companyID int64) (*Config, error) {
	scope := s.policy.Scope(claims, auth.OpCompanyConfig)
	switch scope {
	case auth.ScopeAll:
	case auth.ScopeCompany:
		if claims.CompanyID == nil || *claims.CompanyID != companyID {
			return nil, internal.ErrNotAuthorized
		}
	default:
		return nil, internal.ErrNotAuthorized
	}

	cfg, err := s.repo.GetConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
