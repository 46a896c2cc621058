package user

import (
	"context"
	"log/slog"

	"expensehub/internal"
	"expensehub/internal/auth"
	"expensehub/internal/core/events"
)

type ListFilter struct {
	Role      auth.Role
	CompanyID *int64
	ManagerID *int64
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetProfile(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, claims *auth.Claims, dto CreateUserDTO) (*User, error)
	Get(ctx context.Context, claims *auth.Claims, id int64) (*User, error)
	List(ctx context.Context, claims *auth.Claims) ([]*User, error)
	Me(ctx context.Context, claims *auth.Claims) (*User, error)
	DirectReports(ctx context.Context, claims *auth.Claims) ([]*User, error)
	Update(ctx context.Context, claims *auth.Claims, id int64, dto UpdateUserDTO) (*User, error)
	Delete(ctx context.Context, claims *auth.Claims, id int64) error
}

// Service guards every directory operation with exactly one policy check
// before any storage access. A denied call performs no storage operation.
type Service struct {
	repo       Repository
	policy     *auth.Policy
	bus        *events.EventBus
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, policy *auth.Policy, bus *events.EventBus, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		policy:     policy,
		bus:        bus,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Create registers a new user. When the creator is SeniorManagement the new
// user is forced into the creator's company, ignoring any supplied company
// id; an Admin's supplied company id is honored verbatim.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, dto CreateUserDTO) (*User, error) {
	if !auth.IsAdminOrSeniorManagement(claims) {
		return nil, internal.ErrNotAuthorized
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	companyID := dto.CompanyID
	if s.policy.Scope(claims, auth.OpUserCreate) == auth.ScopeCompany {
		companyID = claims.CompanyID
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		JobTitle:     dto.JobTitle,
		Department:   dto.Department,
		CompanyID:    companyID,
		ManagerID:    dto.ManagerID,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	s.bus.Publish(ctx, events.NewUserCreatedEvent(u.ID, claims.UserID, string(u.Role)))
	s.logger.Info("user created", "user_id", u.ID, "created_by", claims.UserID)

	return u, nil
}

// Get returns a single user by id. Admin/SeniorManagement only.
func (s *Service) Get(ctx context.Context, claims *auth.Claims, id int64) (*User, error) {
	if !auth.IsAdminOrSeniorManagement(claims) {
		return nil, internal.ErrNotAuthorized
	}
	return s.repo.GetByID(ctx, id)
}

// List returns users scoped by the caller's role: Admin sees only
// SeniorManagement users, SeniorManagement sees its own company.
func (s *Service) List(ctx context.Context, claims *auth.Claims) ([]*User, error) {
	if !auth.IsAdminOrSeniorManagement(claims) {
		return nil, internal.ErrNotAuthorized
	}

	var filter ListFilter
	switch s.policy.Scope(claims, auth.OpUserList) {
	case auth.ScopeSeniorManagement:
		filter.Role = auth.RoleSeniorManagement
	case auth.ScopeCompany:
		filter.CompanyID = claims.CompanyID
	default:
		return nil, internal.ErrNotAuthorized
	}

	return s.repo.List(ctx, filter)
}

// Me returns the caller's own record with company, company config, expenses
// with receipts, and the manager record attached. A missing row for a valid
// token is a data inconsistency, not a caller error.
func (s *Service) Me(ctx context.Context, claims *auth.Claims) (*User, error) {
	if !auth.IsAuthenticated(claims) {
		return nil, internal.ErrNotAuthorized
	}

	u, err := s.repo.GetProfile(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("own record missing for valid token", "user_id", claims.UserID, "error", err)
		return nil, internal.NewInternalError("account record missing", err)
	}

	return u, nil
}

// DirectReports lists the users whose manager is the caller.
func (s *Service) DirectReports(ctx context.Context, claims *auth.Claims) ([]*User, error) {
	if !auth.IsManagerOrSeniorManagement(claims) {
		return nil, internal.ErrNotAuthorized
	}

	callerID := claims.UserID
	return s.repo.List(ctx, ListFilter{ManagerID: &callerID})
}

// Update modifies a user record. Allowed for Admin/SeniorManagement on any
// record, or for any caller on their own record. The company is re-fetched
// and attached to the returned record.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, id int64, dto UpdateUserDTO) (*User, error) {
	if !auth.IsSelfOrAdminOrSeniorManagement(claims, id) {
		return nil, internal.ErrNotAuthorized
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(u, dto)

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}

	// re-read so the attached company reflects a changed company id
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "updated_by", claims.UserID)
	return updated, nil
}

// Delete removes a user record. Admin/SeniorManagement only. Zero rows
// affected surfaces as ErrDeleteFailed, distinct from an authorization
// failure.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	if !auth.IsAdminOrSeniorManagement(claims) {
		return internal.ErrNotAuthorized
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return err
	}
	if rows == 0 {
		return internal.ErrDeleteFailed
	}

	s.bus.Publish(ctx, events.NewUserDeletedEvent(id, claims.UserID))
	s.logger.Info("user deleted", "user_id", id, "deleted_by", claims.UserID)

	return nil
}

func applyUpdate(u *User, dto UpdateUserDTO) {
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.JobTitle != nil {
		u.JobTitle = *dto.JobTitle
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.CompanyID != nil {
		u.CompanyID = dto.CompanyID
	}
	if dto.ManagerID != nil {
		u.ManagerID = dto.ManagerID
	}
}
