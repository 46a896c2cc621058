package auth

import (
	"context"
	"errors"
	"log/slog"

	"expensehub/internal"
	"expensehub/internal/core/events"
)

// Account is the credential-bearing view of a user record needed by the auth
// flows. The password hash never leaves this package.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	JobTitle     string
	Department   string
	CompanyID    *int64
	ManagerID    *int64
	Company      *CompanyClaim
}

// PendingApproval reports whether the account may not authenticate yet:
// no role assigned, or no company while not being an Admin.
func (a *Account) PendingApproval() bool {
	if a.Role == "" {
		return true
	}
	return a.CompanyID == nil && a.Role != RoleAdmin
}

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	ChangePassword(ctx context.Context, claims *Claims, dto ChangePasswordDTO) error
	DecodeToken(token string) (*Claims, error)
}

type LoginResult struct {
	Token   string   `json:"token"`
	Account *Account `json:"user"`
}

type Service struct {
	accounts   AccountRepository
	codec      TokenCodec
	bus        *events.EventBus
	logger     *slog.Logger
	bcryptCost int
}

func NewService(accounts AccountRepository, codec TokenCodec, bus *events.EventBus, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		accounts:   accounts,
		codec:      codec,
		bus:        bus,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Login authenticates by email and password and issues a session token.
// Unknown email and wrong password collapse into the same error so the
// response carries no account-enumeration signal.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	acct, err := s.accounts.FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Warn("login failed: unknown email", "email", dto.Email)
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("login failed: account lookup", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to load account", err)
	}

	if !VerifyPassword(acct.PasswordHash, dto.Password) {
		s.logger.Warn("login failed: password mismatch", "user_id", acct.ID)
		return nil, internal.ErrInvalidCredentials
	}

	if acct.PendingApproval() {
		s.logger.Warn("login blocked: account pending approval", "user_id", acct.ID)
		return nil, internal.ErrPendingApproval
	}

	claims := &Claims{
		UserID:    acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
		CompanyID: acct.CompanyID,
		ManagerID: acct.ManagerID,
		Company:   acct.Company,
	}

	token, err := s.codec.Issue(claims)
	if err != nil {
		s.logger.Error("token issue failed", "user_id", acct.ID, "error", err)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.bus.Publish(ctx, events.NewLoginSucceededEvent(acct.ID, acct.Email))

	return &LoginResult{Token: token, Account: acct}, nil
}

// ChangePassword operates on the caller's own account only. The current
// password is re-verified first; on mismatch the new password is never
// hashed and storage is never touched.
func (s *Service) ChangePassword(ctx context.Context, claims *Claims, dto ChangePasswordDTO) error {
	if !IsAuthenticated(claims) {
		return internal.ErrNotAuthorized
	}

	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	acct, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		return internal.ErrUserNotFound.WithCause(err)
	}

	if !VerifyPassword(acct.PasswordHash, dto.Password) {
		s.logger.Warn("change password rejected: old password mismatch", "user_id", acct.ID)
		return internal.ErrInvalidOldPassword
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.accounts.UpdatePassword(ctx, acct.ID, hash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	s.bus.Publish(ctx, events.NewPasswordChangedEvent(acct.ID))

	return nil
}

// DecodeToken validates a session token without any storage lookup.
func (s *Service) DecodeToken(token string) (*Claims, error) {
	return s.codec.Decode(token)
}
