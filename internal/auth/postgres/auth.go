package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expensehub/internal"
	"expensehub/internal/auth"
	userDatamodel "expensehub/internal/core/datamodel/user"
)

// AccountRepository loads credential-bearing account rows for the auth flows.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("email = ?", email).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return toAccount(&model), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*auth.Account, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return toAccount(&model), nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func toAccount(model *userDatamodel.User) *auth.Account {
	acct := &auth.Account{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         auth.Role(model.Role),
		JobTitle:     model.JobTitle,
		Department:   model.Department,
		CompanyID:    model.CompanyID,
		ManagerID:    model.ManagerID,
	}
	if model.Company != nil {
		acct.Company = &auth.CompanyClaim{
			ID:   model.Company.ID,
			Name: model.Company.Name,
		}
	}
	return acct
}
