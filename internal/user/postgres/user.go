package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expensehub/internal"
	userDatamodel "expensehub/internal/core/datamodel/user"
	"expensehub/internal/user"
)

// UserRepository implements user.Repository using GORM. It also serves as the
// manager directory for expense authorization.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := user.ToDataModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmailTaken
		}
		return err
	}
	*u = *user.FromDataModel(model)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
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
	return user.FromDataModel(&model), nil
}

// GetProfile loads the full self-profile: company with its config, expenses
// with receipts, and the owning manager.
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Company.Config").
		Preload("Expenses.Receipts").
		Preload("Manager").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, error) {
	q := r.db.WithContext(ctx).Preload("Company")

	if filter.Role != "" {
		q = q.Where("role = ?", string(filter.Role))
	}
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.ManagerID != nil {
		q = q.Where("manager_id = ?", *filter.ManagerID)
	}

	var models []userDatamodel.User
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, user.FromDataModel(&models[i]))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := user.ToDataModel(u)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmailTaken
		}
		return err
	}
	return nil
}

// Delete detaches any direct reports before removing the row, so deleting a
// manager never trips the reporting-line constraint.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("manager_id = ?", id).
			Update("manager_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// GetManagerID implements expense.ManagerDirectory.
func (r *UserRepository) GetManagerID(ctx context.Context, userID int64) (*int64, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "manager_id").
		Where("id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return model.ManagerID, nil
}
