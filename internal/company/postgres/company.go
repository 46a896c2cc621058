package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expensehub/internal"
	"expensehub/internal/company"
	companyDatamodel "expensehub/internal/core/datamodel/company"
)

// CompanyRepository implements company.Repository using GORM.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	model := company.ToDataModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*c = *company.FromDataModel(model)
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	var model companyDatamodel.Company
	err := r.db.WithContext(ctx).
		Preload("Config").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return company.FromDataModel(&model), nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]*company.Company, error) {
	var models []companyDatamodel.Company
	err := r.db.WithContext(ctx).
		Preload("Config").
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	companies := make([]*company.Company, 0, len(models))
	for i := range models {
		companies = append(companies, company.FromDataModel(&models[i]))
	}
	return companies, nil
}

func (r *CompanyRepository) GetConfig(ctx context.Context, companyID int64) (*company.Config, error) {
	var model companyDatamodel.CompanyConfig
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return company.ConfigFromDataModel(&model), nil
}
