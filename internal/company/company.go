package company

import (
	"time"

	companyDatamodel "expensehub/internal/core/datamodel/company"
)

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Config *Config `json:"config,omitempty"`
}

// Config is the per-company expense configuration.
type Config struct {
	ID             int64  `json:"id"`
	CompanyID      int64  `json:"company_id"`
	Currency       string `json:"currency"`
	ExpenseLimit   int64  `json:"expense_limit"`
	ReceiptsNeeded bool   `json:"receipts_needed"`
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	if c == nil {
		return nil
	}
	out := &Company{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Config != nil {
		out.Config = ConfigFromDataModel(c.Config)
	}
	return out
}

func ConfigFromDataModel(c *companyDatamodel.CompanyConfig) *Config {
	if c == nil {
		return nil
	}
	return &Config{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		Currency:       c.Currency,
		ExpenseLimit:   c.ExpenseLimit,
		ReceiptsNeeded: c.ReceiptsNeeded,
	}
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	out := &companyDatamodel.Company{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Config != nil {
		out.Config = &companyDatamodel.CompanyConfig{
			ID:             c.Config.ID,
			CompanyID:      c.Config.CompanyID,
			Currency:       c.Config.Currency,
			ExpenseLimit:   c.Config.ExpenseLimit,
			ReceiptsNeeded: c.Config.ReceiptsNeeded,
		}
	}
	return out
}
