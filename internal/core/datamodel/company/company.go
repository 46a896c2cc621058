package company

import "time"

type Company struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Config *CompanyConfig `gorm:"foreignKey:CompanyID"`
}

func (Company) TableName() string {
	return "companies"
}

type CompanyConfig struct {
	ID             int64     `gorm:"primaryKey"`
	CompanyID      int64     `gorm:"column:company_id;uniqueIndex;not null"`
	Currency       string    `gorm:"column:currency;default:USD"`
	ExpenseLimit   int64     `gorm:"column:expense_limit"`
	ReceiptsNeeded bool      `gorm:"column:receipts_needed;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CompanyConfig) TableName() string {
	return "company_configs"
}
