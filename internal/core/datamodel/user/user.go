package user

import (
	"time"

	companyDatamodel "expensehub/internal/core/datamodel/company"
	expenseDatamodel "expensehub/internal/core/datamodel/expense"
)

// User is the persistence shape. Role is empty and CompanyID nil for accounts
// that are still pending approval. ManagerID points at another users row; the
// graph is expected to be acyclic but that is not enforced on write.
type User struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role"`
	JobTitle     string    `gorm:"column:job_title"`
	Department   string    `gorm:"column:department"`
	CompanyID    *int64    `gorm:"column:company_id;index"`
	ManagerID    *int64    `gorm:"column:manager_id;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Company  *companyDatamodel.Company  `gorm:"foreignKey:CompanyID"`
	Manager  *User                      `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	Expenses []expenseDatamodel.Expense `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
