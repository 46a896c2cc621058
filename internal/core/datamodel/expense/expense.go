package expense

import "time"

type Expense struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Amount      int64     `gorm:"column:amount;not null"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category"`
	ExpenseDate time.Time `gorm:"column:expense_date;type:date"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Receipts []ExpenseReceipt `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
}

func (Expense) TableName() string {
	return "expenses"
}

type ExpenseReceipt struct {
	ID        int64     `gorm:"primaryKey"`
	ExpenseID int64     `gorm:"column:expense_id;not null;index"`
	Receipt   string    `gorm:"column:receipt;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ExpenseReceipt) TableName() string {
	return "expense_receipts"
}
