package expense

import (
	"errors"
	"strings"
	"time"
)

type CreateExpenseDTO struct {
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ExpenseDate time.Time `json:"expense_date"`
	Receipts    []string  `json:"receipts"`
}

func (d CreateExpenseDTO) Validate() error {
	if d.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if d.Description == "" {
		return errors.New("description is required")
	}
	if d.ExpenseDate.IsZero() {
		return errors.New("expense_date is required")
	}
	if d.ExpenseDate.After(time.Now()) {
		return errors.New("expense_date cannot be in the future")
	}
	for _, r := range d.Receipts {
		if !strings.Contains(r, "http") {
			return errors.New("receipt must be a URL")
		}
	}
	return nil
}
