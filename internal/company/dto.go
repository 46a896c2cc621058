package company

import "errors"

type CreateCompanyDTO struct {
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	ExpenseLimit   int64  `json:"expense_limit"`
	ReceiptsNeeded bool   `json:"receipts_needed"`
}

func (d CreateCompanyDTO) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.ExpenseLimit < 0 {
		return errors.New("expense_limit cannot be negative")
	}
	return nil
}
