package expense

import (
	"time"

	expenseDatamodel "expensehub/internal/core/datamodel/expense"
)

type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Receipts []Receipt `json:"receipts,omitempty"`
}

// Receipt is an attachment reference stored as a URL. Deleting the parent
// expense cascades to its receipts.
type Receipt struct {
	ID        int64  `json:"id"`
	ExpenseID int64  `json:"expense_id"`
	Receipt   string `json:"receipt"`
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	if e == nil {
		return nil
	}
	out := &Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, r := range e.Receipts {
		out.Receipts = append(out.Receipts, Receipt{
			ID:        r.ID,
			ExpenseID: r.ExpenseID,
			Receipt:   r.Receipt,
		})
	}
	return out
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	out := &expenseDatamodel.Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, r := range e.Receipts {
		out.Receipts = append(out.Receipts, expenseDatamodel.ExpenseReceipt{
			ID:        r.ID,
			ExpenseID: r.ExpenseID,
			Receipt:   r.Receipt,
		})
	}
	return out
}
