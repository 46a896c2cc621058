package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expensehub/internal"
	expenseDatamodel "expensehub/internal/core/datamodel/expense"
	"expensehub/internal/expense"
)

// ExpenseRepository implements expense.Repository using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	model := expense.ToDataModel(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*e = *expense.FromDataModel(model)
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	var model expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Preload("Receipts").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense.FromDataModel(&model), nil
}

func (r *ExpenseRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]*expense.Expense, error) {
	var models []expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Preload("Receipts").
		Where("user_id = ?", userID).
		Order("expense_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]*expense.Expense, 0, len(models))
	for i := range models {
		expenses = append(expenses, expense.FromDataModel(&models[i]))
	}
	return expenses, nil
}
