package user

import (
	"time"

	"expensehub/internal/auth"
	"expensehub/internal/company"
	userDatamodel "expensehub/internal/core/datamodel/user"
	"expensehub/internal/expense"
)

// User is the directory's domain model. Role is empty for accounts pending
// approval; the password hash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role,omitempty"`
	JobTitle     string    `json:"job_title,omitempty"`
	Department   string    `json:"department,omitempty"`
	CompanyID    *int64    `json:"company_id,omitempty"`
	ManagerID    *int64    `json:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Company  *company.Company   `json:"company,omitempty"`
	Manager  *User              `json:"manager,omitempty"`
	Expenses []*expense.Expense `json:"expenses,omitempty"`
}

func FromDataModel(m *userDatamodel.User) *User {
	if m == nil {
		return nil
	}
	u := &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         auth.Role(m.Role),
		JobTitle:     m.JobTitle,
		Department:   m.Department,
		CompanyID:    m.CompanyID,
		ManagerID:    m.ManagerID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Company != nil {
		u.Company = company.FromDataModel(m.Company)
	}
	if m.Manager != nil {
		u.Manager = FromDataModel(m.Manager)
	}
	for i := range m.Expenses {
		u.Expenses = append(u.Expenses, expense.FromDataModel(&m.Expenses[i]))
	}
	return u
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		JobTitle:     u.JobTitle,
		Department:   u.Department,
		CompanyID:    u.CompanyID,
		ManagerID:    u.ManagerID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
