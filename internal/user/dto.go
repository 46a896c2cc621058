package user

import (
	"errors"
	"net/mail"

	"expensehub/internal/auth"
)

type CreateUserDTO struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       auth.Role `json:"role"`
	JobTitle   string    `json:"job_title"`
	Department string    `json:"department"`
	CompanyID  *int64    `json:"company_id"`
	ManagerID  *int64    `json:"manager_id"`
}

func (d CreateUserDTO) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return errors.New("email is not valid")
	}
	if d.Password == "" {
		return errors.New("password is required")
	}
	if len(d.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if d.Role != "" && !d.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}

// UpdateUserDTO uses pointers so absent fields are left untouched.
type UpdateUserDTO struct {
	Name       *string    `json:"name"`
	Email      *string    `json:"email"`
	Role       *auth.Role `json:"role"`
	JobTitle   *string    `json:"job_title"`
	Department *string    `json:"department"`
	CompanyID  *int64     `json:"company_id"`
	ManagerID  *int64     `json:"manager_id"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Email != nil {
		if _, err := mail.ParseAddress(*d.Email); err != nil {
			return errors.New("email is not valid")
		}
	}
	if d.Role != nil && *d.Role != "" && !d.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}
