package auth

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordDTO carries the caller's current and replacement password.
// The target account is always the caller's own; no id is accepted.
type ChangePasswordDTO struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

// ValidationError is a simple validation failure from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new_password is required"}
	}
	if len(d.NewPassword) < 8 {
		return ValidationError{Msg: "new_password must be at least 8 characters"}
	}
	return nil
}
