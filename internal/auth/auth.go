package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse access level carried in session claims. An empty Role on
// a stored account means the account has not been approved yet.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleSeniorManagement Role = "SeniorManagement"
	RoleManager          Role = "Manager"
	RoleUser             Role = "User"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeniorManagement, RoleManager, RoleUser:
		return true
	}
	return false
}

// CompanyClaim is the company snapshot embedded in a session token at login.
// It reflects the company as of issuance and is not refreshed per request.
type CompanyClaim struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Claims are the decoded identity fields of a session token. They are
// reconstructed fresh per request from the token alone; nothing here is
// re-validated against current storage state within a request.
type Claims struct {
	UserID    int64         `json:"user_id"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	CompanyID *int64        `json:"company_id,omitempty"`
	ManagerID *int64        `json:"manager_id,omitempty"`
	Company   *CompanyClaim `json:"company,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs claims into an opaque token and validates one back.
// Decode performs no storage lookup.
type TokenCodec interface {
	Issue(claims *Claims) (string, error)
	Decode(token string) (*Claims, error)
}

type ctxKey string

const ContextClaimsKey ctxKey = "claims"

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ContextClaimsKey).(*Claims)
	return c, ok
}

func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ContextClaimsKey, claims)
}
