package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"expensehub/internal"
	"expensehub/internal/transport"
	"expensehub/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("login failed", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toAccountResponse(result.Account),
	})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), claims, dto); err != nil {
		h.Logger.Warn("change password failed", "user_id", claims.UserID, "error", err)
		h.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Middleware decodes the bearer token and attaches claims to the request
// context. Claims are trusted as-of-issuance; no storage round-trip happens
// here, so a role change only takes effect when the token is reissued.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.DecodeToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			if appErr, ok := internal.IsAppError(err); ok {
				status, body := appErr.ToHTTPResponse()
				h.WriteJSON(w, status, body)
				return
			}
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

type loginResponse struct {
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

type accountResponse struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Role       Role          `json:"role"`
	JobTitle   string        `json:"job_title,omitempty"`
	Department string        `json:"department,omitempty"`
	CompanyID  *int64        `json:"company_id,omitempty"`
	ManagerID  *int64        `json:"manager_id,omitempty"`
	Company    *CompanyClaim `json:"company,omitempty"`
}

func toAccountResponse(a *Account) accountResponse {
	return accountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		JobTitle:   a.JobTitle,
		Department: a.Department,
		CompanyID:  a.CompanyID,
		ManagerID:  a.ManagerID,
		Company:    a.Company,
	}
}
