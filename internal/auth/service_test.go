package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"expensehub/internal"
	"expensehub/internal/core/events"
)

type mockAccountRepository struct {
	accounts map[string]*Account
	byID     map[int64]*Account

	findErr error

	updatePasswordCalls int
	updatedHash         string
}

func newMockAccountRepository() *mockAccountRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	companyID := int64(7)

	accounts := map[string]*Account{
		"user@example.com": {
			ID: 1, Name: "Regular User", Email: "user@example.com",
			PasswordHash: string(hash), Role: RoleUser, CompanyID: &companyID,
			Company: &CompanyClaim{ID: 7, Name: "Initech"},
		},
		"admin@example.com": {
			ID: 2, Name: "Admin", Email: "admin@example.com",
			PasswordHash: string(hash), Role: RoleAdmin,
		},
		"norole@example.com": {
			ID: 3, Name: "No Role", Email: "norole@example.com",
			PasswordHash: string(hash), CompanyID: &companyID,
		},
		"nocompany@example.com": {
			ID: 4, Name: "No Company", Email: "nocompany@example.com",
			PasswordHash: string(hash), Role: RoleManager,
		},
	}

	byID := make(map[int64]*Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	return &mockAccountRepository{accounts: accounts, byID: byID}
}

func (m *mockAccountRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if a, ok := m.accounts[email]; ok {
		return a, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockAccountRepository) FindByID(_ context.Context, id int64) (*Account, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockAccountRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	m.updatePasswordCalls++
	m.updatedHash = passwordHash
	if _, ok := m.byID[id]; !ok {
		return internal.ErrUserNotFound
	}
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockAccountRepository
		codec    *JWTCodec
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAccountRepository()
		codec = NewJWTCodec("test-secret-key-that-is-long-enough", time.Hour)

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(mockRepo, codec, events.NewEventBus(lg), lg, bcrypt.MinCost)
		ctx = context.Background()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return a token carrying the account's identity", func() {
				result, err := service.Login(ctx, LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Token).ToNot(gomega.BeEmpty())
				gomega.Expect(result.Account.ID).To(gomega.Equal(int64(1)))

				claims, err := codec.Decode(result.Token)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(int64(1)))
				gomega.Expect(claims.Role).To(gomega.Equal(RoleUser))
				gomega.Expect(*claims.CompanyID).To(gomega.Equal(int64(7)))
				gomega.Expect(claims.Company.Name).To(gomega.Equal("Initech"))
			})

			ginkgo.It("should let an Admin without a company log in", func() {
				result, err := service.Login(ctx, LoginDTO{
					Email:    "admin@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Account.Role).To(gomega.Equal(RoleAdmin))
			})
		})

		ginkgo.Context("when credentials are bad", func() {
			ginkgo.It("should return the same error for an unknown email and a wrong password", func() {
				_, unknownErr := service.Login(ctx, LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct_password",
				})
				_, wrongErr := service.Login(ctx, LoginDTO{
					Email:    "user@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(unknownErr).To(gomega.MatchError(internal.ErrInvalidCredentials))
				gomega.Expect(wrongErr).To(gomega.MatchError(internal.ErrInvalidCredentials))
				gomega.Expect(unknownErr).To(gomega.BeIdenticalTo(wrongErr))
			})
		})

		ginkgo.Context("when the account store is unavailable", func() {
			ginkgo.It("should surface an internal error, not bad credentials", func() {
				mockRepo.findErr = errors.New("connection refused")

				_, err := service.Login(ctx, LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInternalError))
				gomega.Expect(err).ToNot(gomega.MatchError(internal.ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the account is pending approval", func() {
			ginkgo.It("should refuse an account without a role", func() {
				_, err := service.Login(ctx, LoginDTO{
					Email:    "norole@example.com",
					Password: "correct_password",
				})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrPendingApproval))
			})

			ginkgo.It("should refuse a non-Admin account without a company", func() {
				_, err := service.Login(ctx, LoginDTO{
					Email:    "nocompany@example.com",
					Password: "correct_password",
				})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrPendingApproval))
			})

			ginkgo.It("should check the password before the approval state", func() {
				_, err := service.Login(ctx, LoginDTO{
					Email:    "norole@example.com",
					Password: "wrong_password",
				})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when input is incomplete", func() {
			ginkgo.It("should reject a missing password", func() {
				_, err := service.Login(ctx, LoginDTO{Email: "user@example.com"})

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			})
		})
	})

	ginkgo.Describe("ChangePassword", func() {
		validClaims := &Claims{UserID: 1, Email: "user@example.com", Role: RoleUser}

		ginkgo.It("should store a hash of the new password", func() {
			err := service.ChangePassword(ctx, validClaims, ChangePasswordDTO{
				Password:    "correct_password",
				NewPassword: "brand_new_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.updatePasswordCalls).To(gomega.Equal(1))
			gomega.Expect(VerifyPassword(mockRepo.updatedHash, "brand_new_password")).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a wrong old password without touching storage", func() {
			err := service.ChangePassword(ctx, validClaims, ChangePasswordDTO{
				Password:    "wrong_password",
				NewPassword: "brand_new_password",
			})

			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidOldPassword))
			gomega.Expect(mockRepo.updatePasswordCalls).To(gomega.Equal(0))
		})

		ginkgo.It("should always target the caller's own account", func() {
			otherClaims := &Claims{UserID: 2, Email: "admin@example.com", Role: RoleAdmin}

			err := service.ChangePassword(ctx, otherClaims, ChangePasswordDTO{
				Password:    "correct_password",
				NewPassword: "brand_new_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(mockRepo.updatedHash, "brand_new_password")).To(gomega.BeTrue())
			// the regular user's hash is untouched
			gomega.Expect(VerifyPassword(mockRepo.byID[1].PasswordHash, "correct_password")).To(gomega.BeTrue())
		})

		ginkgo.It("should reject unauthenticated callers", func() {
			err := service.ChangePassword(ctx, nil, ChangePasswordDTO{
				Password:    "correct_password",
				NewPassword: "brand_new_password",
			})

			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotAuthorized))
			gomega.Expect(mockRepo.updatePasswordCalls).To(gomega.Equal(0))
		})

		ginkgo.It("should reject a short new password", func() {
			err := service.ChangePassword(ctx, validClaims, ChangePasswordDTO{
				Password:    "correct_password",
				NewPassword: "short",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			gomega.Expect(mockRepo.updatePasswordCalls).To(gomega.Equal(0))
		})
	})
})
