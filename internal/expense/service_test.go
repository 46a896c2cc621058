package expense

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"expensehub/internal"
	"expensehub/internal/auth"
)

func TestExpense(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Expense Module Suite")
}

type mockExpenseRepository struct {
	expenses map[int64][]*Expense
	nextID   int64

	createCalls int
	listCalls   int

	lastLimit  int
	lastOffset int
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		nextID: 100,
		expenses: map[int64][]*Expense{
			4: {
				{ID: 1, UserID: 4, Amount: 1200, Description: "team lunch"},
				{ID: 2, UserID: 4, Amount: 4500, Description: "conference ticket"},
			},
			5: {
				{ID: 3, UserID: 5, Amount: 800, Description: "office supplies"},
			},
		},
	}
}

func (m *mockExpenseRepository) Create(_ context.Context, e *Expense) error {
	m.createCalls++
	e.ID = m.nextID
	m.nextID++
	m.expenses[e.UserID] = append(m.expenses[e.UserID], e)
	return nil
}

func (m *mockExpenseRepository) GetByID(_ context.Context, id int64) (*Expense, error) {
	for _, list := range m.expenses {
		for _, e := range list {
			if e.ID == id {
				return e, nil
			}
		}
	}
	return nil, internal.ErrExpenseNotFound
}

func (m *mockExpenseRepository) GetByUserID(_ context.Context, userID int64, limit, offset int) ([]*Expense, error) {
	m.listCalls++
	m.lastLimit = limit
	m.lastOffset = offset
	return m.expenses[userID], nil
}

type mockManagerDirectory struct {
	managers map[int64]*int64
	calls    int
}

func (m *mockManagerDirectory) GetManagerID(_ context.Context, userID int64) (*int64, error) {
	m.calls++
	if managerID, ok := m.managers[userID]; ok {
		return managerID, nil
	}
	return nil, internal.ErrUserNotFound
}

var _ = ginkgo.Describe("ExpenseService", func() {
	var (
		service   *Service
		mockRepo  *mockExpenseRepository
		directory *mockManagerDirectory
		ctx       context.Context

		companyA = int64(1)

		managerClaims *auth.Claims
		userClaims    *auth.Claims
		adminClaims   *auth.Claims
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockExpenseRepository()

		managerID := int64(3)
		directory = &mockManagerDirectory{managers: map[int64]*int64{
			4: &managerID,
			5: nil,
		}}

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(mockRepo, directory, auth.NewPolicy(), lg)
		ctx = context.Background()

		adminClaims = &auth.Claims{UserID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}
		managerClaims = &auth.Claims{UserID: 3, Email: "manager@example.com", Role: auth.RoleManager, CompanyID: &companyA}
		userClaims = &auth.Claims{UserID: 4, Email: "riley@example.com", Role: auth.RoleUser, CompanyID: &companyA}
	})

	ginkgo.Describe("Create", func() {
		validDTO := func() CreateExpenseDTO {
			return CreateExpenseDTO{
				Amount:      2500,
				Description: "client dinner",
				Category:    "meals",
				ExpenseDate: time.Now().AddDate(0, 0, -1),
				Receipts:    []string{"https://receipts.example.com/abc123"},
			}
		}

		ginkgo.It("should take ownership from the claims, not the payload", func() {
			created, err := service.Create(ctx, userClaims, validDTO())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.UserID).To(gomega.Equal(userClaims.UserID))
			gomega.Expect(created.Receipts).To(gomega.HaveLen(1))
		})

		ginkgo.It("should reject a non-positive amount before storage", func() {
			dto := validDTO()
			dto.Amount = 0

			_, err := service.Create(ctx, userClaims, dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			gomega.Expect(mockRepo.createCalls).To(gomega.Equal(0))
		})

		ginkgo.It("should reject a receipt that is not a URL", func() {
			dto := validDTO()
			dto.Receipts = []string{"scan-of-receipt.pdf"}

			_, err := service.Create(ctx, userClaims, dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
		})

		ginkgo.It("should reject a future expense date", func() {
			dto := validDTO()
			dto.ExpenseDate = time.Now().AddDate(0, 0, 2)

			_, err := service.Create(ctx, userClaims, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should deny unauthenticated callers", func() {
			_, err := service.Create(ctx, nil, validDTO())
			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotAuthorized))
			gomega.Expect(mockRepo.createCalls).To(gomega.Equal(0))
		})
	})

	ginkgo.Describe("ListOwn", func() {
		ginkgo.It("should return only the caller's expenses", func() {
			expenses, err := service.ListOwn(ctx, userClaims, 0, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(expenses).To(gomega.HaveLen(2))
			for _, e := range expenses {
				gomega.Expect(e.UserID).To(gomega.Equal(userClaims.UserID))
			}
		})

		ginkgo.It("should apply the default page size when none is given", func() {
			_, err := service.ListOwn(ctx, userClaims, 0, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.lastLimit).To(gomega.Equal(DefaultPageSize))
		})

		ginkgo.It("should clamp oversized page requests", func() {
			_, err := service.ListOwn(ctx, userClaims, 10000, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.lastLimit).To(gomega.Equal(MaxPageSize))
		})
	})

	ginkgo.Describe("ListForUser", func() {
		ginkgo.It("should allow the user themselves", func() {
			expenses, err := service.ListForUser(ctx, userClaims, 4, 0, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(expenses).To(gomega.HaveLen(2))
			gomega.Expect(directory.calls).To(gomega.Equal(0))
		})

		ginkgo.It("should allow Admin for any user", func() {
			expenses, err := service.ListForUser(ctx, adminClaims, 5, 0, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(expenses).To(gomega.HaveLen(1))
		})

		ginkgo.It("should allow the target's direct manager", func() {
			expenses, err := service.ListForUser(ctx, managerClaims, 4, 0, 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(expenses).To(gomega.HaveLen(2))
			gomega.Expect(directory.calls).To(gomega.Equal(1))
		})

		ginkgo.It("should deny a manager who does not manage the target", func() {
			_, err := service.ListForUser(ctx, managerClaims, 5, 0, 0)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotAuthorized))
			gomega.Expect(mockRepo.listCalls).To(gomega.Equal(0))
		})

		ginkgo.It("should deny a regular user reading someone else", func() {
			_, err := service.ListForUser(ctx, userClaims, 5, 0, 0)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotAuthorized))
			gomega.Expect(mockRepo.listCalls).To(gomega.Equal(0))
			gomega.Expect(directory.calls).To(gomega.Equal(0))
		})

		ginkgo.It("should deny unauthenticated callers", func() {
			_, err := service.ListForUser(ctx, nil, 4, 0, 0)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrNotAuthorized))
		})
	})
})
