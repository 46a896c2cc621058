package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Policy", func() {
	var policy *Policy

	claimsFor := func(role Role) *Claims {
		return &Claims{UserID: 1, Email: "x@example.com", Role: role}
	}

	ginkgo.BeforeEach(func() {
		policy = NewPolicy()
	})

	ginkgo.Describe("Scope", func() {
		ginkgo.It("should deny everything for nil claims", func() {
			for _, op := range []Operation{OpUserCreate, OpUserList, OpUserDelete, OpCompanyCreate, OpExpenseCreate} {
				gomega.Expect(policy.Scope(nil, op)).To(gomega.Equal(ScopeNone))
			}
		})

		ginkgo.It("should deny unknown operations", func() {
			gomega.Expect(policy.Scope(claimsFor(RoleAdmin), Operation("user.impersonate"))).To(gomega.Equal(ScopeNone))
		})

		ginkgo.It("should scope Admin user listing to SeniorManagement rows", func() {
			gomega.Expect(policy.Scope(claimsFor(RoleAdmin), OpUserList)).To(gomega.Equal(ScopeSeniorManagement))
		})

		ginkgo.It("should scope SeniorManagement user listing to its own company", func() {
			gomega.Expect(policy.Scope(claimsFor(RoleSeniorManagement), OpUserList)).To(gomega.Equal(ScopeCompany))
		})

		ginkgo.It("should scope SeniorManagement user creation to its own company", func() {
			gomega.Expect(policy.Scope(claimsFor(RoleSeniorManagement), OpUserCreate)).To(gomega.Equal(ScopeCompany))
			gomega.Expect(policy.Scope(claimsFor(RoleAdmin), OpUserCreate)).To(gomega.Equal(ScopeAll))
		})

		ginkgo.It("should keep Manager and User out of directory administration", func() {
			for _, role := range []Role{RoleManager, RoleUser} {
				c := claimsFor(role)
				gomega.Expect(policy.Allows(c, OpUserCreate)).To(gomega.BeFalse())
				gomega.Expect(policy.Allows(c, OpUserRead)).To(gomega.BeFalse())
				gomega.Expect(policy.Allows(c, OpUserList)).To(gomega.BeFalse())
				gomega.Expect(policy.Allows(c, OpUserDelete)).To(gomega.BeFalse())
			}
		})

		ginkgo.It("should restrict company creation to Admin", func() {
			gomega.Expect(policy.Allows(claimsFor(RoleAdmin), OpCompanyCreate)).To(gomega.BeTrue())
			for _, role := range []Role{RoleSeniorManagement, RoleManager, RoleUser} {
				gomega.Expect(policy.Allows(claimsFor(role), OpCompanyCreate)).To(gomega.BeFalse())
			}
		})

		ginkgo.It("should let every role submit and list its own expenses", func() {
			for _, role := range []Role{RoleAdmin, RoleSeniorManagement, RoleManager, RoleUser} {
				c := claimsFor(role)
				gomega.Expect(policy.Scope(c, OpExpenseCreate)).To(gomega.Equal(ScopeSelf))
				gomega.Expect(policy.Scope(c, OpExpenseList)).To(gomega.Equal(ScopeSelf))
			}
		})
	})

	ginkgo.Describe("predicate agreement", func() {
		allRoles := []Role{RoleAdmin, RoleSeniorManagement, RoleManager, RoleUser}

		ginkgo.It("should keep IsAdminOrSeniorManagement aligned with the user administration rows", func() {
			for _, role := range allRoles {
				c := claimsFor(role)
				gomega.Expect(IsAdminOrSeniorManagement(c)).To(gomega.Equal(policy.Allows(c, OpUserDelete)),
					"role %s", role)
			}
		})

		ginkgo.It("should keep IsManagerOrSeniorManagement aligned with the reports rows", func() {
			for _, role := range allRoles {
				c := claimsFor(role)
				gomega.Expect(IsManagerOrSeniorManagement(c)).To(gomega.Equal(policy.Allows(c, OpUserReports)),
					"role %s", role)
			}
		})

		ginkgo.It("should let IsSelfOrAdminOrSeniorManagement pass the caller on their own id only", func() {
			c := claimsFor(RoleUser)
			gomega.Expect(IsSelfOrAdminOrSeniorManagement(c, c.UserID)).To(gomega.BeTrue())
			gomega.Expect(IsSelfOrAdminOrSeniorManagement(c, c.UserID+1)).To(gomega.BeFalse())
			gomega.Expect(IsSelfOrAdminOrSeniorManagement(claimsFor(RoleAdmin), 999)).To(gomega.BeTrue())
			gomega.Expect(IsSelfOrAdminOrSeniorManagement(nil, 1)).To(gomega.BeFalse())
		})
	})
})
