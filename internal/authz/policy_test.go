package authz_test

import (
	"testing"

	"github.com/frahmantamala/helpdesk/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuthzPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Authorization Policy Suite")
}

var _ = Describe("ParseRole", func() {
	It("should accept every known role", func() {
		for _, raw := range []string{"admin", "employee", "agent"} {
			role, err := authz.ParseRole(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(role)).To(Equal(raw))
		}
	})

	It("should reject unknown roles", func() {
		_, err := authz.ParseRole("superuser")
		Expect(err).To(HaveOccurred())
	})

	It("should reject the empty string", func() {
		_, err := authz.ParseRole("")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("CanManageArticles", func() {
	It("should allow only admins", func() {
		Expect(authz.CanManageArticles(authz.RoleAdmin)).To(BeTrue())
		Expect(authz.CanManageArticles(authz.RoleEmployee)).To(BeFalse())
		Expect(authz.CanManageArticles(authz.RoleAgent)).To(BeFalse())
	})
})

var _ = Describe("CanCreateTicket", func() {
	It("should allow every valid role", func() {
		Expect(authz.CanCreateTicket(authz.RoleAdmin)).To(BeTrue())
		Expect(authz.CanCreateTicket(authz.RoleEmployee)).To(BeTrue())
		Expect(authz.CanCreateTicket(authz.RoleAgent)).To(BeTrue())
	})

	It("should deny an invalid role", func() {
		Expect(authz.CanCreateTicket(authz.Role("ghost"))).To(BeFalse())
	})
})

var _ = Describe("CanModifyTicket", func() {
	Context("when the requester is an admin", func() {
		It("should allow regardless of ownership", func() {
			Expect(authz.CanModifyTicket(authz.RoleAdmin, 10, 99)).To(BeTrue())
		})
	})

	Context("when the requester created the ticket", func() {
		It("should allow for non-admin roles", func() {
			Expect(authz.CanModifyTicket(authz.RoleEmployee, 7, 7)).To(BeTrue())
			Expect(authz.CanModifyTicket(authz.RoleAgent, 7, 7)).To(BeTrue())
		})
	})

	Context("when the requester is neither admin nor creator", func() {
		It("should deny", func() {
			Expect(authz.CanModifyTicket(authz.RoleEmployee, 7, 8)).To(BeFalse())
			Expect(authz.CanModifyTicket(authz.RoleAgent, 7, 8)).To(BeFalse())
		})
	})

	It("should deny missing or invalid principals", func() {
		Expect(authz.CanModifyTicket(authz.RoleEmployee, 0, 0)).To(BeFalse())
		Expect(authz.CanModifyTicket(authz.Role("ghost"), 7, 7)).To(BeFalse())
	})
})

var _ = Describe("CanRegisterUsers", func() {
	It("should allow only admins", func() {
		Expect(authz.CanRegisterUsers(authz.RoleAdmin)).To(BeTrue())
		Expect(authz.CanRegisterUsers(authz.RoleEmployee)).To(BeFalse())
		Expect(authz.CanRegisterUsers(authz.RoleAgent)).To(BeFalse())
	})
})

var _ = Describe("TicketScopeFor", func() {
	It("should scope employees to tickets they created", func() {
		scope := authz.TicketScopeFor(authz.RoleEmployee, 42)
		Expect(scope.Kind).To(Equal(authz.ScopeCreator))
		Expect(scope.UserID).To(Equal(int64(42)))
	})

	It("should scope agents to tickets assigned to them", func() {
		scope := authz.TicketScopeFor(authz.RoleAgent, 42)
		Expect(scope.Kind).To(Equal(authz.ScopeAssignee))
		Expect(scope.UserID).To(Equal(int64(42)))
	})

	It("should give admins an unfiltered scope", func() {
		scope := authz.TicketScopeFor(authz.RoleAdmin, 42)
		Expect(scope.Kind).To(Equal(authz.ScopeAll))
	})

	It("should yield no rows for missing or invalid principals", func() {
		Expect(authz.TicketScopeFor(authz.RoleEmployee, 0).Kind).To(Equal(authz.ScopeNone))
		Expect(authz.TicketScopeFor(authz.Role("ghost"), 42).Kind).To(Equal(authz.ScopeNone))
	})
})

var _ = Describe("TicketScope.Allows", func() {
	assignee := int64(5)

	It("should allow everything under ScopeAll", func() {
		scope := authz.TicketScope{Kind: authz.ScopeAll}
		Expect(scope.Allows(1, nil)).To(BeTrue())
		Expect(scope.Allows(99, &assignee)).To(BeTrue())
	})

	It("should match only the creator under ScopeCreator", func() {
		scope := authz.TicketScope{Kind: authz.ScopeCreator, UserID: 7}
		Expect(scope.Allows(7, nil)).To(BeTrue())
		Expect(scope.Allows(8, &assignee)).To(BeFalse())
	})

	It("should match only the assignee under ScopeAssignee", func() {
		scope := authz.TicketScope{Kind: authz.ScopeAssignee, UserID: 5}
		Expect(scope.Allows(1, &assignee)).To(BeTrue())
		Expect(scope.Allows(5, nil)).To(BeFalse())

		other := int64(6)
		Expect(scope.Allows(1, &other)).To(BeFalse())
	})

	It("should deny everything under ScopeNone", func() {
		scope := authz.TicketScope{Kind: authz.ScopeNone}
		Expect(scope.Allows(1, &assignee)).To(BeFalse())
	})
})
