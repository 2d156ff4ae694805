package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockUserRepository implements auth.UserRepository for testing
type MockUserRepository struct {
	creds     map[string]*auth.Credentials
	users     map[int64]*auth.User
	lookupErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		creds: make(map[string]*auth.Credentials),
		users: make(map[int64]*auth.User),
	}
}

func (m *MockUserRepository) GetCredentialsByUsername(username string) (*auth.Credentials, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	c, ok := m.creds[username]
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}
	return c, nil
}

func (m *MockUserRepository) GetUser(userID int64) (*auth.User, bool, error) {
	if m.lookupErr != nil {
		return nil, false, m.lookupErr
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, false, internal.ErrUserNotFound
	}
	for _, c := range m.creds {
		if c.UserID == userID {
			return u, c.IsActive, nil
		}
	}
	return u, true, nil
}

func (m *MockUserRepository) AddUser(username, password string, userID int64, role authz.Role, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.creds[username] = &auth.Credentials{
		UserID:       userID,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	m.users[userID] = &auth.User{ID: userID, Username: username, Role: role}
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo *MockUserRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"access-secret-for-tests-0123456789ab",
			"refresh-secret-for-tests-0123456789a",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = auth.NewService(mockRepo, tokenGen)
		mockRepo.AddUser("erika", "correct-horse", 2, authz.RoleEmployee, true)
	})

	Describe("Authenticate", func() {
		Context("with valid credentials", func() {
			It("should return a token pair", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "erika", Password: "correct-horse"})
				Expect(err).NotTo(HaveOccurred())
				Expect(tokens.AccessToken).NotTo(BeEmpty())
				Expect(tokens.RefreshToken).NotTo(BeEmpty())
			})

			It("should embed the user id and role in the access token", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "erika", Password: "correct-horse"})
				Expect(err).NotTo(HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.UserID).To(Equal(int64(2)))
				Expect(claims.Role).To(Equal("employee"))
			})
		})

		Context("with a wrong password", func() {
			It("should return invalid credentials", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "erika", Password: "wrong"})
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with an unknown username", func() {
			It("should return invalid credentials, not a lookup error", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "ghost", Password: "whatever"})
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("when the repository is unreachable", func() {
			It("should not pass the failure off as invalid credentials", func() {
				mockRepo.lookupErr = errors.New("connection refused")
				_, err := service.Authenticate(auth.LoginDTO{Username: "erika", Password: "correct-horse"})
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeFalse())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(500))
			})
		})

		Context("with an inactive user", func() {
			BeforeEach(func() {
				mockRepo.AddUser("dormant", "correct-horse", 9, authz.RoleEmployee, false)
			})

			It("should refuse to issue tokens", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "dormant", Password: "correct-horse"})
				Expect(err).To(MatchError(auth.ErrUserInactive))
			})
		})

		Context("with a malformed payload", func() {
			It("should reject a missing username", func() {
				_, err := service.Authenticate(auth.LoginDTO{Password: "x"})
				Expect(err).To(HaveOccurred())
			})

			It("should reject a missing password", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "erika"})
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("RefreshTokens", func() {
		var tokens auth.AuthTokens

		BeforeEach(func() {
			var err error
			tokens, err = service.Authenticate(auth.LoginDTO{Username: "erika", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should issue a fresh pair from a valid refresh token", func() {
			fresh, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.AccessToken).NotTo(BeEmpty())
			Expect(fresh.RefreshToken).NotTo(BeEmpty())
		})

		It("should pick up a role change at refresh time", func() {
			mockRepo.users[2].Role = authz.RoleAdmin

			fresh, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(fresh.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Role).To(Equal("admin"))
		})

		It("should reject an access token used as a refresh token", func() {
			_, err := service.RefreshTokens(tokens.AccessToken)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject garbage", func() {
			_, err := service.RefreshTokens("not-a-token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject a token for a deleted user as invalid", func() {
			delete(mockRepo.users, 2)
			_, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should not pass a lookup failure off as an invalid token", func() {
			mockRepo.lookupErr = errors.New("connection refused")
			_, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, auth.ErrInvalidToken)).To(BeFalse())
		})

		It("should refuse a user deactivated since issuance", func() {
			mockRepo.creds["erika"].IsActive = false
			_, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(MatchError(auth.ErrUserInactive))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject an expired token", func() {
			shortGen := auth.NewJWTTokenGenerator(
				"access-secret-for-tests-0123456789ab",
				"refresh-secret-for-tests-0123456789a",
				-1*time.Minute,
				7*24*time.Hour,
			)
			// negative TTL falls back to the default, so sign directly
			shortGen.AccessTokenTTL = -1 * time.Minute
			token, err := shortGen.GenerateAccessToken(2, authz.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator(
				"a-completely-different-secret-123456",
				"another-completely-different-secret1",
				15*time.Minute,
				7*24*time.Hour,
			)
			token, err := otherGen.GenerateAccessToken(2, authz.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("GetUser", func() {
		It("should return the principal with its current role", func() {
			u, err := service.GetUser(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("erika"))
			Expect(u.Role).To(Equal(authz.RoleEmployee))
		})

		It("should refuse inactive users", func() {
			mockRepo.creds["erika"].IsActive = false
			_, err := service.GetUser(2)
			Expect(err).To(MatchError(auth.ErrUserInactive))
		})
	})
})
