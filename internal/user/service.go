package user

import (
	"log/slog"

	"github.com/frahmantamala/helpdesk/internal/authz"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account. Only admins may register users; the role
// defaults to employee when the payload omits it.
func (s *Service) Register(actorRole authz.Role, dto RegisterDTO) (*User, error) {
	if !authz.CanRegisterUsers(actorRole) {
		s.logger.Warn("register denied: admin role required", "actor_role", actorRole)
		return nil, ErrRegistrationDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		s.logger.Error("failed to check user uniqueness", "error", err)
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := NewUser(dto.Username, dto.Email, string(hash), dto.RoleOrDefault())
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// GetByID returns a single user record. Callers only ever look up their own
// profile; there is no parameterized lookup of other users on the API.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}
