package postgres

import (
	"database/sql"
	"errors"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByUsername(username string) (*auth.Credentials, error) {
	var creds auth.Credentials
	var role string

	query := `SELECT id, password_hash, role, is_active FROM users WHERE username = ?`
	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&creds.UserID, &creds.PasswordHash, &role, &creds.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	creds.Role = authz.Role(role)
	return &creds, nil
}

func (r *Repository) GetUser(userID int64) (*auth.User, bool, error) {
	var u auth.User
	var role string
	var active bool

	query := `SELECT id, username, role, is_active FROM users WHERE id = ?`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&u.ID, &u.Username, &role, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, internal.ErrUserNotFound
		}
		return nil, false, err
	}

	u.Role = authz.Role(role)
	return &u, active, nil
}
