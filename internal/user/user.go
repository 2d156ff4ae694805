package user

import (
	"time"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/authz"
)

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Role         authz.Role `json:"role" gorm:"not null;default:employee"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == authz.RoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

var (
	ErrNotFound           = internal.ErrUserNotFound
	ErrDuplicateUser      = internal.NewConflictError("username or email already taken", internal.ErrCodeDuplicateUser)
	ErrRegistrationDenied = internal.NewForbiddenError("only admins may register users", internal.ErrCodeAccessDenied)
)

func NewUser(username, email, passwordHash string, role authz.Role) *User {
	now := time.Now()
	if !role.Valid() {
		role = authz.DefaultRole
	}
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
