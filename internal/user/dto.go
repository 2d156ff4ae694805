package user

import (
	"strings"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/authz"
)

// RegisterDTO is the payload for creating a user account. Only admins may
// call the endpoint, so the role field is trusted once validated; an omitted
// role falls back to employee.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Email) == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Role != "" {
		if _, err := authz.ParseRole(dto.Role); err != nil {
			return internal.NewValidationFieldError("role", "role must be one of admin, employee, agent", internal.ErrCodeInvalidRole)
		}
	}
	return nil
}

// RoleOrDefault returns the requested role, or the default when omitted.
func (dto RegisterDTO) RoleOrDefault() authz.Role {
	if dto.Role == "" {
		return authz.DefaultRole
	}
	role, err := authz.ParseRole(dto.Role)
	if err != nil {
		return authz.DefaultRole
	}
	return role
}
