package ticket

import (
	"strings"

	"github.com/frahmantamala/helpdesk/internal"
)

// CreateTicketDTO is the payload for opening a ticket. The creator is never
// taken from the payload; the server forces it from the request context.
type CreateTicketDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority,omitempty"`
	AssignedToID *int64 `json:"assigned_to,omitempty"`
}

func (dto CreateTicketDTO) Validate() error {
	if strings.TrimSpace(dto.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeInvalidTitle)
	}
	if len(dto.Title) > 255 {
		return internal.NewValidationError("title must be less than 255 characters", internal.ErrCodeInvalidTitle)
	}
	if dto.Priority != "" && !ValidPriority(dto.Priority) {
		return internal.NewValidationError("priority must be one of low, medium, high", internal.ErrCodeInvalidPriority)
	}
	return nil
}

// PriorityOrDefault returns the requested priority, defaulting to medium.
func (dto CreateTicketDTO) PriorityOrDefault() string {
	if dto.Priority == "" {
		return PriorityMedium
	}
	return dto.Priority
}

// UpdateTicketDTO carries a partial update; nil fields are left untouched.
type UpdateTicketDTO struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Status       *string `json:"status,omitempty"`
	AssignedToID *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateTicketDTO) Validate() error {
	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeInvalidTitle)
	}
	if dto.Priority != nil && !ValidPriority(*dto.Priority) {
		return internal.NewValidationError("priority must be one of low, medium, high", internal.ErrCodeInvalidPriority)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError("status must be one of open, in_progress, resolved", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ListFilter narrows ticket listings, mirroring the filterable fields of
// the API surface.
type ListFilter struct {
	Priority string
	Status   string
}
