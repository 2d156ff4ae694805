package ticket

import (
	"time"

	"github.com/frahmantamala/helpdesk/internal"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Ticket is a support request. The creator is set from the request context
// on creation and never changes; the assignee is a weak reference that the
// database clears when the assigned user is removed.
type Ticket struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description"`
	Priority       string    `json:"priority" gorm:"default:medium"`
	Status         string    `json:"status" gorm:"default:open"`
	CreatedByID    int64     `json:"created_by" gorm:"column:created_by;not null"`
	AssignedToID   *int64    `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	AttachmentURL  *string   `json:"attachment_url,omitempty" gorm:"column:attachment_url"`
	AttachmentName *string   `json:"attachment_name,omitempty" gorm:"column:attachment_name"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

var (
	ErrTicketNotFound = internal.ErrTicketNotFound
	ErrAccessDenied   = internal.ErrAccessDenied
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}
