package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/ticket"
	"gorm.io/gorm"
)

// TicketRepository implements the ticket.Repository interface using GORM
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(t *ticket.Ticket) error {
	return r.db.Create(t).Error
}

func (r *TicketRepository) GetByID(id int64) (*ticket.Ticket, error) {
	var t ticket.Ticket
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List applies the role scope as a row-level filter so callers never see
// tickets outside their visibility.
func (r *TicketRepository) List(scope authz.TicketScope, filter ticket.ListFilter, limit, offset int) ([]*ticket.Ticket, error) {
	var tickets []*ticket.Ticket

	q := r.db.Model(&ticket.Ticket{})

	switch scope.Kind {
	case authz.ScopeNone:
		return []*ticket.Ticket{}, nil
	case authz.ScopeCreator:
		q = q.Where("created_by = ?", scope.UserID)
	case authz.ScopeAssignee:
		q = q.Where("assigned_to = ?", scope.UserID)
	case authz.ScopeAll:
		// no filter
	}

	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) Update(t *ticket.Ticket) error {
	t.UpdatedAt = time.Now()
	return r.db.Save(t).Error
}

func (r *TicketRepository) Delete(id int64) error {
	return r.db.Delete(&ticket.Ticket{}, id).Error
}

func (r *TicketRepository) SetAttachment(id int64, url, name string) error {
	return r.db.Model(&ticket.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attachment_url":  url,
			"attachment_name": name,
			"updated_at":      time.Now(),
		}).Error
}
