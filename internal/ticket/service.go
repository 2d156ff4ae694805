package ticket

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/filestore"
)

// Repository defines the data access methods for tickets. List applies the
// row-level scope so out-of-scope rows never leave the database layer.
type Repository interface {
	Create(t *Ticket) error
	GetByID(id int64) (*Ticket, error)
	List(scope authz.TicketScope, filter ListFilter, limit, offset int) ([]*Ticket, error)
	Update(t *Ticket) error
	Delete(id int64) error
	SetAttachment(id int64, url, name string) error
}

type Service struct {
	repo   Repository
	files  filestore.Store
	logger *slog.Logger
}

func NewService(repo Repository, files filestore.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
	}
}

// Create opens a ticket for the acting user. The creator always comes from
// the authenticated principal, regardless of anything in the payload.
func (s *Service) Create(actor *auth.User, dto CreateTicketDTO) (*Ticket, error) {
	if actor == nil || !authz.CanCreateTicket(actor.Role) {
		return nil, ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Ticket{
		Title:        dto.Title,
		Description:  dto.Description,
		Priority:     dto.PriorityOrDefault(),
		Status:       StatusOpen,
		CreatedByID:  actor.ID,
		AssignedToID: dto.AssignedToID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create ticket", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("ticket created",
		"ticket_id", t.ID,
		"created_by", actor.ID,
		"priority", t.Priority)

	return t, nil
}

// GetByID returns a single ticket if the actor's scope allows seeing it.
// Denial is access-denied, not not-found; listings simply omit such rows.
func (s *Service) GetByID(actor *auth.User, ticketID int64) (*Ticket, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}

	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}

	scope := authz.TicketScopeFor(actor.Role, actor.ID)
	if !scope.Allows(t.CreatedByID, t.AssignedToID) {
		s.logger.Warn("ticket read denied by scope", "ticket_id", ticketID, "user_id", actor.ID, "role", actor.Role)
		return nil, ErrAccessDenied
	}

	return t, nil
}

// List returns the tickets visible to the actor: employees see their own,
// agents see assigned ones, admins see all. A missing principal yields an
// empty result rather than an error.
func (s *Service) List(actor *auth.User, filter ListFilter, limit, offset int) ([]*Ticket, error) {
	scope := authz.TicketScope{Kind: authz.ScopeNone}
	if actor != nil {
		scope = authz.TicketScopeFor(actor.Role, actor.ID)
	}
	if scope.Kind == authz.ScopeNone {
		return []*Ticket{}, nil
	}

	tickets, err := s.repo.List(scope, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list tickets", "error", err)
		return nil, err
	}

	return tickets, nil
}

// Update applies the ownership-or-admin rule before persisting changes.
func (s *Service) Update(actor *auth.User, ticketID int64, dto UpdateTicketDTO) (*Ticket, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyTicket(actor.Role, actor.ID, t.CreatedByID) {
		s.logger.Warn("ticket update denied",
			"ticket_id", ticketID,
			"user_id", actor.ID,
			"role", actor.Role,
			"creator_id", t.CreatedByID)
		return nil, ErrAccessDenied
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.AssignedToID != nil {
		t.AssignedToID = dto.AssignedToID
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update ticket", "error", err, "ticket_id", ticketID)
		return nil, err
	}

	return t, nil
}

// Delete applies the ownership-or-admin rule before removing the ticket.
func (s *Service) Delete(actor *auth.User, ticketID int64) error {
	if actor == nil {
		return ErrAccessDenied
	}

	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return err
	}

	if !authz.CanModifyTicket(actor.Role, actor.ID, t.CreatedByID) {
		s.logger.Warn("ticket delete denied",
			"ticket_id", ticketID,
			"user_id", actor.ID,
			"role", actor.Role,
			"creator_id", t.CreatedByID)
		return ErrAccessDenied
	}

	if err := s.repo.Delete(ticketID); err != nil {
		s.logger.Error("failed to delete ticket", "error", err, "ticket_id", ticketID)
		return err
	}

	s.logger.Info("ticket deleted", "ticket_id", ticketID, "deleted_by", actor.ID)
	return nil
}

// AttachFile stores an attachment and records its reference on the ticket,
// gated like update. The gate runs before the file touches disk so a denied
// or misaddressed upload never leaves anything behind in the store.
func (s *Service) AttachFile(ctx context.Context, actor *auth.User, ticketID int64, filename string, file io.Reader) (*Ticket, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}

	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyTicket(actor.Role, actor.ID, t.CreatedByID) {
		s.logger.Warn("ticket attachment denied",
			"ticket_id", ticketID,
			"user_id", actor.ID,
			"role", actor.Role,
			"creator_id", t.CreatedByID)
		return nil, ErrAccessDenied
	}

	url, err := s.files.Save(ctx, filename, file)
	if err != nil {
		s.logger.Error("failed to store ticket attachment", "error", err, "ticket_id", ticketID)
		return nil, internal.NewInternalError("failed to store attachment", err)
	}

	if err := s.repo.SetAttachment(ticketID, url, filename); err != nil {
		s.logger.Error("failed to set ticket attachment", "error", err, "ticket_id", ticketID)
		return nil, err
	}

	t.AttachmentURL = &url
	t.AttachmentName = &filename
	return t, nil
}
