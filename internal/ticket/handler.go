package ticket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/transport"
	"github.com/frahmantamala/helpdesk/pkg/logger"
	"github.com/go-chi/chi"
)

// maxAttachmentSize caps attachment uploads at 10 MiB.
const maxAttachmentSize = 10 << 20

type ServiceAPI interface {
	Create(actor *auth.User, dto CreateTicketDTO) (*Ticket, error)
	GetByID(actor *auth.User, ticketID int64) (*Ticket, error)
	List(actor *auth.User, filter ListFilter, limit, offset int) ([]*Ticket, error)
	Update(actor *auth.User, ticketID int64, dto UpdateTicketDTO) (*Ticket, error)
	Delete(actor *auth.User, ticketID int64) error
	AttachFile(ctx context.Context, actor *auth.User, ticketID int64, filename string, file io.Reader) (*Ticket, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(u, dto)
	if err != nil {
		h.Logger.Error("CreateTicket: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateTicket: ticket created",
		"ticket_id", t.ID,
		"user_id", u.ID,
		"priority", t.Priority)

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticketID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	t, err := h.Service.GetByID(u, ticketID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	limit, offset := transport.Pagination(r, 20, 100)
	filter := ListFilter{
		Priority: r.URL.Query().Get("priority"),
		Status:   r.URL.Query().Get("status"),
	}

	tickets, err := h.Service.List(u, filter, limit, offset)
	if err != nil {
		h.Logger.Error("ListTickets: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticketID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	var dto UpdateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(u, ticketID, dto)
	if err != nil {
		h.Logger.Error("UpdateTicket: service error", "error", err, "ticket_id", ticketID, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticketID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	if err := h.Service.Delete(u, ticketID); err != nil {
		h.Logger.Error("DeleteTicket: service error", "error", err, "ticket_id", ticketID, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAttachment handles POST /tickets/{id}/attachment with a multipart
// "file" field. Storage goes through the file store; the ticket keeps only
// the reference URL.
func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticketID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	t, err := h.Service.AttachFile(r.Context(), u, ticketID, header.Filename, file)
	if err != nil {
		h.Logger.Error("UploadAttachment: service error", "error", err, "ticket_id", ticketID, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}
