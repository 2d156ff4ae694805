package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/transport"
	"github.com/frahmantamala/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	Register(actorRole authz.Role, dto RegisterDTO) (*User, error)
	GetByID(userID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me. It only ever returns the caller's
// own record.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctxUser, ok := auth.UserFromContext(r.Context())
	if !ok || ctxUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(ctxUser.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", ctxUser.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// Register handles POST /users. An admin may create accounts with any role.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctxUser, ok := auth.UserFromContext(r.Context())
	if !ok || ctxUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(ctxUser.Role, dto)
	if err != nil {
		h.Logger.Error("Register: service error", "error", err, "actor_id", ctxUser.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Register: user created", "user_id", u.ID, "role", u.Role, "created_by", ctxUser.ID)
	h.WriteJSON(w, http.StatusCreated, u)
}
