package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/transport"
	"github.com/frahmantamala/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	Answer(ctx context.Context, question string) (*Answer, error)
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

// Answer handles POST /assistant/answer. Generator outages surface as 503
// with a generic message; the diagnostic detail only goes to the logs.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto QuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	answer, err := h.Service.Answer(r.Context(), dto.Question)
	if err != nil {
		h.Logger.Error("Answer: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, answer)
}
