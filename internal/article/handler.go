package article

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/transport"
	"github.com/frahmantamala/helpdesk/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(actorID int64, actorRole authz.Role, dto CreateArticleDTO) (*Article, error)
	Update(actorID int64, actorRole authz.Role, articleID int64, dto UpdateArticleDTO) (*Article, error)
	Delete(actorID int64, actorRole authz.Role, articleID int64) error
	GetByID(articleID int64) (*Article, error)
	List(limit, offset int) ([]*Article, error)
	Search(ctx context.Context, query string, limit int) ([]*Article, error)
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

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateArticleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(u.ID, u.Role, dto)
	if err != nil {
		h.Logger.Error("CreateArticle: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	a, err := h.Service.GetByID(articleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r, 20, 100)

	articles, err := h.Service.List(limit, offset)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list articles")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchArticles handles GET /articles/search?q=...&limit=...
func (h *Handler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := DefaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	articles, err := h.Service.Search(r.Context(), query, limit)
	if err != nil {
		h.Logger.Error("SearchArticles: service error", "error", err, "query", query)
		h.WriteError(w, http.StatusInternalServerError, "search failed")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"query":    query,
	})
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	var dto UpdateArticleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(u.ID, u.Role, articleID, dto)
	if err != nil {
		h.Logger.Error("UpdateArticle: service error", "error", err, "article_id", articleID, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := h.Service.Delete(u.ID, u.Role, articleID); err != nil {
		h.Logger.Error("DeleteArticle: service error", "error", err, "article_id", articleID, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

