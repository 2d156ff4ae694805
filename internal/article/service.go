package article

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/helpdesk/internal/authz"
)

// DefaultSearchLimit caps search results when the caller does not set one.
const DefaultSearchLimit = 20

// Repository defines the data access methods for articles.
type Repository interface {
	Create(a *Article) error
	GetByID(id int64) (*Article, error)
	GetAll(limit, offset int) ([]*Article, error)
	Update(a *Article) error
	Delete(id int64) error
	Search(ctx context.Context, query string, limit int) ([]*Article, error)
}

// Service handles knowledge-base business logic. Reads are open to every
// authenticated user; mutations require the admin role.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(actorID int64, actorRole authz.Role, dto CreateArticleDTO) (*Article, error) {
	if !authz.CanManageArticles(actorRole) {
		s.logger.Warn("article create denied", "actor_id", actorID, "actor_role", actorRole)
		return nil, ErrAdminRequired
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := NewArticle(dto.Title, dto.Content, actorID)
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create article", "error", err, "actor_id", actorID)
		return nil, err
	}

	s.logger.Info("article created", "article_id", a.ID, "title", a.Title, "created_by", actorID)
	return a, nil
}

func (s *Service) Update(actorID int64, actorRole authz.Role, articleID int64, dto UpdateArticleDTO) (*Article, error) {
	if !authz.CanManageArticles(actorRole) {
		s.logger.Warn("article update denied", "actor_id", actorID, "actor_role", actorRole, "article_id", articleID)
		return nil, ErrAdminRequired
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		a.Title = *dto.Title
	}
	if dto.Content != nil {
		a.Content = *dto.Content
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update article", "error", err, "article_id", articleID)
		return nil, err
	}

	return a, nil
}

func (s *Service) Delete(actorID int64, actorRole authz.Role, articleID int64) error {
	if !authz.CanManageArticles(actorRole) {
		s.logger.Warn("article delete denied", "actor_id", actorID, "actor_role", actorRole, "article_id", articleID)
		return ErrAdminRequired
	}

	if _, err := s.repo.GetByID(articleID); err != nil {
		return err
	}

	if err := s.repo.Delete(articleID); err != nil {
		s.logger.Error("failed to delete article", "error", err, "article_id", articleID)
		return err
	}

	s.logger.Info("article deleted", "article_id", articleID, "deleted_by", actorID)
	return nil
}

func (s *Service) GetByID(articleID int64) (*Article, error) {
	return s.repo.GetByID(articleID)
}

// List returns articles most-recent-first. All articles are visible to every
// authenticated role.
func (s *Service) List(limit, offset int) ([]*Article, error) {
	articles, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list articles", "error", err)
		return nil, err
	}
	return articles, nil
}

// Search runs full-text relevance search over title and content. A blank
// query yields an empty result, never the whole corpus and never an error.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Article, error) {
	if strings.TrimSpace(query) == "" {
		return []*Article{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	articles, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error("article search failed", "error", err, "query", query)
		return nil, err
	}
	return articles, nil
}
