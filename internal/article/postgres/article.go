package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/helpdesk/internal/article"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// ArticleRepository implements the article.Repository interface using GORM
// for CRUD and a raw sqlx query for Postgres full-text search.
type ArticleRepository struct {
	db     *gorm.DB
	search *sqlx.DB
}

func NewArticleRepository(db *gorm.DB, search *sqlx.DB) article.Repository {
	return &ArticleRepository{db: db, search: search}
}

func (r *ArticleRepository) Create(a *article.Article) error {
	return r.db.Create(a).Error
}

func (r *ArticleRepository) GetByID(id int64) (*article.Article, error) {
	var a article.Article
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) GetAll(limit, offset int) ([]*article.Article, error) {
	var articles []*article.Article
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, err
}

func (r *ArticleRepository) Update(a *article.Article) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *ArticleRepository) Delete(id int64) error {
	return r.db.Delete(&article.Article{}, id).Error
}

// searchQuery ranks by full-text relevance over title and content. Ties are
// broken by recency and then id so ordering is stable for a fixed corpus.
const searchQuery = `
SELECT id, title, content, created_by, created_at, updated_at
FROM articles
WHERE to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', $1)
ORDER BY ts_rank(to_tsvector('english', title || ' ' || content), plainto_tsquery('english', $1)) DESC,
         created_at DESC,
         id DESC
LIMIT $2`

type searchRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *ArticleRepository) Search(ctx context.Context, query string, limit int) ([]*article.Article, error) {
	var rows []searchRow
	if err := r.search.SelectContext(ctx, &rows, searchQuery, query, limit); err != nil {
		return nil, err
	}

	articles := make([]*article.Article, len(rows))
	for i, row := range rows {
		articles[i] = &article.Article{
			ID:          row.ID,
			Title:       row.Title,
			Content:     row.Content,
			CreatedByID: row.CreatedBy,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return articles, nil
}
