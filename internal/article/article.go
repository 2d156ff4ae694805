package article

import (
	"time"

	"github.com/frahmantamala/helpdesk/internal"
)

// Article is a knowledge-base entry. Content is markdown; timestamps are
// server-assigned and updated_at never precedes created_at.
type Article struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content" gorm:"not null"`
	CreatedByID int64     `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

var (
	ErrArticleNotFound = internal.ErrArticleNotFound
	ErrAdminRequired   = internal.NewForbiddenError("admin role required for article management", internal.ErrCodeAccessDenied)
)

func NewArticle(title, content string, createdByID int64) *Article {
	now := time.Now()
	return &Article{
		Title:       title,
		Content:     content,
		CreatedByID: createdByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
