package article

import (
	"strings"

	"github.com/frahmantamala/helpdesk/internal"
)

// CreateArticleDTO is the payload for creating a knowledge-base article.
type CreateArticleDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (dto CreateArticleDTO) Validate() error {
	if strings.TrimSpace(dto.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeInvalidTitle)
	}
	if len(dto.Title) > 255 {
		return internal.NewValidationError("title must be less than 255 characters", internal.ErrCodeInvalidTitle)
	}
	if strings.TrimSpace(dto.Content) == "" {
		return internal.NewValidationError("content is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateArticleDTO carries a partial update; nil fields are left untouched.
type UpdateArticleDTO struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (dto UpdateArticleDTO) Validate() error {
	if dto.Title == nil && dto.Content == nil {
		return internal.NewValidationError("at least one of title or content is required", internal.ErrCodeValidationFailed)
	}
	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return internal.NewValidationError("title cannot be empty", internal.ErrCodeInvalidTitle)
		}
		if len(*dto.Title) > 255 {
			return internal.NewValidationError("title must be less than 255 characters", internal.ErrCodeInvalidTitle)
		}
	}
	if dto.Content != nil && strings.TrimSpace(*dto.Content) == "" {
		return internal.NewValidationError("content cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
