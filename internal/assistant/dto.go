package assistant

import (
	"strings"
)

// QuestionDTO is the payload for the answer endpoint.
type QuestionDTO struct {
	Question string `json:"question"`
}

func (dto QuestionDTO) Validate() error {
	if strings.TrimSpace(dto.Question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// Source identifies a knowledge-base article used as grounding context.
type Source struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Answer is the successful result of the pipeline. Confidence is a crude
// proxy for how much grounding context existed, not a calibrated
// probability; the formula is part of the API contract.
type Answer struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []Source `json:"sources"`
}
