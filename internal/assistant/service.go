package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/article"
	"github.com/frahmantamala/helpdesk/internal/genai"
)

// retrievalLimit is how many articles ground each answer.
const retrievalLimit = 3

// mockConfidence is the fixed score reported in offline mode. The live path
// computes min(0.9 + k/10, 1.0) for k retrieved articles; the asymmetry is
// intentional so stub answers stay distinguishable from grounded ones.
const mockConfidence = 0.5

var (
	ErrEmptyQuestion = internal.NewValidationError("question is required", internal.ErrCodeEmptyQuestion)
	// ErrGeneratorUnavailable wraps any generator failure. The pipeline does
	// not retry; the message is the full user-facing response, diagnostic
	// detail stays in the logs.
	ErrGeneratorUnavailable = internal.NewUpstreamError("AI service is currently unavailable", internal.ErrCodeAssistantUnavailable, nil)
)

// Retriever finds the articles most relevant to a question.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]*article.Article, error)
}

type Service struct {
	retriever   Retriever
	generator   genai.TextGenerator
	mockMode    bool
	temperature float64
	logger      *slog.Logger
}

func NewService(retriever Retriever, generator genai.TextGenerator, mockMode bool, temperature float64, logger *slog.Logger) *Service {
	if temperature <= 0 {
		temperature = 0.3
	}
	return &Service{
		retriever:   retriever,
		generator:   generator,
		mockMode:    mockMode,
		temperature: temperature,
		logger:      logger,
	}
}

// Answer runs the retrieval-augmented pipeline: top-3 article retrieval,
// prompt assembly, one generation attempt, confidence scoring. Sources
// always list the retrieved articles on the success and mock paths.
func (s *Service) Answer(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	articles, err := s.retriever.Search(ctx, question, retrievalLimit)
	if err != nil {
		s.logger.Error("article retrieval failed", "error", err)
		return nil, err
	}

	sources := make([]Source, len(articles))
	for i, a := range articles {
		sources[i] = Source{ID: a.ID, Title: a.Title}
	}

	if s.mockMode {
		s.logger.Info("answering in mock mode", "retrieved", len(articles))
		return &Answer{
			Answer:     genai.MockAnswer,
			Confidence: mockConfidence,
			Sources:    sources,
		}, nil
	}

	prompt := BuildPrompt(articles, question)

	text, err := s.generator.Generate(ctx, prompt, s.temperature)
	if err != nil {
		s.logger.Error("generation failed", "error", err, "retrieved", len(articles))
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}

	confidence := 0.9 + float64(len(articles))/10
	if confidence > 1.0 {
		confidence = 1.0
	}

	s.logger.Info("answer generated",
		"retrieved", len(articles),
		"confidence", confidence)

	return &Answer{
		Answer:     text,
		Confidence: confidence,
		Sources:    sources,
	}, nil
}

// BuildPrompt assembles the generation prompt: an internal-support
// instruction, the retrieved articles as context blocks (title and content,
// separated by blank lines), the verbatim question, and the answer
// instruction.
func BuildPrompt(articles []*article.Article, question string) string {
	blocks := make([]string, len(articles))
	for i, a := range articles {
		blocks[i] = a.Title + "\n" + a.Content
	}
	contextText := strings.Join(blocks, "\n\n")

	return fmt.Sprintf(`You're an internal support AI. Use this context to answer the employee's question.

Context:
%s

Question:
%s

Answer in a professional and helpful manner:`, contextText, question)
}
