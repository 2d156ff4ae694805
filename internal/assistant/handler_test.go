package assistant_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/helpdesk/internal/assistant"
	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockService implements assistant.ServiceAPI for handler testing
type MockService struct {
	answer *assistant.Answer
	err    error
}

func (m *MockService) Answer(_ context.Context, question string) (*assistant.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

var _ = Describe("Assistant Handler", func() {
	var (
		mockService *MockService
		handler     *assistant.Handler
	)

	principal := &auth.User{ID: 2, Username: "erika", Role: authz.RoleEmployee}

	BeforeEach(func() {
		mockService = &MockService{
			answer: &assistant.Answer{
				Answer:     "Use the portal.",
				Confidence: 1.0,
				Sources:    []assistant.Source{{ID: 1, Title: "Password Reset"}},
			},
		}
		handler = assistant.NewHandler(mockService)
	})

	doRequest := func(body string, withUser bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/answer", bytes.NewBufferString(body))
		if withUser {
			req = req.WithContext(context.WithValue(req.Context(), auth.ContextUserKey, principal))
		}
		rec := httptest.NewRecorder()
		handler.Answer(rec, req)
		return rec
	}

	It("should require authentication", func() {
		rec := doRequest(`{"question":"how?"}`, false)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should return the answer payload on success", func() {
		rec := doRequest(`{"question":"how do I reset my password?"}`, true)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp assistant.Answer
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Answer).To(Equal("Use the portal."))
		Expect(resp.Confidence).To(BeNumerically("==", 1.0))
		Expect(resp.Sources).To(HaveLen(1))
	})

	It("should reject an empty question with 400", func() {
		rec := doRequest(`{"question":"  "}`, true)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a malformed body with 400", func() {
		rec := doRequest(`{not json`, true)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should map generator outages to 503 with a generic message", func() {
		mockService.err = fmt.Errorf("%w: upstream timeout", assistant.ErrGeneratorUnavailable)
		rec := doRequest(`{"question":"how?"}`, true)
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

		var resp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Error.Code).To(Equal("ASSISTANT_UNAVAILABLE"))
		Expect(resp.Error.Message).To(Equal("AI service is currently unavailable"))
		Expect(rec.Body.String()).NotTo(ContainSubstring("upstream timeout"))
	})

	It("should map unexpected failures to 500", func() {
		mockService.err = fmt.Errorf("something odd")
		rec := doRequest(`{"question":"how?"}`, true)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	})
})
