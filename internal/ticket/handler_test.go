package ticket_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/helpdesk/internal/auth"
	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/ticket"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockTicketService implements ticket.ServiceAPI for handler testing
type MockTicketService struct {
	result *ticket.Ticket
	err    error
}

func (m *MockTicketService) Create(_ *auth.User, _ ticket.CreateTicketDTO) (*ticket.Ticket, error) {
	return m.result, m.err
}

func (m *MockTicketService) GetByID(_ *auth.User, _ int64) (*ticket.Ticket, error) {
	return m.result, m.err
}

func (m *MockTicketService) List(_ *auth.User, _ ticket.ListFilter, _, _ int) ([]*ticket.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*ticket.Ticket{m.result}, nil
}

func (m *MockTicketService) Update(_ *auth.User, _ int64, _ ticket.UpdateTicketDTO) (*ticket.Ticket, error) {
	return m.result, m.err
}

func (m *MockTicketService) Delete(_ *auth.User, _ int64) error {
	return m.err
}

func (m *MockTicketService) AttachFile(_ context.Context, _ *auth.User, _ int64, _ string, _ io.Reader) (*ticket.Ticket, error) {
	return m.result, m.err
}

var _ = Describe("Ticket Handler", func() {
	var (
		mockService *MockTicketService
		handler     *ticket.Handler
	)

	principal := &auth.User{ID: 2, Username: "erika", Role: authz.RoleEmployee}

	BeforeEach(func() {
		mockService = &MockTicketService{
			result: &ticket.Ticket{ID: 7, Title: "Broken screen", Priority: ticket.PriorityMedium, Status: ticket.StatusOpen, CreatedByID: 2},
		}
		handler = ticket.NewHandler(mockService)
	})

	withUser := func(req *http.Request) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), auth.ContextUserKey, principal))
	}

	withURLParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	errorCode := func(body []byte) string {
		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(body, &resp)).To(Succeed())
		return resp.Error.Code
	}

	multipartBody := func(filename string) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("png bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())
		return body, writer.FormDataContentType()
	}

	Describe("GetTicket", func() {
		It("should map scope denials to 403", func() {
			mockService.err = ticket.ErrAccessDenied
			req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/v1/tickets/7", nil)), "id", "7")
			rec := httptest.NewRecorder()

			handler.GetTicket(rec, req)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec.Body.Bytes())).To(Equal("ACCESS_DENIED"))
		})

		It("should map a missing ticket to 404", func() {
			mockService.err = ticket.ErrTicketNotFound
			req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/v1/tickets/999", nil)), "id", "999")
			rec := httptest.NewRecorder()

			handler.GetTicket(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(errorCode(rec.Body.Bytes())).To(Equal("TICKET_NOT_FOUND"))
		})
	})

	Describe("CreateTicket", func() {
		It("should map validation failures to 400", func() {
			mockService.err = ticket.CreateTicketDTO{Title: "x", Priority: "urgent"}.Validate()
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString(`{"title":"x","priority":"urgent"}`)))
			rec := httptest.NewRecorder()

			handler.CreateTicket(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rec.Body.Bytes())).To(Equal("INVALID_PRIORITY"))
		})

		It("should map unknown failures to 500", func() {
			mockService.err = io.ErrUnexpectedEOF
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString(`{"title":"x"}`)))
			rec := httptest.NewRecorder()

			handler.CreateTicket(rec, req)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("UploadAttachment", func() {
		It("should return 403 when the actor may not modify the ticket", func() {
			mockService.err = ticket.ErrAccessDenied
			body, contentType := multipartBody("evil.html")
			req := withURLParam(withUser(httptest.NewRequest(http.MethodPost, "/api/v1/tickets/7/attachment", body)), "id", "7")
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.UploadAttachment(rec, req)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec.Body.Bytes())).To(Equal("ACCESS_DENIED"))
		})

		It("should require the file field", func() {
			req := withURLParam(withUser(httptest.NewRequest(http.MethodPost, "/api/v1/tickets/7/attachment", bytes.NewBufferString(""))), "id", "7")
			req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
			rec := httptest.NewRecorder()

			handler.UploadAttachment(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return the updated ticket on success", func() {
			url := "/uploads/abc_screen.png"
			name := "screen.png"
			mockService.result.AttachmentURL = &url
			mockService.result.AttachmentName = &name

			body, contentType := multipartBody("screen.png")
			req := withURLParam(withUser(httptest.NewRequest(http.MethodPost, "/api/v1/tickets/7/attachment", body)), "id", "7")
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.UploadAttachment(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp ticket.Ticket
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.AttachmentURL).NotTo(BeNil())
			Expect(*resp.AttachmentURL).To(Equal(url))
		})
	})
})
