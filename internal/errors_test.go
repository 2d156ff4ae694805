package internal_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/frahmantamala/helpdesk/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("AppError", func() {
	It("should be found through wrapped error chains", func() {
		wrapped := fmt.Errorf("%w: connection reset", internal.ErrTicketNotFound)
		appErr, ok := internal.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		Expect(appErr.Code).To(Equal(internal.ErrCodeTicketNotFound))
	})

	It("should not match plain errors", func() {
		_, ok := internal.IsAppError(fmt.Errorf("boom"))
		Expect(ok).To(BeFalse())
	})

	It("should map to the HTTP envelope without leaking the cause", func() {
		appErr := internal.NewInternalError("failed to store attachment", fmt.Errorf("disk full"))
		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring("failed to store attachment"))
		Expect(string(raw)).NotTo(ContainSubstring("disk full"))
	})

	It("should surface the first field message from validation details", func() {
		appErr := internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeValidationFailed)
		Expect(appErr.Error()).To(Equal("email is invalid"))
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})
})
