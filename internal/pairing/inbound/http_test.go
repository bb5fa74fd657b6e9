package inbound

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/otpbridge/internal/pkg/goerror"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
)

func newHTTPRouter(uc *fakeUC) *router.Router {
	r := router.NewRouter(router.Config{UUID: fixedID("cid"), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func TestIssueOTPEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {

		// Arrange
		uc := &fakeUC{}
		r := newHTTPRouter(uc)
		req := httptest.NewRequest(http.MethodPost, "/webhook/otp", strings.NewReader(`{"phone":"081234567890","otp":"482913"}`))
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
		}
		var env struct {
			Message string           `json:"message"`
			Data    IssueOTPResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Message != "otp has been stored" || !env.Data.Success {
			t.Fatalf("unexpected body %+v", env)
		}
		if len(uc.issued) != 1 || uc.issued[0].Phone != "081234567890" || uc.issued[0].OTP != "482913" {
			t.Fatalf("issued = %+v", uc.issued)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {

		// Arrange
		uc := &fakeUC{}
		r := newHTTPRouter(uc)
		req := httptest.NewRequest(http.MethodPost, "/webhook/otp", strings.NewReader(`{"phone":`))
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusBadRequest || len(uc.issued) != 0 {
			t.Fatalf("status = %d issued = %d", rec.Code, len(uc.issued))
		}
	})

	t.Run("ValidationError", func(t *testing.T) {

		// Arrange
		uc := &fakeUC{issueErr: goerror.NewInvalidInput(nil, "otp", "otp is a required field")}
		r := newHTTPRouter(uc)
		req := httptest.NewRequest(http.MethodPost, "/webhook/otp", strings.NewReader(`{"phone":"0812"}`))
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "otp is a required field") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})
}
