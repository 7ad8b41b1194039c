package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/apperr"
)

func runFailure(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/tailor", nil)
	Failure(c, err)

	var body ErrorResponse
	if decodeErr := json.Unmarshal(w.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body: %v", decodeErr)
	}
	return w, body
}

func TestFailureStatusByKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("API key is required."), http.StatusBadRequest, "validation_error"},
		{apperr.UnsupportedFormat("bad ext"), http.StatusBadRequest, "unsupported_format"},
		{apperr.Auth("bad key", nil), http.StatusUnauthorized, "auth_error"},
		{apperr.NotFound("missing"), http.StatusNotFound, "not_found"},
		{apperr.RateLimited("slow down", nil), http.StatusTooManyRequests, "rate_limited"},
		{apperr.Extraction("corrupt", nil), http.StatusUnprocessableEntity, "extraction_error"},
		{apperr.Provider("down", nil), http.StatusBadGateway, "provider_error"},
		{apperr.Scrape("no text", nil), http.StatusBadGateway, "scrape_error"},
		{apperr.Timeout("slow", nil), http.StatusGatewayTimeout, "timeout"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		w, body := runFailure(t, tc.err)
		if w.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, w.Code)
		}
		if body.Error.Code != tc.code {
			t.Fatalf("%v: expected code %q, got %q", tc.err, tc.code, body.Error.Code)
		}
	}
}

func TestFailureMalformedCarriesRaw(t *testing.T) {
	w, body := runFailure(t, apperr.Malformed("Could not parse the model response.", "not json", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	details, ok := body.Error.Details.(map[string]any)
	if !ok || details["raw"] != "not json" {
		t.Fatalf("expected raw text in details, got %#v", body.Error.Details)
	}
}

func TestFailureHidesInternalText(t *testing.T) {
	_, body := runFailure(t, errors.New("pq: password authentication failed"))
	if body.Error.Message == "pq: password authentication failed" {
		t.Fatalf("internal error text leaked")
	}
}
