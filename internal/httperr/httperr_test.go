package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnvelopeShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "Booking not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Status != "error" || env.Code != 404 || env.Message != "Booking not found" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("data = %v, want null", env.Data)
	}
}

func TestFromErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, ErrBusiness("invalid_rating", "Rating must be between 1 and 5"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("business error status = %d, want 400", w.Code)
	}

	var env Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Message != "Rating must be between 1 and 5" {
		t.Fatalf("message = %q", env.Message)
	}

	// Unknown errors never leak their text.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	FromError(c, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("internal error status = %d, want 500", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Message != "An unexpected error occurred" {
		t.Fatalf("message = %q, internal detail leaked", env.Message)
	}
}

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("duplicate_review", "This booking has already been reviewed")
	if !IsBusiness(err, "duplicate_review") {
		t.Error("IsBusiness should match the code")
	}
	if IsBusiness(err, "forbidden") {
		t.Error("IsBusiness should not match a different code")
	}
	if IsBusiness(errors.New("plain"), "duplicate_review") {
		t.Error("plain errors are not business errors")
	}
}
