package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w
}

func TestRespond(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ErrValidation("end_time", "must be after start_time"), http.StatusBadRequest, "validation_error"},
		{"conflict", fmt.Errorf("commit: %w", ConflictError{ResourceID: "r1", Date: "2026-01-05", Time: "09:00"}), http.StatusConflict, "slot_taken"},
		{"unavailable", ErrDataUnavailable("rules", errors.New("timeout")), http.StatusServiceUnavailable, "availability_unavailable"},
		{"forbidden", ErrBusiness("forbidden"), http.StatusForbidden, "forbidden"},
		{"not found", ErrBusiness("appointment_not_found"), http.StatusNotFound, "appointment_not_found"},
		{"outside", ErrBusiness("outside_availability"), http.StatusUnprocessableEntity, "outside_availability"},
		{"invalid state", ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := respond(tc.err)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
		})
	}
}

func TestDataUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load: %w", ErrDataUnavailable("appointments", cause))
	if !IsDataUnavailable(err) {
		t.Fatal("expected data unavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
}
