package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func serveWithRequestID(t *testing.T, inbound string) *httptest.ResponseRecorder {
	t.Helper()
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/sales?date=2025-06-10", nil)
	if inbound != "" {
		req.Header.Set("X-Request-Id", inbound)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDEchoesValidInbound(t *testing.T) {
	id := uuid.NewString()
	rec := serveWithRequestID(t, id)
	if got := rec.Header().Get("X-Request-Id"); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestRequestIDReplacesGarbageInbound(t *testing.T) {
	rec := serveWithRequestID(t, "not-a-uuid\n")
	got := rec.Header().Get("X-Request-Id")
	if got == "not-a-uuid\n" {
		t.Fatal("garbage inbound id was echoed back")
	}
	if uuid.Validate(got) != nil {
		t.Errorf("replacement id %q is not a uuid", got)
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	rec := serveWithRequestID(t, "")
	if got := rec.Header().Get("X-Request-Id"); uuid.Validate(got) != nil {
		t.Errorf("generated id %q is not a uuid", got)
	}
}

func TestRecovererMasksPanicDetails(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("square client exploded")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales?date=2025-06-10", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" || body.Error != "internal server error" {
		t.Errorf("body = %+v", body)
	}
}
