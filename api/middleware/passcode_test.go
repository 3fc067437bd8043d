package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func passcodeHandler(passcode string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Passcode(passcode, nil)(next)
}

func TestPasscodeDisabledWhenEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	passcodeHandler("").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with no passcode configured", rec.Code)
	}
}

func TestPasscodeRejectsMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	passcodeHandler("secret").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPasscodeRejectsWrongValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set("X-Dashboard-Passcode", "guess")
	rec := httptest.NewRecorder()
	passcodeHandler("secret").ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPasscodeAcceptsMatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set("X-Dashboard-Passcode", "secret")
	rec := httptest.NewRecorder()
	passcodeHandler("secret").ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
