package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
)

type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestWriteSuccessHasNoEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"date": "2025-06-10"})

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Error("payload wrapped in a data envelope")
	}
	if body["date"] != "2025-06-10" {
		t.Errorf("body = %v", body)
	}
}

func TestWriteErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "invalid date parameter").
		WithDetails(map[string]any{"value": "yesterday", "expected": "2006-01-02"})
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error != "invalid date parameter" || body.Code != "VALIDATION_ERROR" {
		t.Errorf("body = %+v", body)
	}
	if body.Details["expected"] != "2006-01-02" {
		t.Errorf("details = %v", body.Details)
	}
}

func TestWriteErrorUpstreamKeepsDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeUpstream, "square returned status 503").
		WithDetails(map[string]any{"upstream_status": float64(503)})
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 502 {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Code != "UPSTREAM_ERROR" || body.Details["upstream_status"] != float64(503) {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorInternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("sql: connection refused on 10.0.0.3"))

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error != "internal server error" || body.Code != "INTERNAL_ERROR" {
		t.Errorf("body = %+v, internal details must not leak", body)
	}
	if body.Details != nil {
		t.Errorf("details = %v, want none", body.Details)
	}
}

func TestWriteErrorConfigurationMasksMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeConfiguration, "square access token missing"))

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error != "internal server error" {
		t.Errorf("error = %q, configuration faults are not the caller's business", body.Error)
	}
	if body.Code != "CONFIGURATION_ERROR" {
		t.Errorf("code = %q", body.Code)
	}
}
