package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/slotpitch/league-api/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_StatusAndReason(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "invalid scope", err: usecase.ErrInvalidScope, wantStatus: http.StatusBadRequest, wantReason: "invalidScope"},
		{name: "invalid input", err: usecase.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantReason: "invalidRequest"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantReason: "unauthorized"},
		{name: "admin required", err: usecase.ErrAdminRequired, wantStatus: http.StatusForbidden, wantReason: "adminRequired"},
		{name: "forbidden", err: usecase.ErrForbidden, wantStatus: http.StatusForbidden, wantReason: "forbidden"},
		{name: "not found", err: usecase.ErrNotFound, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "slot conflict", err: usecase.ErrSlotConflict, wantStatus: http.StatusConflict, wantReason: "slotConflict"},
		{name: "slot unavailable", err: usecase.ErrSlotUnavailable, wantStatus: http.StatusConflict, wantReason: "slotUnavailable"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(context.Background(), fmt.Errorf("wrapped: %w", tt.err))
			if mapped.HTTPStatus != tt.wantStatus {
				t.Fatalf("status = %d, want %d", mapped.HTTPStatus, tt.wantStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("reason = %q, want %q", mapped.Reason, tt.wantReason)
			}
		})
	}
}

func TestMapError_WrappedAdminRequiredStaysDistinct(t *testing.T) {
	err := fmt.Errorf("%w: user %q holds no Admin membership", usecase.ErrAdminRequired, "usr-marco")
	mapped := mapError(context.Background(), err)
	if mapped.Reason != "adminRequired" {
		t.Fatalf("reason = %q, want adminRequired rather than plain forbidden", mapped.Reason)
	}
}
