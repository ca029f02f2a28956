package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/sales-master/internal/domain/health"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func report(checks ...health.CheckResult) health.Report {
	return health.Report{
		ServiceName: "Sales Master",
		Status:      health.OverallStatus(checks),
		Uptime:      42 * time.Second,
		ObservedAt:  testTime,
		Checks:      checks,
	}
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
