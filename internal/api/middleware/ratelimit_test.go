package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Code
}

func TestRequestCategory(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts/acc-1/insights", categoryAnalysis},
		{"/api/v1/accounts/acc-1/insights/basic", categoryAnalysis},
		{"/api/v1/accounts/acc-1/metrics", categoryReports},
		{"/api/v1/accounts/acc-1/analysis/time", categoryReports},
		{"/api/v1/accounts/acc-1/analysis/heatmap/hourly", categoryReports},
	}

	for _, tt := range tests {
		if got := requestCategory(tt.path); got != tt.want {
			t.Errorf("requestCategory(%q) = %q, expected %q", tt.path, got, tt.want)
		}
	}
}

func TestRateLimit_AnalysisBucketExhausted(t *testing.T) {
	handler := RateLimit(1)(okHandler()) // анализ: burst 2, отчеты: burst 8

	insights := "/api/v1/accounts/acc-1/insights"
	for i := 0; i < 2; i++ {
		if code := doRequest(handler, insights); code != http.StatusOK {
			t.Fatalf("analysis request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := doRequest(handler, insights); code != http.StatusTooManyRequests {
		t.Errorf("analysis request beyond burst: expected 429, got %d", code)
	}

	// Ведро отчетов не тронуто шквалом запросов анализа
	if code := doRequest(handler, "/api/v1/accounts/acc-1/metrics"); code != http.StatusOK {
		t.Errorf("reports request should pass with its own bucket, got %d", code)
	}
}

func TestRateLimit_ReportsBucketIndependent(t *testing.T) {
	handler := RateLimit(1)(okHandler())

	metrics := "/api/v1/accounts/acc-1/metrics"
	for i := 0; i < 8; i++ {
		if code := doRequest(handler, metrics); code != http.StatusOK {
			t.Fatalf("reports request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := doRequest(handler, metrics); code != http.StatusTooManyRequests {
		t.Errorf("reports request beyond burst: expected 429, got %d", code)
	}

	// Бюджет анализа не съеден дашбордом
	if code := doRequest(handler, "/api/v1/accounts/acc-1/insights"); code != http.StatusOK {
		t.Errorf("analysis request should pass with its own bucket, got %d", code)
	}
}

func TestRateLimit_DisabledPassesAll(t *testing.T) {
	handler := RateLimit(0)(okHandler())

	for i := 0; i < 50; i++ {
		if code := doRequest(handler, "/api/v1/accounts/acc-1/insights"); code != http.StatusOK {
			t.Fatalf("request %d with disabled limiter: expected 200, got %d", i+1, code)
		}
	}
}
