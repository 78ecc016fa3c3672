package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func up(ctx context.Context) error   { return nil }
func fail(ctx context.Context) error { return errors.New("connection refused") }

func TestRunWorstStatusWins(t *testing.T) {
	c := NewChecker()
	c.Register("engine", PingCheck(up, true))
	c.Register("redis", PingCheck(fail, false))
	if got := c.Run(context.Background()).Status; got != StatusDegraded {
		t.Errorf("status = %q, want degraded", got)
	}

	c.Register("source", PingCheck(fail, true))
	report := c.Run(context.Background())
	if report.Status != StatusDown {
		t.Errorf("status = %q, want down", report.Status)
	}
	if report.Components["source"].Message != "connection refused" {
		t.Errorf("message = %q", report.Components["source"].Message)
	}
}

func TestReadyHandler(t *testing.T) {
	c := NewChecker()
	c.Register("redis", PingCheck(fail, false))

	rec := httptest.NewRecorder()
	c.ReadyHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("degraded service should be ready, got %d", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != StatusDegraded {
		t.Errorf("status = %q", report.Status)
	}

	c.Register("engine", PingCheck(fail, true))
	rec = httptest.NewRecorder()
	c.ReadyHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("down service code = %d, want 503", rec.Code)
	}
}

func TestSlowCheckReportsDown(t *testing.T) {
	c := NewChecker()
	c.Register("stuck", func(ctx context.Context) ComponentHealth {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return ComponentHealth{Status: StatusUp}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report := c.Run(ctx)
	if report.Status != StatusDown || report.Components["stuck"].Message != "check timed out" {
		t.Errorf("report = %+v", report)
	}
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewChecker().LiveHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || body["status"] != "alive" || body["uptime"] == "" {
		t.Errorf("live = %d %v", rec.Code, body)
	}
}
