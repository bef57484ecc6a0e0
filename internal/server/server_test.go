package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentionpulse/internal/core"
	"mentionpulse/internal/insights"
)

type stubStore struct {
	monitorIDs []string
	results    []core.RawResult
	err        error
}

func (s *stubStore) MonitorIDs(_ context.Context, _ string) ([]string, error) {
	return s.monitorIDs, s.err
}

func (s *stubStore) ResultsWindow(_ context.Context, _ []string, _ time.Time, _ int) ([]core.RawResult, error) {
	return s.results, s.err
}

type stubPlans struct {
	tier core.PlanTier
}

func (s *stubPlans) PlanForUser(_ context.Context, _ string) (core.PlanTier, error) {
	return s.tier, nil
}

func newTestServer(store *stubStore, tier core.PlanTier) *Server {
	service := insights.NewService(store, &stubPlans{tier: tier}, nil)
	return NewServer(":0", service, time.Minute)
}

func TestHandleInsights_RequiresUserHeader(t *testing.T) {
	server := newTestServer(&stubStore{}, core.TierFree)

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected error message in body")
	}
}

func TestHandleInsights_RejectsBadRange(t *testing.T) {
	server := newTestServer(&stubStore{}, core.TierFree)

	req := httptest.NewRequest(http.MethodGet, "/api/insights?range=14d", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown range, got %d", rec.Code)
	}
}

func TestHandleInsights_DefaultsRange(t *testing.T) {
	server := newTestServer(&stubStore{}, core.TierPro)

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with default range, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var resp insights.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Plan != "pro" {
		t.Errorf("Expected plan pro, got %q", resp.Plan)
	}
}

func TestHandleInsights_ComputesTopics(t *testing.T) {
	now := time.Now()
	store := &stubStore{
		monitorIDs: []string{"m1"},
		results: []core.RawResult{
			{Title: "pricing complaint thread", Platform: core.PlatformReddit, CreatedAt: now.Add(-time.Hour)},
			{Title: "pricing seems steep", Platform: core.PlatformTwitter, CreatedAt: now.Add(-2 * time.Hour)},
			{Title: "pricing page confusing", Platform: core.PlatformReddit, CreatedAt: now.Add(-3 * time.Hour)},
		},
	}
	server := newTestServer(store, core.TierPro)

	req := httptest.NewRequest(http.MethodGet, "/api/insights?range=7d", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp insights.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Topics) != 1 {
		t.Fatalf("Expected 1 topic, got %d", len(resp.Topics))
	}
	if resp.TotalResults != 3 {
		t.Errorf("Expected totalResults 3, got %d", resp.TotalResults)
	}
}

func TestHandleInsights_StorageErrorIsInternal(t *testing.T) {
	server := newTestServer(&stubStore{err: errors.New("db locked")}, core.TierFree)

	req := httptest.NewRequest(http.MethodGet, "/api/insights?range=7d", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for storage failure, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&stubStore{}, core.TierFree)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
