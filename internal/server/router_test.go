package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passguard/internal/scoring"
)

func newTestAPI(t *testing.T, cfg ServerConfig) (*API, *MemoryFileStore) {
	t.Helper()
	store, err := NewMemoryFileStore("")
	if err != nil {
		t.Fatalf("NewMemoryFileStore: %v", err)
	}
	normalizeConfig(&cfg)
	auth := NewAuth(nil, cfg)
	checker := scoring.NewChecker(scoring.DefaultWeakWordlist(), scoring.DefaultBannedWordlist())
	return NewAPI(auth, store, checker, nil, cfg), store
}

func postCheck(t *testing.T, url, password string) *http.Response {
	t.Helper()
	rawBody, _ := json.Marshal(map[string]any{"password": password})
	req, _ := http.NewRequest(http.MethodPost, url+"/api/check", bytes.NewReader(rawBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/check failed: %v", err)
	}
	return resp
}

func TestRouterHealthz(t *testing.T) {
	api, _ := newTestAPI(t, ServerConfig{})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	response, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
}

func TestRouterCheckPassword(t *testing.T) {
	api, store := newTestAPI(t, ServerConfig{})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp := postCheck(t, server.URL, "Xk9#mQ2vLp!7")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Score != 4 || body.Strength != "Perfect" {
		t.Fatalf("expected 4/Perfect, got %d/%s", body.Score, body.Strength)
	}

	checks := store.ListChecks(10)
	if len(checks) != 1 {
		t.Fatalf("expected 1 recorded check, got %d", len(checks))
	}
	if checks[0].PasswordLength != 12 || checks[0].Score != 4 {
		t.Fatalf("unexpected record %+v", checks[0])
	}
}

func TestRouterCheckEmptyPassword(t *testing.T) {
	api, _ := newTestAPI(t, ServerConfig{})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp := postCheck(t, server.URL, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRouterCheckRateLimited(t *testing.T) {
	api, store := newTestAPI(t, ServerConfig{
		Limits: LimitConfig{CheckRPM: 2, GenerateRPM: 30},
	})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	for i := 0; i < 2; i++ {
		resp := postCheck(t, server.URL, "Abcdef12")
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
	resp := postCheck(t, server.URL, "Abcdef12")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "rate limited" {
		t.Fatalf("expected rate limited error, got %q", body["error"])
	}
	if store.GetMetricsOverview().RateLimited != 1 {
		t.Fatalf("expected 1 rate limited event in overview")
	}
}

func TestRouterGenerate(t *testing.T) {
	api, store := newTestAPI(t, ServerConfig{})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/generate")
	if err != nil {
		t.Fatalf("GET /api/generate failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Password) != scoring.DefaultPasswordLength {
		t.Fatalf("expected %d chars, got %d", scoring.DefaultPasswordLength, len(body.Password))
	}
	overview := store.GetMetricsOverview()
	if overview.TotalGenerations != 1 {
		t.Fatalf("expected 1 generation, got %d", overview.TotalGenerations)
	}
	audit := store.ListAudit(10)
	if len(audit) != 1 || audit[0].Action != "generate_password" {
		t.Fatalf("expected generate_password audit event, got %+v", audit)
	}
	for _, event := range audit {
		if strings.Contains(event.Detail, body.Password) {
			t.Fatalf("generated password leaked into audit detail")
		}
	}

	resp2, err := http.Get(server.URL + "/api/generate?length=24")
	if err != nil {
		t.Fatalf("GET /api/generate?length=24 failed: %v", err)
	}
	defer resp2.Body.Close()
	var body2 GenerateResponse
	if err := json.NewDecoder(resp2.Body).Decode(&body2); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body2.Password) != 24 {
		t.Fatalf("expected 24 chars, got %d", len(body2.Password))
	}
}

func TestRouterLoginWithoutDatabase(t *testing.T) {
	api, _ := newTestAPI(t, ServerConfig{
		Security: SecurityConfig{AdminToken: "secret-token"},
	})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	rawBody, _ := json.Marshal(map[string]string{"username": "admin", "password": "Xk9#mQ2vLp!7"})
	resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(rawBody))
	if err != nil {
		t.Fatalf("login without database failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "passguard_session", Value: "stale-token"})
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("logout without database failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
}

func TestRouterAdminAuth(t *testing.T) {
	api, _ := newTestAPI(t, ServerConfig{
		Security: SecurityConfig{AdminToken: "secret-token"},
	})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/admin/metrics/overview")
	if err != nil {
		t.Fatalf("overview without auth failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/admin/metrics/overview", nil)
	req.Header.Set("X-Admin-Token", "secret-token")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("overview with token failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
	var overview MetricsOverview
	if err := json.NewDecoder(resp2.Body).Decode(&overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.GeneratedAt == "" {
		t.Fatalf("expected generated_at to be set")
	}
}
