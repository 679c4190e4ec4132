package server

import (
	"path/filepath"
	"testing"
)

func TestMemoryStoreChecksAndOverview(t *testing.T) {
	store, err := NewMemoryFileStore("")
	if err != nil {
		t.Fatalf("NewMemoryFileStore error: %v", err)
	}
	records := []CheckRecord{
		{Score: 4, Strength: "Perfect", PasswordLength: 16},
		{Score: 0, Strength: "Critical", PasswordLength: 8, Weak: true},
		{Score: 2, Strength: "Good", PasswordLength: 8},
	}
	for _, record := range records {
		if err := store.RecordCheck(record); err != nil {
			t.Fatalf("RecordCheck error: %v", err)
		}
	}
	if err := store.RecordGeneration(); err != nil {
		t.Fatalf("RecordGeneration error: %v", err)
	}

	checks := store.ListChecks(2)
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if checks[0].Score != 2 {
		t.Fatalf("expected newest check first, got score %d", checks[0].Score)
	}

	overview := store.GetMetricsOverview()
	if overview.TotalChecks != 3 {
		t.Fatalf("expected 3 checks, got %d", overview.TotalChecks)
	}
	if overview.ScoreCounts[4] != 1 || overview.ScoreCounts[0] != 1 || overview.ScoreCounts[2] != 1 {
		t.Fatalf("unexpected score counts %v", overview.ScoreCounts)
	}
	if overview.WeakHits != 1 {
		t.Fatalf("expected 1 weak hit, got %d", overview.WeakHits)
	}
	if overview.TotalGenerations != 1 {
		t.Fatalf("expected 1 generation, got %d", overview.TotalGenerations)
	}
	want := float64(4+0+2) / 3
	if overview.AverageScore != want {
		t.Fatalf("expected average %v, got %v", want, overview.AverageScore)
	}
}

func TestMemoryStorePersistReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store, err := NewMemoryFileStore(path)
	if err != nil {
		t.Fatalf("NewMemoryFileStore error: %v", err)
	}
	if err := store.RecordCheck(CheckRecord{Score: 3, Strength: "Strong", PasswordLength: 14}); err != nil {
		t.Fatalf("RecordCheck error: %v", err)
	}
	if err := store.AppendAudit(AuditEvent{ActorType: "user", Action: "generate_password", Result: "ok"}); err != nil {
		t.Fatalf("AppendAudit error: %v", err)
	}

	reloaded, err := NewMemoryFileStore(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	checks := reloaded.ListChecks(10)
	if len(checks) != 1 || checks[0].Score != 3 {
		t.Fatalf("expected reloaded check, got %+v", checks)
	}
	audit := reloaded.ListAudit(10)
	if len(audit) != 1 || audit[0].Action != "generate_password" {
		t.Fatalf("expected reloaded audit event, got %+v", audit)
	}
	// IDs keep climbing after reload
	if err := reloaded.RecordCheck(CheckRecord{Score: 1, Strength: "Weak", PasswordLength: 6}); err != nil {
		t.Fatalf("RecordCheck after reload: %v", err)
	}
	checks = reloaded.ListChecks(10)
	if checks[0].ID <= checks[1].ID {
		t.Fatalf("expected new record to get a higher id: %+v", checks)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	limiter := NewRateLimiter(2)
	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatalf("first two requests should pass")
	}
	if limiter.Allow("a") {
		t.Fatalf("third request within the window should be rejected")
	}
	if !limiter.Allow("b") {
		t.Fatalf("separate keys get separate windows")
	}
}
