package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type Store interface {
	RecordCheck(record CheckRecord) error
	ListChecks(limit int) []CheckRecord
	RecordGeneration() error
	RecordRateLimited() error
	AppendAudit(event AuditEvent) error
	ListAudit(limit int) []AuditEvent
	GetMetricsOverview() MetricsOverview
}

// MemoryFileStore keeps everything in memory and optionally snapshots to a
// JSON file after each write. An empty path disables persistence.
type MemoryFileStore struct {
	mu          sync.RWMutex
	path        string
	checks      []CheckRecord
	audit       []AuditEvent
	generations int
	rateLimited int
	nextID      int64
}

func NewMemoryFileStore(path string) (*MemoryFileStore, error) {
	store := &MemoryFileStore{
		path:   path,
		checks: []CheckRecord{},
		audit:  []AuditEvent{},
		nextID: 1,
	}
	if strings.TrimSpace(path) == "" {
		return store, nil
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MemoryFileStore) RecordCheck(record CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == 0 {
		record.ID = s.nextID
	}
	if record.ID >= s.nextID {
		s.nextID = record.ID + 1
	}
	if strings.TrimSpace(record.Timestamp) == "" {
		record.Timestamp = nowRFC3339()
	}
	s.checks = append(s.checks, record)
	if len(s.checks) > 10000 {
		s.checks = s.checks[len(s.checks)-10000:]
	}
	return s.persistLocked()
}

func (s *MemoryFileStore) ListChecks(limit int) []CheckRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CheckRecord, len(s.checks))
	copy(out, s.checks)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryFileStore) RecordGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations++
	return s.persistLocked()
}

func (s *MemoryFileStore) RecordRateLimited() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimited++
	return s.persistLocked()
}

func (s *MemoryFileStore) AppendAudit(event AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(event.Timestamp) == "" {
		event.Timestamp = nowRFC3339()
	}
	s.audit = append(s.audit, event)
	if len(s.audit) > 5000 {
		s.audit = s.audit[len(s.audit)-5000:]
	}
	return s.persistLocked()
}

func (s *MemoryFileStore) ListAudit(limit int) []AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.audit) == 0 {
		return []AuditEvent{}
	}
	out := make([]AuditEvent, len(s.audit))
	copy(out, s.audit)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryFileStore) GetMetricsOverview() MetricsOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	overview := MetricsOverview{
		GeneratedAt:      nowRFC3339(),
		TotalGenerations: s.generations,
		RateLimited:      s.rateLimited,
	}
	scoreTotal := 0
	for _, check := range s.checks {
		overview.TotalChecks++
		if check.Score >= 0 && check.Score < len(overview.ScoreCounts) {
			overview.ScoreCounts[check.Score]++
		}
		if check.Weak {
			overview.WeakHits++
		}
		if check.Banned {
			overview.BannedHits++
		}
		scoreTotal += check.Score
	}
	if overview.TotalChecks > 0 {
		overview.AverageScore = float64(scoreTotal) / float64(overview.TotalChecks)
	}
	return overview
}

func (s *MemoryFileStore) load() error {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read store snapshot: %w", err)
	}
	var snapshot StoreSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode store snapshot: %w", err)
	}
	s.checks = snapshot.Checks
	s.audit = snapshot.Audit
	s.generations = snapshot.Generations
	s.rateLimited = snapshot.RateLimited
	for _, check := range s.checks {
		if check.ID >= s.nextID {
			s.nextID = check.ID + 1
		}
	}
	return nil
}

func (s *MemoryFileStore) persistLocked() error {
	if strings.TrimSpace(s.path) == "" {
		return nil
	}
	snapshot := StoreSnapshot{
		Checks:      s.checks,
		Audit:       s.audit,
		Generations: s.generations,
		RateLimited: s.rateLimited,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write store temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store snapshot: %w", err)
	}
	return nil
}
