package server

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) RecordCheck(record CheckRecord) error {
	if strings.TrimSpace(record.Timestamp) == "" {
		record.Timestamp = nowRFC3339()
	}
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO check_records (timestamp,score,strength,password_length,weak,banned,ip_hash,ua_hash)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		record.Timestamp, record.Score, record.Strength, record.PasswordLength,
		record.Weak, record.Banned, nullStr(record.IPHash), nullStr(record.UAHash))
	return err
}

func (s *PgStore) ListChecks(limit int) []CheckRecord {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(context.Background(),
		`SELECT id,timestamp,score,strength,password_length,weak,banned,ip_hash,ua_hash
		 FROM check_records ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return []CheckRecord{}
	}
	defer rows.Close()
	var out []CheckRecord
	for rows.Next() {
		var c CheckRecord
		var ts time.Time
		var ipHash, uaHash *string
		if err := rows.Scan(&c.ID, &ts, &c.Score, &c.Strength, &c.PasswordLength, &c.Weak, &c.Banned, &ipHash, &uaHash); err != nil {
			continue
		}
		c.Timestamp = ts.UTC().Format(time.RFC3339)
		c.IPHash = deref(ipHash)
		c.UAHash = deref(uaHash)
		out = append(out, c)
	}
	if out == nil {
		return []CheckRecord{}
	}
	return out
}

func (s *PgStore) RecordGeneration() error {
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO service_counters (name, value) VALUES ('generations', 1)
		 ON CONFLICT (name) DO UPDATE SET value = service_counters.value + 1`)
	return err
}

func (s *PgStore) RecordRateLimited() error {
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO service_counters (name, value) VALUES ('rate_limited', 1)
		 ON CONFLICT (name) DO UPDATE SET value = service_counters.value + 1`)
	return err
}

func (s *PgStore) AppendAudit(event AuditEvent) error {
	if strings.TrimSpace(event.Timestamp) == "" {
		event.Timestamp = nowRFC3339()
	}
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO audit_events (timestamp,actor_type,actor_sub,action,result,ip_hash,ua_hash,detail)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		event.Timestamp, event.ActorType, nullStr(event.ActorSub),
		event.Action, event.Result, nullStr(event.IPHash), nullStr(event.UAHash), nullStr(event.Detail))
	return err
}

func (s *PgStore) ListAudit(limit int) []AuditEvent {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.pool.Query(context.Background(),
		`SELECT timestamp,actor_type,actor_sub,action,result,ip_hash,ua_hash,detail
		 FROM audit_events ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return []AuditEvent{}
	}
	defer rows.Close()
	var out []AuditEvent
	for rows.Next() {
		var a AuditEvent
		var ts time.Time
		var actorSub, ipHash, uaHash, detail *string
		if err := rows.Scan(&ts, &a.ActorType, &actorSub, &a.Action, &a.Result, &ipHash, &uaHash, &detail); err != nil {
			continue
		}
		a.Timestamp = ts.UTC().Format(time.RFC3339)
		a.ActorSub = deref(actorSub)
		a.IPHash = deref(ipHash)
		a.UAHash = deref(uaHash)
		a.Detail = deref(detail)
		out = append(out, a)
	}
	if out == nil {
		return []AuditEvent{}
	}
	return out
}

func (s *PgStore) GetMetricsOverview() MetricsOverview {
	overview := MetricsOverview{GeneratedAt: nowRFC3339()}
	_ = s.pool.QueryRow(context.Background(),
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE score=0),
			COUNT(*) FILTER (WHERE score=1),
			COUNT(*) FILTER (WHERE score=2),
			COUNT(*) FILTER (WHERE score=3),
			COUNT(*) FILTER (WHERE score=4),
			COUNT(*) FILTER (WHERE weak),
			COUNT(*) FILTER (WHERE banned),
			COALESCE(AVG(score),0)
		 FROM check_records`).Scan(
		&overview.TotalChecks,
		&overview.ScoreCounts[0], &overview.ScoreCounts[1], &overview.ScoreCounts[2],
		&overview.ScoreCounts[3], &overview.ScoreCounts[4],
		&overview.WeakHits, &overview.BannedHits, &overview.AverageScore)
	_ = s.pool.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(value) FILTER (WHERE name='generations'),0),
		        COALESCE(MAX(value) FILTER (WHERE name='rate_limited'),0)
		 FROM service_counters`).Scan(&overview.TotalGenerations, &overview.RateLimited)
	return overview
}

// --- helpers ---

func nullStr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Ensure PgStore implements Store at compile time.
var _ Store = (*PgStore)(nil)
