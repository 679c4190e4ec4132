package server

import "time"

type Principal struct {
	Subject  string `json:"subject"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CheckRequest struct {
	Password string `json:"password"`
}

type CheckResponse struct {
	Strength    string   `json:"strength"`
	Score       int      `json:"score"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type GenerateResponse struct {
	Password string `json:"password"`
}

// CheckRecord is what the service remembers about a single analysis.
// Passwords themselves are never persisted, only their shape.
type CheckRecord struct {
	ID             int64  `json:"id"`
	Timestamp      string `json:"timestamp"`
	Score          int    `json:"score"`
	Strength       string `json:"strength"`
	PasswordLength int    `json:"password_length"`
	Weak           bool   `json:"weak"`
	Banned         bool   `json:"banned"`
	IPHash         string `json:"ip_hash,omitempty"`
	UAHash         string `json:"ua_hash,omitempty"`
}

type AuditEvent struct {
	Timestamp string `json:"timestamp"`
	ActorType string `json:"actor_type"`
	ActorSub  string `json:"actor_sub,omitempty"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	IPHash    string `json:"ip_hash,omitempty"`
	UAHash    string `json:"ua_hash,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

type MetricsOverview struct {
	GeneratedAt      string  `json:"generated_at"`
	TotalChecks      int     `json:"total_checks"`
	TotalGenerations int     `json:"total_generations"`
	RateLimited      int     `json:"rate_limited"`
	ScoreCounts      [5]int  `json:"score_counts"`
	WeakHits         int     `json:"weak_hits"`
	BannedHits       int     `json:"banned_hits"`
	AverageScore     float64 `json:"average_score"`
}

type StoreSnapshot struct {
	Checks      []CheckRecord `json:"checks"`
	Audit       []AuditEvent  `json:"audit"`
	Generations int           `json:"generations"`
	RateLimited int           `json:"rate_limited"`
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
