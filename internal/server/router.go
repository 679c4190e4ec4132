package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"passguard/internal/scoring"
)

type API struct {
	auth          *Auth
	store         Store
	checker       *scoring.Checker
	obs           *Observability
	checkLimit    *RateLimiter
	generateLimit *RateLimiter
	genLength     int
}

func NewAPI(auth *Auth, store Store, checker *scoring.Checker, obs *Observability, cfg ServerConfig) *API {
	length := cfg.Generator.PasswordLength
	if length <= 0 {
		length = scoring.DefaultPasswordLength
	}
	return &API{
		auth:          auth,
		store:         store,
		checker:       checker,
		obs:           obs,
		checkLimit:    NewRateLimiter(cfg.Limits.CheckRPM),
		generateLimit: NewRateLimiter(cfg.Limits.GenerateRPM),
		genLength:     length,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)

	mux.HandleFunc("POST /api/check", a.handleCheck)
	mux.HandleFunc("GET /api/generate", a.handleGenerate)

	mux.HandleFunc("POST /api/v1/auth/login", a.auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", a.auth.HandleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", a.auth.HandleMe)

	mux.Handle("GET /api/v1/admin/metrics/overview", a.auth.RequireAdmin(http.HandlerFunc(a.handleAdminOverview)))
	mux.Handle("GET /api/v1/admin/checks", a.auth.RequireAdmin(http.HandlerFunc(a.handleAdminChecks)))
	mux.Handle("GET /api/v1/admin/audit", a.auth.RequireAdmin(http.HandlerFunc(a.handleAdminAudit)))

	wrapped := otelhttp.NewHandler(mux, "passguard-api-http")
	return withCORS(wrapped)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": nowRFC3339(),
	})
}

func (a *API) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("passguard-api").Start(r.Context(), "check_password")
	defer span.End()
	started := time.Now()

	ipHash, uaHash := actorHashes(r)
	if !a.checkLimit.Allow(ipHash) {
		a.obs.MarkRateLimited(ctx, "check")
		_ = a.store.RecordRateLimited()
		writeError(w, http.StatusTooManyRequests, "rate limited")
		return
	}

	var req CheckRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	result := a.checker.Check(req.Password)
	suggestions := a.checker.Suggest(req.Password)
	span.SetAttributes(
		attribute.Int("check.score", result.Score),
		attribute.String("check.strength", result.Strength),
		attribute.Int("check.password_length", len(req.Password)),
	)
	a.obs.MarkCheck(ctx, result.Strength, time.Since(started).Milliseconds())

	// Only the shape of the password is recorded, never the password.
	_ = a.store.RecordCheck(CheckRecord{
		Score:          result.Score,
		Strength:       result.Strength,
		PasswordLength: len(req.Password),
		Weak:           a.checker.IsWeak(req.Password),
		Banned:         a.checker.IsBanned(req.Password),
		IPHash:         ipHash,
		UAHash:         uaHash,
	})

	writeJSON(w, http.StatusOK, CheckResponse{
		Strength:    result.Strength,
		Score:       result.Score,
		Message:     result.Message,
		Suggestions: suggestions,
	})
}

func (a *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("passguard-api").Start(r.Context(), "generate_password")
	defer span.End()

	ipHash, uaHash := actorHashes(r)
	if !a.generateLimit.Allow(ipHash) {
		a.obs.MarkRateLimited(ctx, "generate")
		_ = a.store.RecordRateLimited()
		writeError(w, http.StatusTooManyRequests, "rate limited")
		return
	}

	length := a.genLength
	if raw := strings.TrimSpace(r.URL.Query().Get("length")); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed >= 8 && parsed <= 128 {
			length = parsed
		}
	}
	password, err := scoring.GeneratePassword(length)
	if err != nil {
		span.RecordError(err)
		writeError(w, http.StatusInternalServerError, "password generation failed")
		return
	}
	a.obs.MarkGenerate(ctx)
	_ = a.store.RecordGeneration()
	_ = a.store.AppendAudit(AuditEvent{
		ActorType: "user",
		Action:    "generate_password",
		Result:    "ok",
		IPHash:    ipHash,
		UAHash:    uaHash,
	})

	writeJSON(w, http.StatusOK, GenerateResponse{Password: password})
}

func (a *API) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.GetMetricsOverview())
}

func (a *API) handleAdminChecks(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 100, 1000)
	writeJSON(w, http.StatusOK, map[string]any{
		"checks": a.store.ListChecks(limit),
	})
}

func (a *API) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 200, 1000)
	writeJSON(w, http.StatusOK, map[string]any{
		"audit": a.store.ListAudit(limit),
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Token")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func actorHashes(r *http.Request) (string, string) {
	ip, _, _ := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if ip == "" {
		ip = strings.TrimSpace(r.RemoteAddr)
	}
	return hashString(ip), hashString(r.UserAgent())
}

func hashString(input string) string {
	return sha256Hex(input)[:16]
}
