package console

import (
	"context"
	"sync"
	"time"
)

// AttackEvent is one synthetic entry in the live attack feed.
type AttackEvent struct {
	ID        int64
	Type      string
	Origin    string
	Target    string
	Severity  Severity
	Attempts  int
	Blocked   bool
	Timestamp time.Time
}

// LiveCheckEvent is one synthetic entry in the live password check feed.
type LiveCheckEvent struct {
	ID        int64
	Password  string
	Result    string
	Reason    string
	Location  string
	Timestamp time.Time
}

// GlobalStats carries the headline counters. AttacksToday and
// PasswordsCompromised only ever grow within a run; ActiveThreats and
// WeakPasswords are resampled from scratch on every tick and may shrink.
type GlobalStats struct {
	AttacksToday         int
	PasswordsCompromised int
	ActiveThreats        int
	WeakPasswords        int
}

const (
	defaultStatsInterval     = 3 * time.Second
	defaultAttackInterval    = 2 * time.Second
	defaultLiveCheckInterval = 4 * time.Second

	attackFeedCap    = 10
	liveCheckFeedCap = 5
)

// Telemetry runs the three independent simulators. They share nothing with
// the analyzer; each writes into its own bounded buffer. Stop cancels all
// three tickers as a unit.
type Telemetry struct {
	statsInterval     time.Duration
	attackInterval    time.Duration
	liveCheckInterval time.Duration
	onUpdate          func()

	mu         sync.Mutex
	rng        Rand
	stats      GlobalStats
	attacks    *Ring[AttackEvent]
	liveChecks *Ring[LiveCheckEvent]
	lastID     int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type TelemetryOption func(*Telemetry)

// WithTelemetryIntervals overrides the three tick periods; zero values keep
// the defaults.
func WithTelemetryIntervals(stats, attack, liveCheck time.Duration) TelemetryOption {
	return func(t *Telemetry) {
		if stats > 0 {
			t.statsInterval = stats
		}
		if attack > 0 {
			t.attackInterval = attack
		}
		if liveCheck > 0 {
			t.liveCheckInterval = liveCheck
		}
	}
}

// WithTelemetryOnUpdate registers a redraw hook called after every tick.
func WithTelemetryOnUpdate(fn func()) TelemetryOption {
	return func(t *Telemetry) {
		t.onUpdate = fn
	}
}

func NewTelemetry(rng Rand, opts ...TelemetryOption) *Telemetry {
	if rng == nil {
		rng = NewRand(0)
	}
	telemetry := &Telemetry{
		statsInterval:     defaultStatsInterval,
		attackInterval:    defaultAttackInterval,
		liveCheckInterval: defaultLiveCheckInterval,
		rng:               rng,
		attacks:           NewRing[AttackEvent](attackFeedCap),
		liveChecks:        NewRing[LiveCheckEvent](liveCheckFeedCap),
	}
	for _, opt := range opts {
		opt(telemetry)
	}
	return telemetry
}

// Start launches the three ticker loops. They run until the passed context is
// cancelled or Stop is called.
func (t *Telemetry) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.run(ctx, t.statsInterval, t.tickGlobalStats)
	t.run(ctx, t.attackInterval, t.tickAttackFeed)
	t.run(ctx, t.liveCheckInterval, t.tickLiveCheck)
}

// Stop cancels all three tickers and waits for them to exit.
func (t *Telemetry) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
}

func (t *Telemetry) run(ctx context.Context, interval time.Duration, tick func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		tick()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
}

func (t *Telemetry) tickGlobalStats() {
	t.mu.Lock()
	t.stats.AttacksToday += t.rng.Intn(1000)
	t.stats.PasswordsCompromised += t.rng.Intn(50)
	t.stats.ActiveThreats = 1000 + t.rng.Intn(500)
	t.stats.WeakPasswords = 5_000_000 + t.rng.Intn(1_000_000)
	t.mu.Unlock()
	t.notify()
}

func (t *Telemetry) tickAttackFeed() {
	t.mu.Lock()
	archetype := attackCatalog[t.rng.Intn(len(attackCatalog))]
	t.attacks.Push(AttackEvent{
		ID:        t.nextIDLocked(),
		Type:      archetype.Type,
		Origin:    archetype.Origin,
		Target:    archetype.Target,
		Severity:  archetype.Severity,
		Attempts:  1000 + t.rng.Intn(10000),
		Blocked:   t.rng.Float64() < 0.7,
		Timestamp: time.Now(),
	})
	t.mu.Unlock()
	t.notify()
}

func (t *Telemetry) tickLiveCheck() {
	t.mu.Lock()
	sample := liveCheckCatalog[t.rng.Intn(len(liveCheckCatalog))]
	password := sample.Password
	if sample.generated {
		password = randomStrongPassword(t.rng, 16)
	}
	t.liveChecks.Push(LiveCheckEvent{
		ID:        t.nextIDLocked(),
		Password:  password,
		Result:    sample.Result,
		Reason:    sample.Reason,
		Location:  sample.Location,
		Timestamp: time.Now(),
	})
	t.mu.Unlock()
	t.notify()
}

// nextIDLocked synthesizes a unique monotonic event ID from the wall clock.
func (t *Telemetry) nextIDLocked() int64 {
	id := time.Now().UnixNano()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Telemetry) Stats() GlobalStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Attacks returns the attack feed, newest first.
func (t *Telemetry) Attacks() []AttackEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attacks.Snapshot()
}

// LiveChecks returns the live check feed, newest first.
func (t *Telemetry) LiveChecks() []LiveCheckEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveChecks.Snapshot()
}

func (t *Telemetry) notify() {
	if t.onUpdate != nil {
		t.onUpdate()
	}
}
