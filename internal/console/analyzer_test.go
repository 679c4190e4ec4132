package console

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"passguard/internal/api"
)

type fakeChecker struct {
	mu      sync.Mutex
	calls   []string
	respond func(password string) (*api.CheckResponse, error)
}

func (f *fakeChecker) Check(ctx context.Context, password string) (*api.CheckResponse, *api.RawResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, password)
	respond := f.respond
	f.mu.Unlock()
	if respond != nil {
		resp, err := respond(password)
		return resp, nil, err
	}
	return &api.CheckResponse{Score: 2, Strength: "FAIR"}, nil, nil
}

func (f *fakeChecker) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not reached within %v", timeout)
}

func logContains(log *TerminalLog, substr string) bool {
	for _, line := range log.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestDebounceCoalescesRapidChanges(t *testing.T) {
	checker := &fakeChecker{}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(30*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("a")
	analyzer.SetPassword("ab")
	analyzer.SetPassword("abc")

	waitFor(t, time.Second, func() bool { return len(checker.callList()) == 1 })
	time.Sleep(80 * time.Millisecond)

	calls := checker.callList()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one check call, got %d", len(calls))
	}
	if calls[0] != "abc" {
		t.Fatalf("expected check for final text, got %q", calls[0])
	}
}

func TestEmptyPasswordResetsWithoutRemoteCall(t *testing.T) {
	checker := &fakeChecker{}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("abc")
	analyzer.SetPassword("")

	waitFor(t, time.Second, func() bool { return logContains(log, "Input cleared") })
	time.Sleep(40 * time.Millisecond)

	if len(checker.callList()) != 0 {
		t.Fatalf("expected zero remote calls, got %v", checker.callList())
	}
	strength := analyzer.Strength()
	if strength.Score != 0 || len(strength.Feedback) != 0 {
		t.Fatalf("expected reset strength, got %+v", strength)
	}
}

func TestWeakPatternWarningPrecedesResult(t *testing.T) {
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			return &api.CheckResponse{Score: 1, Strength: "WEAK"}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("password123")
	waitFor(t, time.Second, func() bool { return logContains(log, "Analysis complete") })

	lines := log.Lines()
	warnIdx, completeIdx := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "weak pattern") {
			warnIdx = i
		}
		if strings.Contains(line, "Analysis complete") {
			completeIdx = i
		}
	}
	if warnIdx == -1 {
		t.Fatalf("expected weak pattern warning, lines: %v", lines)
	}
	if warnIdx >= completeIdx {
		t.Fatalf("warning (#%d) must precede completion (#%d)", warnIdx, completeIdx)
	}
	if !logContains(log, `"password"`) {
		t.Fatalf("warning should name the matched pattern, lines: %v", lines)
	}
}

func TestMaskedLoggingNeverLeaksPassword(t *testing.T) {
	checker := &fakeChecker{}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("Hunter2Secret!")
	waitFor(t, time.Second, func() bool { return logContains(log, "Analysis complete") })

	if logContains(log, "Hunter2Secret!") {
		t.Fatalf("plaintext password leaked into log: %v", log.Lines())
	}
	if !logContains(log, "(14 chars)") {
		t.Fatalf("expected masked length indicator, lines: %v", log.Lines())
	}
}

func TestMaskedLoggingCountsRunesNotBytes(t *testing.T) {
	// 12 runes, 16 bytes
	const password = "Pässwörter✓!"

	if mask := MaskPassword(password); mask != strings.Repeat("*", 12) {
		t.Fatalf("expected 12 asterisks, got %q", mask)
	}

	checker := &fakeChecker{}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword(password)
	waitFor(t, time.Second, func() bool { return logContains(log, "Analysis complete") })

	if !logContains(log, "(12 chars)") {
		t.Fatalf("expected rune-based length indicator, lines: %v", log.Lines())
	}
}

func TestRemoteErrorLeavesStrengthUnchanged(t *testing.T) {
	var failing bool
	var mu sync.Mutex
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			mu.Lock()
			defer mu.Unlock()
			if failing {
				return &api.CheckResponse{Error: "rate limited"}, nil
			}
			return &api.CheckResponse{Score: 4, Strength: "PERFECT"}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("Xk9#mQ2vLp!7")
	waitFor(t, time.Second, func() bool { return analyzer.Strength().Score == 4 })

	mu.Lock()
	failing = true
	mu.Unlock()
	analyzer.SetPassword("Xk9#mQ2vLp!7x")
	waitFor(t, time.Second, func() bool { return logContains(log, "rate limited") })

	if got := analyzer.Strength().Score; got != 4 {
		t.Fatalf("strength changed on remote error: %d", got)
	}
	if analyzer.Analyzing() {
		t.Fatalf("analyzing flag not cleared after failure")
	}
}

func TestTransportErrorLeavesStrengthUnchanged(t *testing.T) {
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			return nil, context.DeadlineExceeded
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("whatever")
	waitFor(t, time.Second, func() bool { return logContains(log, "Connection to scoring service failed") })

	if got := analyzer.Strength().Score; got != 0 {
		t.Fatalf("strength changed on transport error: %d", got)
	}
	if analyzer.Analyzing() {
		t.Fatalf("analyzing flag not cleared after transport error")
	}
}

func TestOutOfRangeScoreClamped(t *testing.T) {
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			return &api.CheckResponse{Score: 9}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("something")
	waitFor(t, time.Second, func() bool { return analyzer.Strength().Score != 0 })

	if got := analyzer.Strength().Score; got != 4 {
		t.Fatalf("expected clamped score 4, got %d", got)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	checker := &fakeChecker{
		respond: func(password string) (*api.CheckResponse, error) {
			if password == "old-entry" {
				<-release
				return &api.CheckResponse{Score: 1, Strength: "WEAK"}, nil
			}
			return &api.CheckResponse{Score: 4, Strength: "PERFECT"}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("old-entry")
	waitFor(t, time.Second, func() bool { return len(checker.callList()) == 1 })

	analyzer.SetPassword("fresh-entry")
	waitFor(t, time.Second, func() bool { return analyzer.Strength().Score == 4 })

	close(release)
	time.Sleep(50 * time.Millisecond)

	if got := analyzer.Strength().Score; got != 4 {
		t.Fatalf("stale response overwrote fresh result: %d", got)
	}
	if logContains(log, "score 1/4") {
		t.Fatalf("stale cycle wrote to the log: %v", log.Lines())
	}
}

func TestCrackTimeLineForShortPassword(t *testing.T) {
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			return &api.CheckResponse{Score: 0, Strength: "CRITICAL"}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("a")
	waitFor(t, time.Second, func() bool { return logContains(log, "Analysis complete") })

	calls := checker.callList()
	if len(calls) != 1 || calls[0] != "a" {
		t.Fatalf("expected one check for %q, got %v", "a", calls)
	}
	if !logContains(log, "Estimated crack time: <1 second") {
		t.Fatalf("missing crack time line: %v", log.Lines())
	}
}

func TestSuggestionLinesCappedAtThree(t *testing.T) {
	checker := &fakeChecker{
		respond: func(string) (*api.CheckResponse, error) {
			return &api.CheckResponse{
				Score:       1,
				Suggestions: []string{"one", "two", "three", "four", "five"},
			}, nil
		},
	}
	log := NewTerminalLog()
	analyzer := NewAnalyzer(checker, log, WithDebounce(10*time.Millisecond))
	defer analyzer.Close()

	analyzer.SetPassword("weakling")
	waitFor(t, time.Second, func() bool { return logContains(log, "Analysis complete") })

	count := 0
	for _, line := range log.Lines() {
		if strings.HasPrefix(line, "Suggestion: ") {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 suggestion lines, got %d", count)
	}
	if got := analyzer.Strength(); len(got.Feedback) != 5 {
		t.Fatalf("feedback state should keep all suggestions, got %d", len(got.Feedback))
	}
}
