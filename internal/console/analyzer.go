package console

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"passguard/internal/api"
)

// Checker is the scoring collaborator consumed by the analyzer.
type Checker interface {
	Check(ctx context.Context, password string) (*api.CheckResponse, *api.RawResponse, error)
}

const (
	defaultDebounce       = 500 * time.Millisecond
	defaultRequestTimeout = 15 * time.Second
	maxSuggestionLines    = 3
)

// Analyzer owns the password text, the debounce timer and the strength state.
// Every SetPassword cancels the pending timer and re-arms it; when the timer
// fires a scoring cycle runs against the remote service. Each cycle carries a
// monotonically increasing token and responses whose token is no longer the
// most recent are discarded, so a slow response from an older cycle can never
// overwrite a fresher result.
type Analyzer struct {
	checker        Checker
	log            *TerminalLog
	debounce       time.Duration
	requestTimeout time.Duration
	onChange       func()

	mu             sync.Mutex
	timer          *time.Timer
	token          uint64
	password       string
	strength       Strength
	analyzing      bool
	analyzingToken uint64
	closed         bool
}

type AnalyzerOption func(*Analyzer)

// WithDebounce overrides the quiet period before a cycle fires.
func WithDebounce(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		if d > 0 {
			a.debounce = d
		}
	}
}

// WithRequestTimeout overrides the per-cycle scoring call timeout.
func WithRequestTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		if d > 0 {
			a.requestTimeout = d
		}
	}
}

// WithOnChange registers a hook invoked after every state change, used by the
// dashboard to schedule a redraw. The hook must not call back into the analyzer.
func WithOnChange(fn func()) AnalyzerOption {
	return func(a *Analyzer) {
		a.onChange = fn
	}
}

func NewAnalyzer(checker Checker, log *TerminalLog, opts ...AnalyzerOption) *Analyzer {
	analyzer := &Analyzer{
		checker:        checker,
		log:            log,
		debounce:       defaultDebounce,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// SetPassword records the new text and restarts the debounce timer. The
// cancel-then-schedule happens under the mutex, so no two timers for the same
// analyzer are ever live.
func (a *Analyzer) SetPassword(text string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.password = text
	a.token++
	token := a.token
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, func() {
		a.fire(token, text)
	})
	a.mu.Unlock()
}

func (a *Analyzer) Password() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.password
}

func (a *Analyzer) Strength() Strength {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := Strength{Score: a.strength.Score}
	out.Feedback = append(out.Feedback, a.strength.Feedback...)
	return out
}

func (a *Analyzer) Analyzing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.analyzing
}

// Close cancels the pending timer and invalidates any in-flight cycle.
func (a *Analyzer) Close() {
	a.mu.Lock()
	a.closed = true
	a.token++
	a.analyzing = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
}

func (a *Analyzer) fire(token uint64, text string) {
	a.mu.Lock()
	if a.closed || token != a.token {
		a.mu.Unlock()
		return
	}
	if text == "" {
		a.strength = Strength{}
		a.mu.Unlock()
		a.log.Append("Input cleared; strength reset")
		a.notify()
		return
	}
	a.analyzing = true
	a.analyzingToken = token
	a.mu.Unlock()

	a.log.Append(fmt.Sprintf("Analyzing %s (%d chars)", MaskPassword(text), utf8.RuneCountInString(text)))
	if pattern, ok := MatchWeakPattern(text); ok {
		a.log.Append(fmt.Sprintf("WARNING: contains common weak pattern %q", pattern))
	}
	a.notify()

	ctx, cancel := context.WithTimeout(context.Background(), a.requestTimeout)
	resp, _, err := a.checker.Check(ctx, text)
	cancel()

	a.apply(token, text, resp, err)
}

// apply finishes a cycle: the analyzing flag is cleared on every exit path,
// but only the most recent token may touch the strength state or the log.
func (a *Analyzer) apply(token uint64, text string, resp *api.CheckResponse, err error) {
	a.mu.Lock()
	if a.analyzingToken == token {
		a.analyzing = false
	}
	if a.closed || token != a.token {
		a.mu.Unlock()
		return
	}

	switch {
	case err != nil:
		a.mu.Unlock()
		if apiErr, ok := api.IsAPIError(err); ok {
			a.log.Append("Analysis failed: " + apiErr.Message)
		} else {
			a.log.Append("Connection to scoring service failed: " + err.Error())
		}
	case resp.Error != "":
		a.mu.Unlock()
		a.log.Append("Analysis failed: " + resp.Error)
	default:
		score := ClampScore(resp.Score)
		feedback := append([]string(nil), resp.Suggestions...)
		a.strength = Strength{Score: score, Feedback: feedback}
		a.mu.Unlock()

		a.log.Append(fmt.Sprintf("Analysis complete: %s (score %d/4)", StrengthLabel(score), score))
		a.log.Append("Estimated crack time: " + EstimateCrackTime(text))
		if IsSecure(score) {
			a.log.Append("Protection level: SECURE")
		} else {
			a.log.Append("Protection level: AT RISK")
		}
		for i, suggestion := range feedback {
			if i >= maxSuggestionLines {
				break
			}
			a.log.Append("Suggestion: " + suggestion)
		}
	}
	a.notify()
}

func (a *Analyzer) notify() {
	if a.onChange != nil {
		a.onChange()
	}
}
