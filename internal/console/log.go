package console

import "sync"

// TerminalLog is the append-only activity log shown on the console. Lines are
// immutable once appended and never reordered; storage is unbounded with
// consumers taking a tail view.
type TerminalLog struct {
	mu    sync.RWMutex
	lines []string
}

func NewTerminalLog() *TerminalLog {
	return &TerminalLog{}
}

func (l *TerminalLog) Append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

// Lines returns a snapshot of every appended line, oldest first.
func (l *TerminalLog) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns at most k of the most recent lines, oldest first.
func (l *TerminalLog) Tail(k int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if k <= 0 || len(l.lines) == 0 {
		return []string{}
	}
	start := len(l.lines) - k
	if start < 0 {
		start = 0
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

func (l *TerminalLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}
