// Package debounce coalesces bursts of events into a single action.
//
// A Gate hands out a token per event. An event's action runs only if its
// token is still the latest one when the quiet window elapses. The caller owns
// scheduling (a timer, a tea.Tick) so the Gate itself never starts goroutines.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used when none is configured.
const DefaultWindow = 300 * time.Millisecond

// Token identifies one event passed to a Gate.
type Token struct {
	seq   uint64
	value string
}

// Value returns the payload captured with the token.
func (t Token) Value() string {
	return t.value
}

// Gate tracks the latest event and accepts only it.
type Gate struct {
	window time.Duration

	mu       sync.Mutex
	seq      uint64
	accepted bool
	latest   string
}

// NewGate creates a gate. Non-positive windows use DefaultWindow.
func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{window: window}
}

// Window returns the quiet period.
func (g *Gate) Window() time.Duration {
	return g.window
}

// Issue records an event carrying value and returns its token. Any token
// issued earlier is superseded.
func (g *Gate) Issue(value string) Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.accepted = false
	g.latest = value
	return Token{seq: g.seq, value: value}
}

// Accept reports whether the token's action should run: only the most
// recently issued token is accepted, and at most once.
func (g *Gate) Accept(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t.seq == 0 || t.seq != g.seq || g.accepted {
		return false
	}
	g.accepted = true
	return true
}

// Pending returns the latest value when its action has not run yet.
func (g *Gate) Pending() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seq == 0 || g.accepted {
		return "", false
	}
	return g.latest, true
}

// Flush accepts the pending event immediately, if any.
func (g *Gate) Flush() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seq == 0 || g.accepted {
		return "", false
	}
	g.accepted = true
	return g.latest, true
}
