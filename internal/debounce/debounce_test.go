package debounce

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firing struct {
	at    time.Duration
	token Token
}

// simulate issues one event per offset and fires each token window later, in time order.
func simulate(g *Gate, events map[time.Duration]string) []string {
	offsets := make([]time.Duration, 0, len(events))
	for at := range events {
		offsets = append(offsets, at)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	var queue []firing
	var recomputed []string
	fire := func(until time.Duration) {
		for len(queue) > 0 && queue[0].at <= until {
			f := queue[0]
			queue = queue[1:]
			if g.Accept(f.token) {
				recomputed = append(recomputed, f.token.Value())
			}
		}
	}

	for _, at := range offsets {
		fire(at)
		queue = append(queue, firing{at: at + g.Window(), token: g.Issue(events[at])})
	}
	fire(time.Hour)
	return recomputed
}

func TestBurstWithinWindowRecomputesOnce(t *testing.T) {
	g := NewGate(300 * time.Millisecond)
	got := simulate(g, map[time.Duration]string{
		0:                      "b",
		50 * time.Millisecond:  "be",
		100 * time.Millisecond: "bea",
		250 * time.Millisecond: "bead",
	})
	assert.Equal(t, []string{"bead"}, got)
}

func TestSeparatedEventsEachRecompute(t *testing.T) {
	g := NewGate(300 * time.Millisecond)
	got := simulate(g, map[time.Duration]string{
		0:                      "k",
		400 * time.Millisecond: "ke",
		900 * time.Millisecond: "ken",
	})
	assert.Equal(t, []string{"k", "ke", "ken"}, got)
}

func TestAcceptOnlyOnce(t *testing.T) {
	g := NewGate(0)
	assert.Equal(t, DefaultWindow, g.Window())

	tok := g.Issue("x")
	assert.True(t, g.Accept(tok))
	assert.False(t, g.Accept(tok))
	assert.False(t, g.Accept(Token{}))
}

func TestPendingAndFlush(t *testing.T) {
	g := NewGate(time.Second)
	_, ok := g.Pending()
	assert.False(t, ok)

	tok := g.Issue("kente")
	v, ok := g.Pending()
	require.True(t, ok)
	assert.Equal(t, "kente", v)

	v, ok = g.Flush()
	require.True(t, ok)
	assert.Equal(t, "kente", v)
	assert.False(t, g.Accept(tok), "flushed event does not fire again")

	_, ok = g.Flush()
	assert.False(t, ok)
}
