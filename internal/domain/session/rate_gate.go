package session

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Conte777/MovieFlow/config"
)

// RateGate admits at most one action per identity per window
type RateGate struct {
	mu        sync.Mutex
	window    time.Duration
	limiters  map[int64]*gateEntry
	lastPrune time.Time
	now       func() time.Time
}

type gateEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateGate creates a gate with the configured show-more cooldown
func NewRateGate(cfg *config.SessionConfig) *RateGate {
	return NewRateGateWithClock(cfg.ShowMoreCooldown, time.Now)
}

// NewRateGateWithClock creates a gate with an explicit window and clock
func NewRateGateWithClock(window time.Duration, now func() time.Time) *RateGate {
	return &RateGate{
		window:   window,
		limiters: make(map[int64]*gateEntry),
		now:      now,
	}
}

// Allow reports whether identity may act now and consumes the slot if so
func (g *RateGate) Allow(identity int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.pruneLocked(now)

	entry, ok := g.limiters[identity]
	if !ok {
		entry = &gateEntry{limiter: rate.NewLimiter(rate.Every(g.window), 1)}
		g.limiters[identity] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// Tracked returns the number of identities currently tracked
func (g *RateGate) Tracked() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.limiters)
}

// pruneLocked drops limiters idle for a full window; a fresh limiter behaves the same
func (g *RateGate) pruneLocked(now time.Time) {
	if now.Sub(g.lastPrune) < g.window {
		return
	}
	g.lastPrune = now

	for id, entry := range g.limiters {
		if now.Sub(entry.lastSeen) >= g.window {
			delete(g.limiters, id)
		}
	}
}
