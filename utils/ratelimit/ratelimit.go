// Package ratelimit throttles the spawning of effect binaries. Every effect
// has its own token bucket whose rate shrinks to a half or a quarter of the
// configured maximum when that effect's recent p90/p95 latencies exceed a
// threshold, so one slow tool does not hold back the others.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"golang.org/x/time/rate"
)

type effectLimit struct {
	limiter  *rate.Limiter
	window   latencyWindow
	fraction float64
}

// Adaptive holds one latency-driven token bucket per effect
type Adaptive struct {
	mu sync.Mutex

	maxRate   float64
	burst     int
	threshold time.Duration
	name      string
	effects   map[string]*effectLimit
}

// New creates a limiter allowing maxRate spawns per second per effect with the
// given burst. name tags the log lines of this limiter.
func New(maxRate float64, burst int, threshold time.Duration, name string) *Adaptive {
	if burst < 1 {
		burst = 1
	}
	return &Adaptive{
		maxRate:   maxRate,
		burst:     burst,
		threshold: threshold,
		name:      name,
		effects:   make(map[string]*effectLimit),
	}
}

// get must be called with a.mu held
func (a *Adaptive) get(effect string) *effectLimit {
	el, ok := a.effects[effect]
	if !ok {
		el = &effectLimit{limiter: rate.NewLimiter(rate.Limit(a.maxRate), a.burst), fraction: 1}
		a.effects[effect] = el
	}
	return el
}

// Record adds a latency of effect and adjusts that effect's limit
func (a *Adaptive) Record(effect string, latency time.Duration) {
	a.record(effect, latency, time.Now())
}

func (a *Adaptive) record(effect string, latency time.Duration, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	el := a.get(effect)
	el.window.add(latency, now)
	f, p90, p95 := fraction(el.window.recent(now), a.threshold)
	if f != el.fraction {
		ymlogger.LogInfof(a.name, "%s rate fraction %.2f -> %.2f: p90=%s p95=%s threshold=%s",
			effect, el.fraction, f, p90, p95, a.threshold)
	}
	el.fraction = f
	el.limiter.SetLimit(rate.Limit(f * a.maxRate))
}

// Wait blocks until a spawn of effect is allowed or ctx is done
func (a *Adaptive) Wait(ctx context.Context, effect string) error {
	a.mu.Lock()
	limiter := a.get(effect).limiter
	a.mu.Unlock()
	return limiter.Wait(ctx)
}

// FractionOf returns the share of the max rate effect may currently use
func (a *Adaptive) FractionOf(effect string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if el, ok := a.effects[effect]; ok {
		return el.fraction
	}
	return 1
}

// Fraction returns the lowest share across all effects
func (a *Adaptive) Fraction() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	lowest := 1.0
	for _, el := range a.effects {
		if el.fraction < lowest {
			lowest = el.fraction
		}
	}
	return lowest
}

// Limit returns the current spawns per second of effect
func (a *Adaptive) Limit(effect string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.get(effect).limiter.Limit())
}
