package ratelimit

import (
	"math"
	"sort"
	"time"
)

const (
	windowSpan     = 5 * time.Minute
	windowCapacity = 1000
)

type sample struct {
	at      time.Time
	latency time.Duration
}

// latencyWindow is a ring of the last windowCapacity latencies of one
// effect. Samples older than windowSpan are ignored when it is read.
type latencyWindow struct {
	ring [windowCapacity]sample
	next int
	size int
}

func (w *latencyWindow) add(latency time.Duration, now time.Time) {
	w.ring[w.next] = sample{at: now, latency: latency}
	w.next = (w.next + 1) % windowCapacity
	if w.size < windowCapacity {
		w.size++
	}
}

// recent returns the latencies inside windowSpan of now, sorted
func (w *latencyWindow) recent(now time.Time) []time.Duration {
	cutoff := now.Add(-windowSpan)
	out := make([]time.Duration, 0, w.size)
	for i := 0; i < w.size; i++ {
		if s := w.ring[i]; s.at.After(cutoff) {
			out = append(out, s.latency)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// percentile uses the nearest-rank method on sorted latencies
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	return sorted[rank]
}

// fraction maps the p90/p95 latencies against threshold to a share of the
// max rate: 1 when p95 is within it, 0.5 when only p90 is, 0.25 otherwise.
func fraction(sorted []time.Duration, threshold time.Duration) (float64, time.Duration, time.Duration) {
	if len(sorted) == 0 {
		return 1, 0, 0
	}
	p90, p95 := percentile(sorted, 0.90), percentile(sorted, 0.95)
	switch {
	case p95 <= threshold:
		return 1, p90, p95
	case p90 <= threshold:
		return 0.5, p90, p95
	default:
		return 0.25, p90, p95
	}
}
