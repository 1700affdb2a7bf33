package ratelimit

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestRecent(t *testing.T) {
	now := time.Now()

	t.Run("IgnoresOlderThanSpan", func(t *testing.T) {
		var w latencyWindow
		w.add(4*time.Millisecond, now.Add(-10*time.Minute))
		w.add(19*time.Millisecond, now.Add(-4*time.Minute))
		got := w.recent(now)
		if len(got) != 1 || got[0] != 19*time.Millisecond {
			t.Errorf("Expected [19ms], found %v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		var w latencyWindow
		if got := w.recent(now); len(got) != 0 {
			t.Errorf("Expected no samples, found %d", len(got))
		}
	})

	t.Run("RingOverwritesOldest", func(t *testing.T) {
		var w latencyWindow
		w.add(time.Hour, now)
		for i := 0; i < windowCapacity; i++ {
			w.add(time.Second, now)
		}
		got := w.recent(now)
		if len(got) != windowCapacity {
			t.Fatalf("Expected len = %d, got = %d", windowCapacity, len(got))
		}
		if got[len(got)-1] != time.Second {
			t.Errorf("oldest sample was not overwritten, max = %s", got[len(got)-1])
		}
	})
}

func TestFraction(t *testing.T) {
	tests := []struct {
		testcase  string
		latencies []time.Duration
		threshold time.Duration
		expected  float64
	}{
		{testcase: "NoSamples", threshold: 2 * time.Second, expected: 1},
		{testcase: "SingleSlow", latencies: []time.Duration{10 * time.Second}, threshold: 2 * time.Second, expected: 0.25},
		{testcase: "SingleFast", latencies: []time.Duration{time.Second}, threshold: 2 * time.Second, expected: 1},
	}
	for _, tc := range tests {
		if got, _, _ := fraction(tc.latencies, tc.threshold); got != tc.expected {
			t.Errorf("[%s] Expected %f, got %f", tc.testcase, tc.expected, got)
		}
	}

	// 20 samples 0s..19s: p90 is 17s, p95 is 18s
	now := time.Now()
	for _, shuffle := range []bool{false, true} {
		var w latencyWindow
		order := make([]int, 20)
		for i := range order {
			order[i] = i
		}
		if shuffle {
			rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		for _, i := range order {
			w.add(time.Duration(i)*time.Second, now)
		}
		got, p90, p95 := fraction(w.recent(now), 17500*time.Millisecond)
		if got != 0.5 || p90 != 17*time.Second || p95 != 18*time.Second {
			t.Errorf("shuffle=%v: Expected 0.5 (p90=17s p95=18s), got %f (p90=%s p95=%s)", shuffle, got, p90, p95)
		}
	}
}

func TestRecordIsPerEffect(t *testing.T) {
	limiter := New(2, 20, 3*time.Second, "t")
	limiter.Record("pitch", 10*time.Second)

	if limiter.Limit("pitch") != 2*0.25 {
		t.Errorf("Expected pitch limit = %f, got = %f", 0.5, limiter.Limit("pitch"))
	}
	if limiter.Limit("volume") != 2 {
		t.Errorf("Expected volume limit = 2, got = %f", limiter.Limit("volume"))
	}
	if limiter.FractionOf("volume") != 1 || limiter.FractionOf("pitch") != 0.25 {
		t.Errorf("unexpected fractions volume=%f pitch=%f", limiter.FractionOf("volume"), limiter.FractionOf("pitch"))
	}
	if limiter.Fraction() != 0.25 {
		t.Errorf("Expected lowest fraction = 0.25, got = %f", limiter.Fraction())
	}
}

func TestRecordRecovers(t *testing.T) {
	limiter := New(2, 20, 3*time.Second, "t")
	start := time.Now()
	limiter.record("volume", 10*time.Second, start)
	limiter.record("volume", time.Second, start.Add(windowSpan+time.Second))
	if got := limiter.FractionOf("volume"); got != 1 {
		t.Errorf("Expected the slow sample to expire, fraction = %f", got)
	}
}

func TestWaitCancelled(t *testing.T) {
	limiter := New(0.001, 1, time.Second, "t")
	if err := limiter.Wait(context.Background(), "volume"); err != nil {
		t.Fatalf("first token should be free: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "volume"); err == nil {
		t.Error("expected an error once the burst is spent")
	}
	if err := limiter.Wait(context.Background(), "pitch"); err != nil {
		t.Errorf("another effect has its own burst: %v", err)
	}
}
