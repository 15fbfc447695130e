package synth

import (
	"math/rand"
	"testing"
	"time"
)

var (
	testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
)

func TestSeriesValuesStayInRange(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	pts := Series(rng, 10, 150, testStart, testEnd, 500, true)
	if len(pts) != 500 {
		t.Fatalf("expected 500 points, got %d", len(pts))
	}
	for i, p := range pts {
		if p.Value < 10 || p.Value > 150 {
			t.Fatalf("point %d value %g outside [10, 150]", i, p.Value)
		}
	}
}

func TestSeriesTimestampsNonDecreasing(t *testing.T) {
	t.Parallel()
	for _, even := range []bool{true, false} {
		rng := rand.New(rand.NewSource(2))
		pts := Series(rng, 0, 100, testStart, testEnd, 200, even)
		for i := 1; i < len(pts); i++ {
			if pts[i].Timestamp.Before(pts[i-1].Timestamp) {
				t.Fatalf("even=%v: timestamp %d precedes its predecessor", even, i)
			}
		}
	}
}

func TestSeriesDeterministic(t *testing.T) {
	t.Parallel()
	a := Series(rand.New(rand.NewSource(7)), 0, 25, testStart, testEnd, 100, true)
	b := Series(rand.New(rand.NewSource(7)), 0, 25, testStart, testEnd, 100, true)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSeriesSinglePoint(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	pts := Series(rng, 0, 100, testStart, testEnd, 1, true)
	if len(pts) != 1 {
		t.Fatalf("expected 1 point, got %d", len(pts))
	}
	if pts[0].Value < 0 || pts[0].Value > 100 {
		t.Fatalf("value %g outside range", pts[0].Value)
	}
}

func TestSeriesZeroPoints(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(4))
	if pts := Series(rng, 0, 100, testStart, testEnd, 0, false); pts != nil {
		t.Fatalf("expected nil for zero points, got %d", len(pts))
	}
}

func TestSortedUniformTimesWithinWindow(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(5))
	times := SortedUniformTimes(rng, testStart, testEnd, 50)
	for i, ts := range times {
		if ts.Before(testStart) || ts.After(testEnd) {
			t.Fatalf("timestamp %d outside window: %s", i, ts)
		}
		if i > 0 && ts.Before(times[i-1]) {
			t.Fatalf("timestamp %d precedes its predecessor", i)
		}
	}
}
