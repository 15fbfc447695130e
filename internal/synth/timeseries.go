package synth

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Point is one transient time-series sample. Points are never persisted
// directly; readings and commands materialize them.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// Series synthesizes n chronologically ordered points over [start, end],
// clipped to [min, max]. The underlying curve is a sinusoid with a
// per-call-randomized period count (3-8) rescaled into the range, plus
// uniform noise bounded to 5-15% of the range span. This produces a slowly
// varying process rather than white noise, and is fully reproducible from
// the rng's seed.
//
// When even is true the timestamps are evenly spaced (sensor readings);
// otherwise they are drawn uniformly over the window and sorted (commands,
// diagnostics).
func Series(rng *rand.Rand, min, max float64, start, end time.Time, n int, even bool) []Point {
	if n <= 0 {
		return nil
	}

	var times []time.Time
	if even {
		times = evenTimes(start, end, n)
	} else {
		times = SortedUniformTimes(rng, start, end, n)
	}

	span := max - min
	periods := float64(3 + rng.Intn(6))
	noise := span * (0.05 + 0.1*rng.Float64())

	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		base := math.Sin(periods * math.Pi * pos)
		v := min + (base+1)/2*span
		v += (rng.Float64()*2 - 1) * noise
		v = clamp(v, min, max)
		pts[i] = Point{Timestamp: times[i], Value: round2(v)}
	}
	return pts
}

// SortedUniformTimes draws n timestamps independently uniformly over
// [start, end] and returns them in ascending order.
func SortedUniformTimes(rng *rand.Rand, start, end time.Time, n int) []time.Time {
	window := end.Sub(start)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(rng.Float64() * float64(window)))
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func evenTimes(start, end time.Time, n int) []time.Time {
	window := end.Sub(start)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(float64(window) * float64(i) / float64(n)))
	}
	return times
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
