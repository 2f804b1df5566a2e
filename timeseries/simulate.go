package timeseries

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateMonthlyT generates n month-start time points ending before the
// time returned by nowFunc.
func GenerateMonthlyT(n int, nowFunc func() time.Time) []time.Time {
	now := nowFunc().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, first.AddDate(0, i, 0))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// GenerateConstY generates a constant baseline cash flow.
func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateTrendY generates a linear growth component starting at bias and
// increasing by slope per time point.
func GenerateTrendY(n int, bias, slope float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, bias+slope*float64(i))
	}
	return Series(y)
}

// GenerateCycleY generates a sinusoidal seasonal component repeating
// every period points with a phase offset in points.
func GenerateCycleY(n int, amp float64, period int, offset float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, amp*math.Sin(2.0*math.Pi*(float64(i)+offset)/float64(period)))
	}
	return Series(y)
}

// GenerateNoise generates gaussian noise at the given scale.
func GenerateNoise(n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*scale)
	}
	return Series(y)
}

// GenerateYearEndBoost overlays a holiday-season bump on months November
// and December and a post-holiday dip on January and February, mirroring
// the shape of typical retail cash flow.
func GenerateYearEndBoost(t []time.Time, boost, dip float64) Series {
	y := make([]float64, len(t))
	for i := 0; i < len(t); i++ {
		switch t[i].Month() {
		case time.November, time.December:
			y[i] = boost
		case time.January, time.February:
			y[i] = -dip
		}
	}
	return Series(y)
}
