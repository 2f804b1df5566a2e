package forecast

import (
	"math"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

// MovingAverage projects the mean of the trailing window flat across the
// horizon. The band derives from the historical standard deviation of
// the series and does not widen with the step since the projection
// carries no dynamics.
type MovingAverage struct {
	opt *Options
}

func (m *MovingAverage) Type() ModelType {
	return TypeMovingAverage
}

func (m *MovingAverage) Forecast(series *timeseries.TimeSeries, horizon int) (*Result, error) {
	if _, err := validate(series, horizon, m.opt, false); err != nil {
		return nil, err
	}

	n := series.Len()
	y := series.Y
	window := m.opt.Window
	if window < 1 {
		window = 1
	}
	if window > n {
		window = n
	}

	var sum float64
	for i := n - window; i < n; i++ {
		sum += y[i]
	}
	lastMA := sum / float64(window)

	point := make([]float64, horizon)
	halfWidth := make([]float64, horizon)
	sigma := stats.SampleStdDev(y)
	for h := 0; h < horizon; h++ {
		point[h] = lastMA
		halfWidth[h] = m.opt.Zscore * sigma
	}

	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < window {
			fitted[i] = math.NaN()
			continue
		}
		var s float64
		for j := i - window; j < i; j++ {
			s += y[j]
		}
		fitted[i] = s / float64(window)
	}
	scores, err := stats.NewScores(fitted, y)
	if err != nil {
		return nil, err
	}

	futureT, err := series.Extend(horizon)
	if err != nil {
		return nil, err
	}
	return newResult(TypeMovingAverage, futureT, point, halfWidth, scores), nil
}
