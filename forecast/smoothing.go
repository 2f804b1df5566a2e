package forecast

import (
	"log/slog"
	"math"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/decompose"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

// ExponentialSmoothing applies a Holt-Winters additive recursion over
// level, trend, and seasonal components when the series carries at least
// two complete cycles, degrading to Holt's linear method otherwise. The
// uncertainty band derives from the in-sample one-step residual standard
// deviation widening with the square root of the step.
type ExponentialSmoothing struct {
	opt *Options
}

func (m *ExponentialSmoothing) Type() ModelType {
	return TypeExponentialSmoothing
}

func (m *ExponentialSmoothing) Forecast(series *timeseries.TimeSeries, horizon int) (*Result, error) {
	if _, err := validate(series, horizon, m.opt, false); err != nil {
		return nil, err
	}

	// the smoothing model works without a seasonal component, so a
	// failed period inference is not surfaced
	period := m.opt.Period
	if period == 0 {
		if inferred, err := decompose.InferPeriod(series); err == nil {
			period = inferred
		}
	}

	var point, fitted []float64
	if period > 1 && series.Len() >= 2*period {
		point, fitted = m.holtWinters(series.Y, period, horizon)
	} else {
		if period > 1 {
			slog.Warn("series too short for seasonal smoothing, dropping seasonal component",
				"observations", series.Len(), "period", period)
		}
		point, fitted = m.holt(series.Y, horizon)
	}

	residual := make([]float64, len(fitted))
	for i := range fitted {
		if math.IsNaN(fitted[i]) {
			residual[i] = math.NaN()
			continue
		}
		residual[i] = series.Y[i] - fitted[i]
	}
	sigma := stats.SampleStdDev(residual)

	halfWidth := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		halfWidth[h-1] = m.opt.Zscore * sigma * math.Sqrt(float64(h))
	}

	scores, err := stats.NewScores(fitted, series.Y)
	if err != nil {
		return nil, err
	}

	futureT, err := series.Extend(horizon)
	if err != nil {
		return nil, err
	}
	return newResult(TypeExponentialSmoothing, futureT, point, halfWidth, scores), nil
}

// holtWinters runs the additive level/trend/seasonal recursion. The
// first cycle seeds the components, so fitted values start at the second
// cycle.
func (m *ExponentialSmoothing) holtWinters(y []float64, period, horizon int) (point, fitted []float64) {
	n := len(y)

	var firstCycleMean float64
	for i := 0; i < period; i++ {
		firstCycleMean += y[i]
	}
	firstCycleMean /= float64(period)

	var secondCycleMean float64
	for i := period; i < 2*period; i++ {
		secondCycleMean += y[i]
	}
	secondCycleMean /= float64(period)

	level := firstCycleMean
	trend := (secondCycleMean - firstCycleMean) / float64(period)
	seasonal := make([]float64, period)
	for i := 0; i < period; i++ {
		seasonal[i] = y[i] - firstCycleMean
	}

	fitted = make([]float64, n)
	for i := 0; i < period; i++ {
		fitted[i] = math.NaN()
	}
	for t := period; t < n; t++ {
		pos := t % period
		fitted[t] = level + trend + seasonal[pos]

		newLevel := m.opt.Alpha*(y[t]-seasonal[pos]) + (1-m.opt.Alpha)*(level+trend)
		newTrend := m.opt.Beta*(newLevel-level) + (1-m.opt.Beta)*trend
		seasonal[pos] = m.opt.Gamma*(y[t]-newLevel) + (1-m.opt.Gamma)*seasonal[pos]
		level = newLevel
		trend = newTrend
	}

	point = make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		point[h-1] = level + float64(h)*trend + seasonal[(n+h-1)%period]
	}
	return point, fitted
}

// holt runs the non-seasonal level/trend recursion.
func (m *ExponentialSmoothing) holt(y []float64, horizon int) (point, fitted []float64) {
	n := len(y)

	level := y[0]
	trend := y[1] - y[0]

	fitted = make([]float64, n)
	fitted[0] = math.NaN()
	for t := 1; t < n; t++ {
		fitted[t] = level + trend

		newLevel := m.opt.Alpha*y[t] + (1-m.opt.Alpha)*(level+trend)
		newTrend := m.opt.Beta*(newLevel-level) + (1-m.opt.Beta)*trend
		level = newLevel
		trend = newTrend
	}

	point = make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		point[h-1] = level + float64(h)*trend
	}
	return point, fitted
}
