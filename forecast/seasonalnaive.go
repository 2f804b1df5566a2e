package forecast

import (
	"math"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

// SeasonalNaive repeats the most recent complete seasonal cycle. The
// uncertainty band derives from the standard deviation of historical
// same-season deviations and widens with the square root of the step to
// reflect compounding uncertainty.
type SeasonalNaive struct {
	opt *Options
}

func (m *SeasonalNaive) Type() ModelType {
	return TypeSeasonalNaive
}

func (m *SeasonalNaive) Forecast(series *timeseries.TimeSeries, horizon int) (*Result, error) {
	period, err := validate(series, horizon, m.opt, true)
	if err != nil {
		return nil, err
	}

	n := series.Len()
	y := series.Y

	point := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		point[h-1] = y[n-period+((h-1)%period)]
	}

	// same-season deviations across cycles
	diffs := make([]float64, 0, n-period)
	for i := period; i < n; i++ {
		diffs = append(diffs, y[i]-y[i-period])
	}
	sigma := stats.SampleStdDev(diffs)

	halfWidth := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		halfWidth[h-1] = m.opt.Zscore * sigma * math.Sqrt(float64(h))
	}

	// in-sample fit: each observation predicted by the prior cycle
	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < period {
			fitted[i] = math.NaN()
			continue
		}
		fitted[i] = y[i-period]
	}
	scores, err := stats.NewScores(fitted, y)
	if err != nil {
		return nil, err
	}

	futureT, err := series.Extend(horizon)
	if err != nil {
		return nil, err
	}
	return newResult(TypeSeasonalNaive, futureT, point, halfWidth, scores), nil
}
