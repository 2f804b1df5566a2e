package forecast

import (
	"math"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/decompose"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

// TrendExtrapolation decomposes the series, fits a linear trend to the
// decomposed trend component, and extrapolates it over the horizon with
// the seasonal indices re-added by position. The uncertainty band
// derives from the residual component's standard deviation.
type TrendExtrapolation struct {
	opt *Options
}

func (m *TrendExtrapolation) Type() ModelType {
	return TypeTrendExtrapolation
}

func (m *TrendExtrapolation) Forecast(series *timeseries.TimeSeries, horizon int) (*Result, error) {
	period, err := validate(series, horizon, m.opt, true)
	if err != nil {
		return nil, err
	}

	comps, err := decompose.Decompose(series, period)
	if err != nil {
		return nil, err
	}

	alpha, beta := comps.TrendLine()
	idx := comps.SeasonalIndices()
	n := series.Len()

	point := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		x := float64(n - 1 + h)
		point[h-1] = alpha + beta*x + idx[(n+h-1)%period]
	}

	sigma := stats.SampleStdDev(comps.Residual.Y)
	halfWidth := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		halfWidth[h-1] = m.opt.Zscore * sigma * math.Sqrt(float64(h))
	}

	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = alpha + beta*float64(i) + idx[i%period]
	}
	scores, err := stats.NewScores(fitted, series.Y)
	if err != nil {
		return nil, err
	}

	futureT, err := series.Extend(horizon)
	if err != nil {
		return nil, err
	}
	return newResult(TypeTrendExtrapolation, futureT, point, halfWidth, scores), nil
}
