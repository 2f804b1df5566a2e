package decompose

import (
	"fmt"
	"math"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
	"gonum.org/v1/gonum/stat"
)

// SeasonalStats summarizes the seasonal pattern of a series by grouping
// observations by their position in the period. Positions are 1-based so
// position 1 of a monthly series starting in January is January.
type SeasonalStats struct {
	Period         int       `json:"period"`
	PositionMean   []float64 `json:"position_mean"`
	PositionStdDev []float64 `json:"position_std_dev"`
	SeasonalIndex  []float64 `json:"seasonal_index"` // position mean over overall mean
	Variation      []float64 `json:"variation"`      // percent deviation from overall mean
	PeakPosition   int       `json:"peak_position"`
	TroughPosition int       `json:"trough_position"`
	SeasonalRange  float64   `json:"seasonal_range"`
	CoefVariation  float64   `json:"coef_variation"`
}

// NewSeasonalStats computes seasonal summary statistics for a series
// with the given period.
func NewSeasonalStats(series *timeseries.TimeSeries, period int) (*SeasonalStats, error) {
	n := series.Len()
	if period <= 1 || period > n/2 {
		return nil, fmt.Errorf("period of %d with %d observations, %w", period, n, ErrInvalidPeriod)
	}

	groups := make([][]float64, period)
	for i := 0; i < n; i++ {
		pos := i % period
		groups[pos] = append(groups[pos], series.Y[i])
	}

	overallMean := stat.Mean(series.Y, nil)
	s := &SeasonalStats{
		Period:         period,
		PositionMean:   make([]float64, period),
		PositionStdDev: make([]float64, period),
		SeasonalIndex:  make([]float64, period),
		Variation:      make([]float64, period),
		PeakPosition:   1,
		TroughPosition: 1,
	}

	var meanSum, stddevSum float64
	for pos := 0; pos < period; pos++ {
		mean := stat.Mean(groups[pos], nil)
		var stddev float64
		if len(groups[pos]) > 1 {
			stddev = stat.StdDev(groups[pos], nil)
		}
		s.PositionMean[pos] = mean
		s.PositionStdDev[pos] = stddev
		if overallMean != 0 {
			s.SeasonalIndex[pos] = mean / overallMean
			s.Variation[pos] = (mean - overallMean) / overallMean * 100.0
		}
		meanSum += mean
		stddevSum += stddev

		if mean > s.PositionMean[s.PeakPosition-1] {
			s.PeakPosition = pos + 1
		}
		if mean < s.PositionMean[s.TroughPosition-1] {
			s.TroughPosition = pos + 1
		}
	}
	s.SeasonalRange = s.PositionMean[s.PeakPosition-1] - s.PositionMean[s.TroughPosition-1]
	if meanSum != 0 {
		s.CoefVariation = (stddevSum / float64(period)) / (meanSum / float64(period))
	}
	return s, nil
}

// TrendStats summarizes the long-term direction of a series with a least
// squares line over the observation index.
type TrendStats struct {
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	RSquared        float64 `json:"r_squared"`
	TotalChangePct  float64 `json:"total_change_pct"`
	PeriodGrowthPct float64 `json:"period_growth_pct"` // per-step growth relative to the first value
}

// NewTrendStats fits a linear trend to the series.
func NewTrendStats(series *timeseries.TimeSeries) (*TrendStats, error) {
	n := series.Len()
	if n < 2 {
		return nil, fmt.Errorf("series has %d observations, need at least 2, %w", n, ErrInsufficientData)
	}

	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, series.Y, nil, false)
	r2 := stat.RSquared(xs, series.Y, nil, alpha, beta)

	start := series.Y[0]
	end := series.Y[n-1]
	totalChange := math.Inf(1)
	periodGrowth := math.Inf(1)
	if start != 0 {
		totalChange = (end - start) / math.Abs(start) * 100.0
		periodGrowth = beta / math.Abs(start) * 100.0
	}

	return &TrendStats{
		Slope:           beta,
		Intercept:       alpha,
		RSquared:        r2,
		TotalChangePct:  totalChange,
		PeriodGrowthPct: periodGrowth,
	}, nil
}
