package decompose

import (
	"math"
	"testing"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nowFunc() time.Time {
	return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func monthlySeries(t *testing.T, n int, bias, slope, amp float64) *timeseries.TimeSeries {
	t.Helper()
	tPnts := timeseries.GenerateMonthlyT(n, nowFunc)
	y := timeseries.GenerateTrendY(n, bias, slope).
		Add(timeseries.GenerateCycleY(n, amp, 12, 0))
	series, err := timeseries.New(tPnts, y)
	require.NoError(t, err)
	return series
}

func TestDecomposeReconstruction(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)

	comps, err := Decompose(series, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, comps.Period)

	reconstructed := comps.Reconstruct()
	var defined int
	for i := 0; i < series.Len(); i++ {
		if math.IsNaN(reconstructed[i]) {
			continue
		}
		assert.InDelta(t, series.Y[i], reconstructed[i], 1e-9)
		defined++
	}
	assert.Equal(t, series.Len()-12, defined)
}

func TestDecomposeTrendEdges(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)

	comps, err := Decompose(series, 12)
	require.NoError(t, err)

	// trend is undefined at the first and last period/2 points
	for i := 0; i < 6; i++ {
		assert.True(t, math.IsNaN(comps.Trend.Y[i]), "leading edge %d", i)
		assert.True(t, math.IsNaN(comps.Trend.Y[47-i]), "trailing edge %d", 47-i)
		assert.True(t, math.IsNaN(comps.Residual.Y[i]))
	}
	for i := 6; i < 42; i++ {
		assert.False(t, math.IsNaN(comps.Trend.Y[i]), "interior %d", i)
	}
}

func TestDecomposeLinearTrendRecovery(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)

	comps, err := Decompose(series, 12)
	require.NoError(t, err)

	// centered moving average over full cycles cancels the seasonal
	// component leaving the line
	for i := 6; i < 42; i++ {
		assert.InDelta(t, 1000.0+2.0*float64(i), comps.Trend.Y[i], 1e-6)
	}

	alpha, beta := comps.TrendLine()
	assert.InDelta(t, 1000.0, alpha, 1e-6)
	assert.InDelta(t, 2.0, beta, 1e-6)
}

func TestDecomposeSeasonalZeroSum(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)

	comps, err := Decompose(series, 12)
	require.NoError(t, err)

	idx := comps.SeasonalIndices()
	require.Len(t, idx, 12)

	var sum float64
	for _, val := range idx {
		sum += val
	}
	assert.InDelta(t, 0.0, sum, 1e-9)
}

func TestDecomposeErrors(t *testing.T) {
	testData := map[string]struct {
		n        int
		period   int
		expected error
	}{
		"ten points period twelve": {10, 12, ErrInsufficientData},
		"period one":               {24, 1, ErrInvalidPeriod},
		"period zero short series": {3, 0, ErrNoPeriod},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			tPnts := timeseries.GenerateMonthlyT(td.n, nowFunc)
			y := timeseries.GenerateTrendY(td.n, 100.0, 1.0)
			series, err := timeseries.New(tPnts, y)
			require.NoError(t, err)

			_, err = Decompose(series, td.period)
			require.Error(t, err)
			assert.ErrorIs(t, err, td.expected)
		})
	}
}

func TestDecomposeUnsupportedMethod(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)
	_, err := DecomposeMethod(series, 12, Method("multiplicative"))
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestInferPeriodFromFrequency(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 2.0, 500.0)

	period, err := InferPeriod(series)
	require.NoError(t, err)
	assert.Equal(t, 12, period)
}

func TestInferPeriodFromAutocorrelation(t *testing.T) {
	// 2 day spacing has no natural period so inference falls back to the
	// autocorrelation peak search
	n := 32
	tPnts := make([]time.Time, 0, n)
	start := nowFunc()
	for i := 0; i < n; i++ {
		tPnts = append(tPnts, start.Add(time.Duration(i)*48*time.Hour))
	}
	cycle := []float64{10.0, 20.0, 30.0, 40.0}
	y := make([]float64, 0, n)
	for i := 0; i < n/4; i++ {
		y = append(y, cycle...)
	}
	series, err := timeseries.New(tPnts, y)
	require.NoError(t, err)

	period, err := InferPeriod(series)
	require.NoError(t, err)
	assert.Equal(t, 4, period)
}

func TestSeasonalStats(t *testing.T) {
	series := monthlySeries(t, 48, 1000.0, 0.0, 500.0)

	stats, err := NewSeasonalStats(series, 12)
	require.NoError(t, err)

	require.Len(t, stats.PositionMean, 12)
	require.Len(t, stats.SeasonalIndex, 12)

	// sine cycle with phase 0 peaks at position 4 (sin(2*pi*3/12)=1) and
	// troughs at position 10
	assert.Equal(t, 4, stats.PeakPosition)
	assert.Equal(t, 10, stats.TroughPosition)
	assert.InDelta(t, 1000.0, stats.SeasonalRange, 1e-9)
	assert.InDelta(t, 1.5, stats.SeasonalIndex[3], 1e-9)
}

func TestTrendStats(t *testing.T) {
	n := 24
	tPnts := timeseries.GenerateMonthlyT(n, nowFunc)
	y := timeseries.GenerateTrendY(n, 5.0, 2.0)
	series, err := timeseries.New(tPnts, y)
	require.NoError(t, err)

	stats, err := NewTrendStats(series)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, stats.Slope, 1e-9)
	assert.InDelta(t, 5.0, stats.Intercept, 1e-9)
	assert.InDelta(t, 1.0, stats.RSquared, 1e-9)
	assert.InDelta(t, 2.0/5.0*100.0, stats.PeriodGrowthPct, 1e-9)
}
