package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nowFunc() time.Time {
	return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected error
	}{
		"no data": {
			t:        nil,
			y:        nil,
			expected: ErrNoData,
		},
		"length mismatch": {
			t:        []time.Time{base, base.AddDate(0, 1, 0)},
			y:        []float64{1.0},
			expected: ErrLenMismatch,
		},
		"duplicate time point": {
			t:        []time.Time{base, base, base.AddDate(0, 2, 0)},
			y:        []float64{1.0, 2.0, 3.0},
			expected: ErrNonMonotonic,
		},
		"decreasing time point": {
			t:        []time.Time{base.AddDate(0, 1, 0), base},
			y:        []float64{1.0, 2.0},
			expected: ErrNonMonotonic,
		},
		"valid": {
			t:        []time.Time{base, base.AddDate(0, 1, 0), base.AddDate(0, 2, 0)},
			y:        []float64{1.0, 2.0, 3.0},
			expected: nil,
		},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := New(td.t, td.y)
			if td.expected != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, td.expected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(td.y), res.Len())
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	tPnts := GenerateMonthlyT(3, nowFunc)
	y := []float64{1.0, 2.0, 3.0}

	ts, err := New(tPnts, y)
	require.NoError(t, err)

	y[0] = 99.0
	tPnts[0] = tPnts[0].AddDate(1, 0, 0)
	assert.Equal(t, 1.0, ts.Y[0])
	assert.NotEqual(t, tPnts[0], ts.T[0])
}

func TestEstimateFreq(t *testing.T) {
	tPnts := GenerateMonthlyT(24, nowFunc)
	y := make([]float64, 24)

	ts, err := New(tPnts, y)
	require.NoError(t, err)

	delta, err := ts.EstimateFreq()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, delta, 28*24*time.Hour)
	assert.LessOrEqual(t, delta, 31*24*time.Hour)
}

func TestFrequency(t *testing.T) {
	testData := map[string]struct {
		interval time.Duration
		expected Frequency
		period   int
	}{
		"hourly":    {time.Hour, Hourly, 24},
		"daily":     {24 * time.Hour, Daily, 7},
		"weekly":    {7 * 24 * time.Hour, Weekly, 52},
		"quarterly": {91 * 24 * time.Hour, Quarterly, 4},
		"unknown":   {48 * time.Hour, Unknown, 0},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			n := 8
			tPnts := make([]time.Time, 0, n)
			start := nowFunc()
			for i := 0; i < n; i++ {
				tPnts = append(tPnts, start.Add(time.Duration(i)*td.interval))
			}
			ts, err := New(tPnts, make([]float64, n))
			require.NoError(t, err)

			freq, err := ts.Frequency()
			require.NoError(t, err)
			assert.Equal(t, td.expected, freq)
			assert.Equal(t, td.period, freq.DefaultPeriod())
		})
	}
}

func TestFrequencyMonthly(t *testing.T) {
	ts, err := New(GenerateMonthlyT(24, nowFunc), make([]float64, 24))
	require.NoError(t, err)

	freq, err := ts.Frequency()
	require.NoError(t, err)
	assert.Equal(t, Monthly, freq)
	assert.Equal(t, 12, freq.DefaultPeriod())
}

func TestExtendMonthly(t *testing.T) {
	tPnts := GenerateMonthlyT(24, nowFunc)
	ts, err := New(tPnts, make([]float64, 24))
	require.NoError(t, err)

	future, err := ts.Extend(3)
	require.NoError(t, err)
	require.Len(t, future, 3)

	last := tPnts[len(tPnts)-1]
	for i, pnt := range future {
		assert.Equal(t, last.AddDate(0, i+1, 0), pnt)
		assert.Equal(t, 1, pnt.Day())
	}
}

func TestExtendInvalidHorizon(t *testing.T) {
	ts, err := New(GenerateMonthlyT(12, nowFunc), make([]float64, 12))
	require.NoError(t, err)

	_, err = ts.Extend(0)
	assert.Error(t, err)
}

func TestSimulatedSeries(t *testing.T) {
	n := 48
	tPnts := GenerateMonthlyT(n, nowFunc)
	y := GenerateTrendY(n, 1000.0, 2.0).
		Add(GenerateCycleY(n, 500.0, 12, 0)).
		Add(GenerateYearEndBoost(tPnts, 800.0, 400.0))

	ts, err := New(tPnts, y)
	require.NoError(t, err)
	assert.Equal(t, n, ts.Len())
	assert.Equal(t, tPnts[0], ts.StartTime())
	assert.Equal(t, tPnts[n-1], ts.EndTime())
}
