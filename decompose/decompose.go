// Package decompose implements classical additive decomposition of a
// cash-flow series into trend, seasonal, and residual components.
package decompose

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientData  = errors.New("insufficient observations for seasonal period")
	ErrInvalidPeriod     = errors.New("period must be greater than 1 and at most half the series length")
	ErrNoPeriod          = errors.New("cannot infer a seasonal period from the series")
	ErrUnsupportedMethod = errors.New("unsupported decomposition method")
)

// Method selects the decomposition model. Only additive decomposition is
// implemented; multiplicative is the extension point for ratio-based
// seasonality.
type Method string

const MethodAdditive Method = "additive"

// Components holds the decomposed structure of a series. Trend is
// undefined at the first and last period/2 points, marked NaN rather
// than extrapolated; residual is NaN wherever trend is. At every point
// where all three components are defined, trend+seasonal+residual
// reconstructs the original value.
type Components struct {
	Trend    *timeseries.TimeSeries `json:"trend"`
	Seasonal *timeseries.TimeSeries `json:"seasonal"`
	Residual *timeseries.TimeSeries `json:"residual"`
	Period   int                    `json:"period"`
}

// SeasonalIndices returns the zero-sum seasonal index for each position
// in the period, indexed by position of the first observation.
func (c *Components) SeasonalIndices() []float64 {
	idx := make([]float64, c.Period)
	for i := 0; i < c.Period && i < c.Seasonal.Len(); i++ {
		idx[i] = c.Seasonal.Y[i]
	}
	return idx
}

// Decompose splits a series into trend, seasonal, and residual
// components using a centered moving average of window = period. A
// period of 0 infers the period from the series frequency or its
// autocorrelation structure. The series must have at least 2*period
// observations.
func Decompose(series *timeseries.TimeSeries, period int) (*Components, error) {
	return DecomposeMethod(series, period, MethodAdditive)
}

// DecomposeMethod decomposes with an explicit method.
func DecomposeMethod(series *timeseries.TimeSeries, period int, method Method) (*Components, error) {
	if method != MethodAdditive {
		return nil, fmt.Errorf("%q, %w", method, ErrUnsupportedMethod)
	}

	if period == 0 {
		inferred, err := InferPeriod(series)
		if err != nil {
			return nil, err
		}
		period = inferred
	}

	n := series.Len()
	if period <= 1 {
		return nil, fmt.Errorf("period of %d, %w", period, ErrInvalidPeriod)
	}
	// n >= 2*period also bounds the period to half the series length
	if n < 2*period {
		return nil, fmt.Errorf("series has %d observations, need at least %d, %w", n, 2*period, ErrInsufficientData)
	}

	trend := centeredMovingAverage(series.Y, period)

	// seasonal index per position from the detrended values
	sums := make([]float64, period)
	cnts := make([]float64, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(trend[i]) {
			continue
		}
		pos := i % period
		sums[pos] += series.Y[i] - trend[i]
		cnts[pos] += 1
	}
	idx := make([]float64, period)
	var idxMean float64
	for pos := 0; pos < period; pos++ {
		if cnts[pos] > 0 {
			idx[pos] = sums[pos] / cnts[pos]
		}
		idxMean += idx[pos]
	}
	idxMean /= float64(period)

	// normalize so seasonal effects sum to zero over one period
	seasonal := make([]float64, n)
	for pos := 0; pos < period; pos++ {
		idx[pos] -= idxMean
	}
	for i := 0; i < n; i++ {
		seasonal[i] = idx[i%period]
	}

	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
			continue
		}
		residual[i] = series.Y[i] - trend[i] - seasonal[i]
	}

	return &Components{
		Trend:    componentSeries(series, trend),
		Seasonal: componentSeries(series, seasonal),
		Residual: componentSeries(series, residual),
		Period:   period,
	}, nil
}

// componentSeries pairs a derived component with a copy of the original
// time points.
func componentSeries(series *timeseries.TimeSeries, y []float64) *timeseries.TimeSeries {
	t := make([]time.Time, len(series.T))
	copy(t, series.T)
	return &timeseries.TimeSeries{T: t, Y: y}
}

// centeredMovingAverage computes the trend estimate. Odd periods use a
// plain centered window; even periods use a window of period+1 with half
// weights on the endpoints so the average stays centered. The first and
// last period/2 points have no full window and are NaN.
func centeredMovingAverage(y []float64, period int) []float64 {
	n := len(y)
	trend := make([]float64, n)
	half := period / 2
	for i := 0; i < n; i++ {
		trend[i] = math.NaN()
	}

	if period%2 == 1 {
		for i := half; i < n-half; i++ {
			var sum float64
			for j := i - half; j <= i+half; j++ {
				sum += y[j]
			}
			trend[i] = sum / float64(period)
		}
		return trend
	}

	for i := half; i < n-half; i++ {
		sum := 0.5*y[i-half] + 0.5*y[i+half]
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += y[j]
		}
		trend[i] = sum / float64(period)
	}
	return trend
}

// InferPeriod determines the seasonal period of a series, first from its
// observed frequency (12 for monthly, 7 for daily data) and otherwise by
// searching for the autocorrelation peak over admissible lags 2..n/2.
func InferPeriod(series *timeseries.TimeSeries) (int, error) {
	n := series.Len()
	if freq, err := series.Frequency(); err == nil {
		if period := freq.DefaultPeriod(); period > 1 && n >= 2*period {
			return period, nil
		}
	}

	maxLag := n / 2
	if maxLag < 2 {
		return 0, fmt.Errorf("series has %d observations, need at least 4, %w", n, ErrNoPeriod)
	}

	bestLag := 0
	bestACF := math.Inf(-1)
	for lag := 2; lag <= maxLag; lag++ {
		acf := stats.Autocorrelation(series.Y, lag)
		if acf > bestACF {
			bestACF = acf
			bestLag = lag
		}
	}
	if bestLag == 0 || bestACF <= 0 {
		return 0, fmt.Errorf("no positive autocorrelation peak over lags 2..%d, %w", maxLag, ErrNoPeriod)
	}
	return bestLag, nil
}

// Reconstruct returns trend+seasonal+residual, NaN where the trend is
// undefined.
func (c *Components) Reconstruct() []float64 {
	n := c.Trend.Len()
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = c.Trend.Y[i] + c.Seasonal.Y[i] + c.Residual.Y[i]
	}
	return y
}

// TrendLine fits a least squares line through the defined region of the
// trend component, returning the intercept and per-step slope in
// observation index units.
func (c *Components) TrendLine() (alpha, beta float64) {
	xs := make([]float64, 0, c.Trend.Len())
	ys := make([]float64, 0, c.Trend.Len())
	for i := 0; i < c.Trend.Len(); i++ {
		if math.IsNaN(c.Trend.Y[i]) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, c.Trend.Y[i])
	}
	return stat.LinearRegression(xs, ys, nil, false)
}
