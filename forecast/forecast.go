// Package forecast implements the statistical forecast model family:
// seasonal naive, exponential smoothing, trend extrapolation, and moving
// average. Models are a closed variant set constructed by name; adding a
// model means adding a variant and its Forecast implementation.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/decompose"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

var (
	ErrInvalidHorizon   = errors.New("horizon must be positive")
	ErrInsufficientData = errors.New("insufficient observations for forecast")
	ErrUnknownModel     = errors.New("unknown forecast model")
)

// ModelType enumerates the forecast model variants.
type ModelType string

const (
	TypeSeasonalNaive        ModelType = "seasonal_naive"
	TypeExponentialSmoothing ModelType = "exponential_smoothing"
	TypeTrendExtrapolation   ModelType = "trend_extrapolation"
	TypeMovingAverage        ModelType = "moving_average"

	// TypeEnsemble is the combined projection over the model set. It is
	// produced by the ensemble package, not by a Model variant.
	TypeEnsemble ModelType = "ensemble"
)

// Model is the common forecasting contract. Implementations are pure:
// they never mutate the input series and every call produces a new
// Result.
type Model interface {
	Type() ModelType
	Forecast(series *timeseries.TimeSeries, horizon int) (*Result, error)
}

// New returns the model variant for the given type name.
func New(typ ModelType, opt *Options) (Model, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	switch typ {
	case TypeSeasonalNaive:
		return &SeasonalNaive{opt: opt}, nil
	case TypeExponentialSmoothing:
		return &ExponentialSmoothing{opt: opt}, nil
	case TypeTrendExtrapolation:
		return &TrendExtrapolation{opt: opt}, nil
	case TypeMovingAverage:
		return &MovingAverage{opt: opt}, nil
	}
	return nil, fmt.Errorf("%q, %w", typ, ErrUnknownModel)
}

// Options control the forecast model family. A Period of 0 infers the
// seasonal period from the series.
type Options struct {
	Period int     `json:"period"`
	Zscore float64 `json:"zscore"` // band half-width in residual standard deviations

	// exponential smoothing factors
	Alpha float64 `json:"alpha"` // level
	Beta  float64 `json:"beta"`  // trend
	Gamma float64 `json:"gamma"` // seasonal

	// moving average window
	Window int `json:"window"`
}

// NewDefaultOptions returns forecast options with a 95% uncertainty band
// and conventional smoothing factors.
func NewDefaultOptions() *Options {
	return &Options{
		Period: 0,
		Zscore: 1.96,
		Alpha:  0.3,
		Beta:   0.1,
		Gamma:  0.2,
		Window: 3,
	}
}

// Result is a point forecast with uncertainty bounds over a horizon.
// Lower[i] <= Point[i] <= Upper[i] at every step and all slices have
// exactly Horizon points. Scores hold the model's in-sample fit used for
// ensemble weighting.
type Result struct {
	T         []time.Time  `json:"time"`
	Point     []float64    `json:"point"`
	Lower     []float64    `json:"lower"`
	Upper     []float64    `json:"upper"`
	ModelName string       `json:"model_name"`
	Horizon   int          `json:"horizon"`
	Scores    stats.Scores `json:"scores"`
}

// Copy returns a deep copy of the result.
func (r *Result) Copy() *Result {
	cp := &Result{
		T:         make([]time.Time, len(r.T)),
		Point:     make([]float64, len(r.Point)),
		Lower:     make([]float64, len(r.Lower)),
		Upper:     make([]float64, len(r.Upper)),
		ModelName: r.ModelName,
		Horizon:   r.Horizon,
		Scores:    r.Scores,
	}
	copy(cp.T, r.T)
	copy(cp.Point, r.Point)
	copy(cp.Lower, r.Lower)
	copy(cp.Upper, r.Upper)
	return cp
}

// HalfWidth returns half the distance between the upper and lower bound
// at step i.
func (r *Result) HalfWidth(i int) float64 {
	return (r.Upper[i] - r.Lower[i]) / 2.0
}

// newResult assembles a result from a point forecast and per-step band
// half-widths, recentering the bounds around the point values.
func newResult(typ ModelType, t []time.Time, point, halfWidth []float64, scores *stats.Scores) *Result {
	horizon := len(point)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		lower[i] = point[i] - halfWidth[i]
		upper[i] = point[i] + halfWidth[i]
	}
	r := &Result{
		T:         t,
		Point:     point,
		Lower:     lower,
		Upper:     upper,
		ModelName: string(typ),
		Horizon:   horizon,
	}
	if scores != nil {
		r.Scores = *scores
	}
	return r
}

// validate checks the common preconditions and resolves the seasonal
// period when the variant needs one.
func validate(series *timeseries.TimeSeries, horizon int, opt *Options, seasonal bool) (int, error) {
	if horizon <= 0 {
		return 0, fmt.Errorf("horizon of %d, %w", horizon, ErrInvalidHorizon)
	}

	n := series.Len()
	if !seasonal {
		if n < 3 {
			return 0, fmt.Errorf("series has %d observations, need at least 3, %w", n, ErrInsufficientData)
		}
		return 0, nil
	}

	period := opt.Period
	if period == 0 {
		inferred, err := decompose.InferPeriod(series)
		if err != nil {
			return 0, fmt.Errorf("%v, %w", err, ErrInsufficientData)
		}
		period = inferred
	}
	if n < 2*period {
		return 0, fmt.Errorf("series has %d observations, need at least %d for period %d, %w",
			n, 2*period, period, ErrInsufficientData)
	}
	return period, nil
}
