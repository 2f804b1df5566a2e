// Package cashflow is the forecasting and scenario engine for a
// time-indexed cash-flow ledger. It decomposes a series into seasonal
// structure, runs a family of statistical forecast models, blends them
// into a single ensemble projection with uncertainty bounds, and derives
// scenario-perturbed variants for stress testing.
package cashflow

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/decompose"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/ensemble"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/forecast"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/scenario"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/timeseries"
)

var (
	ErrNotFitted = errors.New("engine has not been fit with a series")
	ErrNoModels  = errors.New("no forecast models configured")
)

// Engine orchestrates decomposition, the forecast model set, ensemble
// combination, and scenario application over a single fitted series.
type Engine struct {
	opt *Options

	series *timeseries.TimeSeries
	period int
	comps  *decompose.Components
}

// New creates an engine with the provided options. If no options are
// provided a default is used.
func New(opt *Options) *Engine {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Forecast == nil {
		opt.Forecast = forecast.NewDefaultOptions()
	}
	return &Engine{opt: opt}
}

// Fit validates the input ledger series, resolves the seasonal period,
// and decomposes the series. The input slices are copied; the engine
// never mutates caller data.
func (e *Engine) Fit(t []time.Time, y []float64) error {
	series, err := timeseries.New(t, y)
	if err != nil {
		return fmt.Errorf("unable to create ledger series, %w", err)
	}

	period := e.opt.Forecast.Period
	if period == 0 {
		period, err = decompose.InferPeriod(series)
		if err != nil {
			return fmt.Errorf("unable to infer seasonal period, %w", err)
		}
	}

	comps, err := decompose.Decompose(series, period)
	if err != nil {
		return fmt.Errorf("unable to decompose ledger series, %w", err)
	}

	e.series = series
	e.period = period
	e.comps = comps
	return nil
}

// Forecast runs every configured model over the fitted series and
// combines them into an ensemble projection. Model runs have no data
// dependency on each other and fan out across goroutines when Parallel
// is set; results join in model declaration order so parallel and
// sequential execution produce identical output.
func (e *Engine) Forecast(horizon int) (*ensemble.Result, error) {
	if e.series == nil {
		return nil, ErrNotFitted
	}
	if len(e.opt.Models) == 0 {
		return nil, ErrNoModels
	}

	fopt := e.forecastOptions()
	results := make([]*forecast.Result, len(e.opt.Models))
	errs := make([]error, len(e.opt.Models))

	run := func(i int, typ forecast.ModelType) {
		m, err := forecast.New(typ, fopt)
		if err != nil {
			errs[i] = err
			return
		}
		results[i], errs[i] = m.Forecast(e.series, horizon)
	}

	if e.opt.Parallel {
		var wg sync.WaitGroup
		for i, typ := range e.opt.Models {
			wg.Add(1)
			go func(i int, typ forecast.ModelType) {
				defer wg.Done()
				run(i, typ)
			}(i, typ)
		}
		wg.Wait()
	} else {
		for i, typ := range e.opt.Models {
			run(i, typ)
		}
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("unable to forecast with %q, %w", e.opt.Models[i], err)
		}
	}

	res, err := ensemble.Combine(results, e.opt.Weights)
	if err != nil {
		return nil, fmt.Errorf("unable to combine member forecasts, %w", err)
	}
	return res, nil
}

// ForecastModel runs a single model variant selected by name. The name
// "ensemble" runs the full model set and returns the combined
// projection.
func (e *Engine) ForecastModel(typ forecast.ModelType, horizon int) (*forecast.Result, error) {
	if e.series == nil {
		return nil, ErrNotFitted
	}

	if typ == forecast.TypeEnsemble {
		res, err := e.Forecast(horizon)
		if err != nil {
			return nil, err
		}
		return res.Combined, nil
	}

	m, err := forecast.New(typ, e.forecastOptions())
	if err != nil {
		return nil, err
	}
	return m.Forecast(e.series, horizon)
}

// ApplyScenario derives a perturbed variant of an ensemble forecast by
// applying the profiles in sequence. The input result is unchanged.
func (e *Engine) ApplyScenario(res *ensemble.Result, profiles ...scenario.Profile) (*ensemble.Result, error) {
	return scenario.ApplyAll(res, profiles...)
}

// Decomposition returns the seasonal structure of the fitted series.
func (e *Engine) Decomposition() *decompose.Components {
	if e.comps == nil {
		return nil
	}
	return &decompose.Components{
		Trend:    e.comps.Trend.Copy(),
		Seasonal: e.comps.Seasonal.Copy(),
		Residual: e.comps.Residual.Copy(),
		Period:   e.comps.Period,
	}
}

// Period returns the resolved seasonal period of the fitted series.
func (e *Engine) Period() int {
	return e.period
}

// SeasonalStats summarizes the seasonal pattern of the fitted series.
func (e *Engine) SeasonalStats() (*decompose.SeasonalStats, error) {
	if e.series == nil {
		return nil, ErrNotFitted
	}
	return decompose.NewSeasonalStats(e.series, e.period)
}

// TrendStats summarizes the long-term trend of the fitted series.
func (e *Engine) TrendStats() (*decompose.TrendStats, error) {
	if e.series == nil {
		return nil, ErrNotFitted
	}
	return decompose.NewTrendStats(e.series)
}

// Series returns a copy of the fitted ledger series.
func (e *Engine) Series() *timeseries.TimeSeries {
	if e.series == nil {
		return nil
	}
	return e.series.Copy()
}

func (e *Engine) forecastOptions() *forecast.Options {
	fopt := *e.opt.Forecast
	fopt.Period = e.period
	return &fopt
}
