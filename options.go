package cashflow

import "github.com/Kartiks5161/Cash-Flow-Dashboard/forecast"

// Options configure the engine: which model variants feed the ensemble,
// an optional explicit weight per model, and the shared forecast model
// options.
type Options struct {
	Models   []forecast.ModelType `json:"models"`
	Weights  map[string]float64   `json:"weights,omitempty"` // nil weighs by inverse in-sample error
	Parallel bool                 `json:"parallel"`

	Forecast *forecast.Options `json:"forecast"`
}

// NewDefaultOptions runs the full model set in parallel with
// inverse-error weighting.
func NewDefaultOptions() *Options {
	return &Options{
		Models: []forecast.ModelType{
			forecast.TypeSeasonalNaive,
			forecast.TypeExponentialSmoothing,
			forecast.TypeTrendExtrapolation,
			forecast.TypeMovingAverage,
		},
		Parallel: true,
		Forecast: forecast.NewDefaultOptions(),
	}
}
