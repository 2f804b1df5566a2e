package cashflow

import (
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/decompose"
)

// Model is a serializable snapshot of a fitted engine: the options, the
// resolved seasonal structure, and the trend summary. Collaborators
// persist and inspect this without touching engine internals.
type Model struct {
	Options         *Options              `json:"options"`
	Period          int                   `json:"period"`
	TrainEndTime    time.Time             `json:"train_end_time"`
	SeasonalIndices []float64             `json:"seasonal_indices"`
	Trend           *decompose.TrendStats `json:"trend"`
}

// Model generates a serializable representation of the fitted engine.
func (e *Engine) Model() (Model, error) {
	if e.series == nil {
		return Model{}, ErrNotFitted
	}

	trend, err := decompose.NewTrendStats(e.series)
	if err != nil {
		return Model{}, err
	}
	return Model{
		Options:         e.opt,
		Period:          e.period,
		TrainEndTime:    e.series.EndTime(),
		SeasonalIndices: e.comps.SeasonalIndices(),
		Trend:           trend,
	}, nil
}
