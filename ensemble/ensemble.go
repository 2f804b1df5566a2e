// Package ensemble merges the outputs of independent forecast models
// into a single projection with a combined confidence interval.
package ensemble

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/forecast"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
)

var (
	ErrEmptyEnsemble   = errors.New("no member results to combine")
	ErrHorizonMismatch = errors.New("member results have different horizons")
	ErrMissingWeight   = errors.New("no weight provided for member model")
	ErrInvalidWeight   = errors.New("weights must be non-negative with a positive sum")
)

// Result is the combined projection over a set of member forecasts.
// Weights are non-negative and sum to 1; Combined is the weighted
// aggregate of Members.
type Result struct {
	Combined *forecast.Result   `json:"combined"`
	Members  []*forecast.Result `json:"members"`
	Weights  map[string]float64 `json:"weights"`
}

// Copy returns a deep copy of the result.
func (r *Result) Copy() *Result {
	members := make([]*forecast.Result, len(r.Members))
	for i, m := range r.Members {
		members[i] = m.Copy()
	}
	weights := make(map[string]float64, len(r.Weights))
	for name, w := range r.Weights {
		weights[name] = w
	}
	return &Result{
		Combined: r.Combined.Copy(),
		Members:  members,
		Weights:  weights,
	}
}

// Combine merges member forecasts into one projection. A nil weights
// map weighs members by the inverse of their in-sample mean absolute
// error so better-fitting models contribute more; explicit weights are
// normalized to sum to 1 and must cover every member. Combined bounds
// use a weighted-variance combination of member half-widths assuming
// independent model errors, which avoids understating uncertainty.
func Combine(members []*forecast.Result, weights map[string]float64) (*Result, error) {
	if len(members) == 0 {
		return nil, ErrEmptyEnsemble
	}

	horizon := members[0].Horizon
	for _, m := range members[1:] {
		if m.Horizon != horizon {
			return nil, fmt.Errorf("horizon %d from %q differs from %d, %w",
				m.Horizon, m.ModelName, horizon, ErrHorizonMismatch)
		}
	}

	var w []float64
	var err error
	if weights == nil {
		w = inverseErrorWeights(members)
	} else {
		w, err = normalizedWeights(members, weights)
		if err != nil {
			return nil, err
		}
	}

	point := make([]float64, horizon)
	halfWidth := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		var p, v float64
		for j, m := range members {
			p += w[j] * m.Point[i]
			hw := m.HalfWidth(i)
			v += w[j] * w[j] * hw * hw
		}
		point[i] = p
		halfWidth[i] = math.Sqrt(v)
	}

	lower := make([]float64, horizon)
	upper := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		lower[i] = point[i] - halfWidth[i]
		upper[i] = point[i] + halfWidth[i]
	}

	weightByName := make(map[string]float64, len(members))
	memberCopies := make([]*forecast.Result, len(members))
	var combinedScores stats.Scores
	for j, m := range members {
		weightByName[m.ModelName] = w[j]
		memberCopies[j] = m.Copy()
		combinedScores.MAE += w[j] * m.Scores.MAE
		combinedScores.MSE += w[j] * m.Scores.MSE
		combinedScores.MAPE += w[j] * m.Scores.MAPE
	}

	t := make([]time.Time, len(members[0].T))
	copy(t, members[0].T)

	combined := &forecast.Result{
		T:         t,
		Point:     point,
		Lower:     lower,
		Upper:     upper,
		ModelName: string(forecast.TypeEnsemble),
		Horizon:   horizon,
		Scores:    combinedScores,
	}
	return &Result{
		Combined: combined,
		Members:  memberCopies,
		Weights:  weightByName,
	}, nil
}

// inverseErrorWeights weighs members by 1/MAE. Members with a zero
// in-sample error split the full weight uniformly among themselves; when
// every error is zero this reduces to uniform weights.
func inverseErrorWeights(members []*forecast.Result) []float64 {
	w := make([]float64, len(members))

	var zeroCnt int
	for _, m := range members {
		if m.Scores.MAE == 0 {
			zeroCnt++
		}
	}
	if zeroCnt > 0 {
		for j, m := range members {
			if m.Scores.MAE == 0 {
				w[j] = 1.0 / float64(zeroCnt)
			}
		}
		return w
	}

	var sum float64
	for j, m := range members {
		w[j] = 1.0 / m.Scores.MAE
		sum += w[j]
	}
	for j := range w {
		w[j] /= sum
	}
	return w
}

func normalizedWeights(members []*forecast.Result, weights map[string]float64) ([]float64, error) {
	w := make([]float64, len(members))
	var sum float64
	for j, m := range members {
		weight, exists := weights[m.ModelName]
		if !exists {
			return nil, fmt.Errorf("%q, %w", m.ModelName, ErrMissingWeight)
		}
		if weight < 0 {
			return nil, fmt.Errorf("weight of %f for %q, %w", weight, m.ModelName, ErrInvalidWeight)
		}
		w[j] = weight
		sum += weight
	}
	if sum == 0 {
		return nil, fmt.Errorf("weights sum to 0, %w", ErrInvalidWeight)
	}
	for j := range w {
		w[j] /= sum
	}
	return w, nil
}
