package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// Scores track how well a model fit its training data. NaN points are
// skipped so partially defined fits can still be scored.
type Scores struct {
	MAE  float64 `json:"mae"`  // mean absolute error
	MSE  float64 `json:"mse"`  // mean squared error
	MAPE float64 `json:"mape"` // mean absolute percent error
}

func NewScores(predicted, actual []float64) (*Scores, error) {
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	mse, err := MSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	return &Scores{
		MAE:  mae,
		MSE:  mse,
		MAPE: mape,
	}, nil
}

func MAE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mae := 0.0
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mae += math.Abs(actual[i] - predicted[i])
		cnt++
	}
	if cnt == 0 {
		return 0, nil
	}
	return mae / float64(cnt), nil
}

func MSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mse := 0.0
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
		cnt++
	}
	if cnt == 0 {
		return 0, nil
	}
	return mse / float64(cnt), nil
}

func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mape := 0.0
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
		cnt++
	}
	if cnt == 0 {
		return 0, nil
	}
	return mape / float64(cnt), nil
}

// DropNaN returns a copy of y with NaN points removed.
func DropNaN(y []float64) []float64 {
	filtered := make([]float64, 0, len(y))
	for _, val := range y {
		if math.IsNaN(val) {
			continue
		}
		filtered = append(filtered, val)
	}
	return filtered
}

// SampleStdDev returns the sample standard deviation of y skipping NaN
// points. Returns 0 when fewer than two defined points remain.
func SampleStdDev(y []float64) float64 {
	filtered := DropNaN(y)
	if len(filtered) < 2 {
		return 0
	}
	return stat.StdDev(filtered, nil)
}

// Autocorrelation returns the autocorrelation of y at the given lag,
// normalized by the series variance.
func Autocorrelation(y []float64, lag int) float64 {
	if lag < 0 || lag >= len(y) {
		return 0
	}

	mean := stat.Mean(y, nil)
	var denom float64
	for i := 0; i < len(y); i++ {
		denom += (y[i] - mean) * (y[i] - mean)
	}
	if denom == 0 {
		return 0
	}

	var num float64
	for i := 0; i < len(y)-lag; i++ {
		num += (y[i] - mean) * (y[i+lag] - mean)
	}
	return num / denom
}
