package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoData          = errors.New("no observations")
	ErrLenMismatch     = errors.New("time points have a different length than observations")
	ErrNonMonotonic    = errors.New("time points are not strictly increasing")
	ErrCannotInferFreq = errors.New("cannot infer frequency from time points")
)

// TimeSeries is the canonical representation of an ordered series of
// cash-flow observations. Timestamps are strictly increasing and the
// series is immutable once constructed; constructors and accessors copy
// so no caller can reach into internal state.
type TimeSeries struct {
	T []time.Time
	Y []float64
}

// New returns a TimeSeries given a time and value slice. Both slices are
// copied. Fails when the slices differ in length or the time points are
// not strictly increasing.
func New(t []time.Time, y []float64) (*TimeSeries, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time points have length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrLenMismatch,
		)
	}

	var lastT time.Time
	for i := 0; i < len(t); i++ {
		currT := t[i]
		if currT.Before(lastT) || currT.Equal(lastT) {
			return nil, fmt.Errorf("non-increasing time point at %d, %w", i, ErrNonMonotonic)
		}
		lastT = currT
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(y))
	copy(tSeries, t)
	copy(ySeries, y)
	return &TimeSeries{
		T: tSeries,
		Y: ySeries,
	}, nil
}

// Copy returns a deep copy of the series.
func (ts *TimeSeries) Copy() *TimeSeries {
	tSeries := make([]time.Time, len(ts.T))
	ySeries := make([]float64, len(ts.Y))
	copy(tSeries, ts.T)
	copy(ySeries, ts.Y)
	return &TimeSeries{
		T: tSeries,
		Y: ySeries,
	}
}

// Len returns the number of observations in the series.
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Y)
}

func (ts *TimeSeries) StartTime() time.Time {
	var startTime time.Time
	if ts.Len() < 1 {
		return startTime
	}
	return ts.T[0]
}

func (ts *TimeSeries) EndTime() time.Time {
	var endTime time.Time
	if ts.Len() < 1 {
		return endTime
	}
	return ts.T[len(ts.T)-1]
}

// EstimateFreq returns the most common interval between consecutive time
// points, preferring the smallest interval on ties.
func (ts *TimeSeries) EstimateFreq() (time.Duration, error) {
	if ts.Len() < 2 {
		return 0, ErrCannotInferFreq
	}

	frequencies := make(map[time.Duration]int)
	for i := 1; i < len(ts.T); i++ {
		delta := ts.T[i].Sub(ts.T[i-1])
		frequencies[delta] += 1
	}

	var maxCnt int
	maxDelta := time.Duration(math.MaxInt64)

	for delta, cnt := range frequencies {
		if cnt >= maxCnt && delta < maxDelta {
			maxCnt = cnt
			maxDelta = delta
		}
	}
	return maxDelta, nil
}

// Extend generates horizon future time points continuing the series at
// its observed frequency. Monthly and quarterly series step by calendar
// months since those intervals are not a fixed duration.
func (ts *TimeSeries) Extend(horizon int) ([]time.Time, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon of %d must be positive", horizon)
	}

	freq, err := ts.Frequency()
	if err != nil {
		return nil, err
	}
	last := ts.EndTime()

	future := make([]time.Time, 0, horizon)
	switch freq {
	case Monthly:
		for i := 1; i <= horizon; i++ {
			future = append(future, last.AddDate(0, i, 0))
		}
	case Quarterly:
		for i := 1; i <= horizon; i++ {
			future = append(future, last.AddDate(0, 3*i, 0))
		}
	default:
		delta, err := ts.EstimateFreq()
		if err != nil {
			return nil, err
		}
		for i := 1; i <= horizon; i++ {
			future = append(future, last.Add(time.Duration(i)*delta))
		}
	}
	return future, nil
}
