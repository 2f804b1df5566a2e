package ensemble

import (
	"math"
	"testing"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/forecast"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberResult(name string, horizon int, point, halfWidth, mae float64) *forecast.Result {
	t := make([]time.Time, horizon)
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	points := make([]float64, horizon)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		t[i] = start.AddDate(0, i, 0)
		points[i] = point
		lower[i] = point - halfWidth
		upper[i] = point + halfWidth
	}
	return &forecast.Result{
		T:         t,
		Point:     points,
		Lower:     lower,
		Upper:     upper,
		ModelName: name,
		Horizon:   horizon,
		Scores:    stats.Scores{MAE: mae},
	}
}

func TestCombineEmpty(t *testing.T) {
	_, err := Combine(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyEnsemble)
}

func TestCombineHorizonMismatch(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 6, 100.0, 10.0, 1.0),
		memberResult("b", 3, 100.0, 10.0, 1.0),
	}
	_, err := Combine(members, nil)
	assert.ErrorIs(t, err, ErrHorizonMismatch)
}

func TestCombineWeightValidity(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 6, 100.0, 10.0, 1.0),
		memberResult("b", 6, 200.0, 20.0, 2.0),
		memberResult("c", 6, 300.0, 30.0, 4.0),
	}

	res, err := Combine(members, nil)
	require.NoError(t, err)
	require.Len(t, res.Weights, 3)

	var sum float64
	for _, w := range res.Weights {
		assert.GreaterOrEqual(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// lower in-sample error earns a higher weight
	assert.Greater(t, res.Weights["a"], res.Weights["b"])
	assert.Greater(t, res.Weights["b"], res.Weights["c"])
}

func TestCombineUniformOnZeroError(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 4, 100.0, 10.0, 0.0),
		memberResult("b", 4, 200.0, 20.0, 0.0),
	}

	res, err := Combine(members, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Weights["a"], 1e-9)
	assert.InDelta(t, 0.5, res.Weights["b"], 1e-9)
}

func TestCombineZeroErrorDominates(t *testing.T) {
	members := []*forecast.Result{
		memberResult("perfect", 4, 100.0, 10.0, 0.0),
		memberResult("noisy", 4, 200.0, 20.0, 5.0),
	}

	res, err := Combine(members, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Weights["perfect"], 1e-9)
	assert.InDelta(t, 0.0, res.Weights["noisy"], 1e-9)
}

func TestCombineExplicitWeights(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 6, 100.0, 8.0, 1.0),
		memberResult("b", 6, 200.0, 6.0, 2.0),
	}
	weights := map[string]float64{"a": 1.0, "b": 3.0}

	res, err := Combine(members, weights)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Weights["a"], 1e-9)
	assert.InDelta(t, 0.75, res.Weights["b"], 1e-9)

	// combined point is the weighted aggregate
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 0.25*100.0+0.75*200.0, res.Combined.Point[i], 1e-9)
	}

	// bounds combine member half-widths by weighted variance, not a
	// weighted average of the bounds
	expectedHW := math.Sqrt(0.25*0.25*8.0*8.0 + 0.75*0.75*6.0*6.0)
	for i := 0; i < 6; i++ {
		assert.InDelta(t, expectedHW, res.Combined.HalfWidth(i), 1e-9)
		assert.LessOrEqual(t, res.Combined.Lower[i], res.Combined.Point[i])
		assert.GreaterOrEqual(t, res.Combined.Upper[i], res.Combined.Point[i])
	}
}

func TestCombineWeightErrors(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 6, 100.0, 8.0, 1.0),
		memberResult("b", 6, 200.0, 6.0, 2.0),
	}

	testData := map[string]struct {
		weights  map[string]float64
		expected error
	}{
		"missing member":  {map[string]float64{"a": 1.0}, ErrMissingWeight},
		"negative weight": {map[string]float64{"a": 1.0, "b": -1.0}, ErrInvalidWeight},
		"zero sum":        {map[string]float64{"a": 0.0, "b": 0.0}, ErrInvalidWeight},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := Combine(members, td.weights)
			assert.ErrorIs(t, err, td.expected)
		})
	}
}

func TestCombineCopiesMembers(t *testing.T) {
	member := memberResult("a", 4, 100.0, 10.0, 1.0)

	res, err := Combine([]*forecast.Result{member}, nil)
	require.NoError(t, err)

	member.Point[0] = 0.0
	assert.Equal(t, 100.0, res.Members[0].Point[0])
	assert.Equal(t, string(forecast.TypeEnsemble), res.Combined.ModelName)
}

func TestResultCopy(t *testing.T) {
	members := []*forecast.Result{
		memberResult("a", 4, 100.0, 10.0, 1.0),
		memberResult("b", 4, 200.0, 20.0, 2.0),
	}
	res, err := Combine(members, nil)
	require.NoError(t, err)

	cp := res.Copy()
	cp.Combined.Point[0] = 0.0
	cp.Members[0].Point[0] = 0.0
	cp.Weights["a"] = 99.0

	assert.NotEqual(t, res.Combined.Point[0], cp.Combined.Point[0])
	assert.NotEqual(t, res.Members[0].Point[0], cp.Members[0].Point[0])
	assert.NotEqual(t, res.Weights["a"], cp.Weights["a"])
}
