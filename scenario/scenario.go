// Package scenario perturbs ensemble forecasts under named business
// conditions. Profiles are static configuration; applying one always
// produces a new result and profiles compose associatively under
// multiplication.
package scenario

import (
	"errors"
	"fmt"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/ensemble"
	"github.com/Kartiks5161/Cash-Flow-Dashboard/forecast"
)

var ErrProfileLengthMismatch = errors.New("profile multipliers disagree with the forecast horizon")

// Profile is a named perturbation of a forecast: either a uniform scalar
// or a per-period multiplier path, plus a scale factor on the width of
// the uncertainty band. Profiles are immutable value types.
type Profile struct {
	Name               string    `json:"name"`
	Multipliers        []float64 `json:"multipliers,omitempty"`
	Scalar             float64   `json:"scalar"`
	VarianceAdjustment float64   `json:"variance_adjustment"`
}

// NewProfile returns a profile applying a uniform scalar multiplier.
func NewProfile(name string, scalar, varianceAdjustment float64) Profile {
	return Profile{
		Name:               name,
		Scalar:             scalar,
		VarianceAdjustment: varianceAdjustment,
	}
}

// NewPathProfile returns a profile applying one multiplier per forecast
// step. The multipliers slice is copied.
func NewPathProfile(name string, multipliers []float64, varianceAdjustment float64) Profile {
	m := make([]float64, len(multipliers))
	copy(m, multipliers)
	return Profile{
		Name:               name,
		Multipliers:        m,
		Scalar:             1.0,
		VarianceAdjustment: varianceAdjustment,
	}
}

// Identity returns the profile that leaves a forecast unchanged.
func Identity() Profile {
	return NewProfile("identity", 1.0, 1.0)
}

func Pessimistic() Profile {
	return NewProfile("pessimistic", 0.8, 1.0)
}

func Optimistic() Profile {
	return NewProfile("optimistic", 1.2, 1.0)
}

func Conservative() Profile {
	return NewProfile("conservative", 0.9, 1.0)
}

func (p Profile) multiplierAt(i int) float64 {
	if p.Multipliers == nil {
		return p.Scalar
	}
	return p.Multipliers[i]
}

// Compose merges two profiles into the single profile whose application
// equals applying p then o. Multipliers multiply elementwise with scalar
// broadcast and variance adjustments multiply, so composition is
// associative. Fails when both profiles carry multiplier paths of
// different lengths.
func (p Profile) Compose(o Profile) (Profile, error) {
	combined := Profile{
		Name:               p.Name + "·" + o.Name,
		VarianceAdjustment: p.VarianceAdjustment * o.VarianceAdjustment,
		Scalar:             1.0,
	}

	switch {
	case p.Multipliers == nil && o.Multipliers == nil:
		combined.Scalar = p.Scalar * o.Scalar
	case p.Multipliers == nil:
		combined.Multipliers = scaled(o.Multipliers, p.Scalar)
	case o.Multipliers == nil:
		combined.Multipliers = scaled(p.Multipliers, o.Scalar)
	default:
		if len(p.Multipliers) != len(o.Multipliers) {
			return Profile{}, fmt.Errorf("multiplier paths of %d and %d steps, %w",
				len(p.Multipliers), len(o.Multipliers), ErrProfileLengthMismatch)
		}
		m := make([]float64, len(p.Multipliers))
		for i := range m {
			m[i] = p.Multipliers[i] * o.Multipliers[i]
		}
		combined.Multipliers = m
	}
	return combined, nil
}

func scaled(multipliers []float64, scalar float64) []float64 {
	m := make([]float64, len(multipliers))
	for i := range m {
		m[i] = multipliers[i] * scalar
	}
	return m
}

// Apply produces a new ensemble result with every point forecast scaled
// by the profile's multiplier for its position and every band half-width
// scaled by the variance adjustment before re-centering around the
// scaled point. Member results are scaled the same way to stay
// consistent with the combined projection; the input is never modified.
func Apply(res *ensemble.Result, p Profile) (*ensemble.Result, error) {
	horizon := res.Combined.Horizon
	if p.Multipliers != nil && len(p.Multipliers) != horizon {
		return nil, fmt.Errorf("profile %q has %d multipliers for a horizon of %d, %w",
			p.Name, len(p.Multipliers), horizon, ErrProfileLengthMismatch)
	}

	out := res.Copy()
	applyToResult(out.Combined, p)
	for _, m := range out.Members {
		applyToResult(m, p)
	}
	return out, nil
}

// ApplyAll applies profiles in sequence, equivalent to applying their
// composition.
func ApplyAll(res *ensemble.Result, profiles ...Profile) (*ensemble.Result, error) {
	out := res
	for _, p := range profiles {
		next, err := Apply(out, p)
		if err != nil {
			return nil, err
		}
		out = next
	}
	if out == res {
		out = res.Copy()
	}
	return out, nil
}

func applyToResult(r *forecast.Result, p Profile) {
	for i := 0; i < r.Horizon; i++ {
		halfWidth := r.HalfWidth(i) * p.VarianceAdjustment
		point := r.Point[i] * p.multiplierAt(i)
		r.Point[i] = point
		r.Lower[i] = point - halfWidth
		r.Upper[i] = point + halfWidth
	}
}
