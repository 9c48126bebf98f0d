// Package weighted picks one candidate from a list with probability
// proportional to its weight.
package weighted

import (
	"math"

	"github.com/KirkDiggler/realm-content/internal/dice"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

// Candidate is one choice offered to a Selector
type Candidate[T any] struct {
	Value  T
	Weight int
}

// Selector performs weight-proportional choice using an injected roller
type Selector[T any] struct {
	roller dice.Roller
}

// NewSelector creates a selector drawing from roller
func NewSelector[T any](roller dice.Roller) *Selector[T] {
	return &Selector[T]{roller: roller}
}

// Select draws a uniform integer in [1, total] and returns the first candidate
// whose cumulative weight reaches it. ok is false for an empty list. When every
// weight is zero each candidate counts as weight 1. Negative weights count as
// zero.
func (s *Selector[T]) Select(candidates []Candidate[T]) (value T, ok bool, err error) {
	if len(candidates) == 0 {
		return value, false, nil
	}

	total := 0
	for _, c := range candidates {
		total += clamp(c.Weight)
	}

	uniform := total == 0
	if uniform {
		total = len(candidates)
	}

	result, err := s.roller.Roll(1, total, 0)
	if err != nil {
		return value, false, rcerr.Wrap(err, "failed to draw weighted selection")
	}
	draw := result.Total

	cumulative := 0
	for _, c := range candidates {
		if uniform {
			cumulative++
		} else {
			cumulative += clamp(c.Weight)
		}
		if cumulative >= draw {
			return c.Value, true, nil
		}
	}

	// Only reachable with a roller that draws above total.
	return value, false, rcerr.Internalf("draw %d exceeds total weight %d", draw, total)
}

// MustSelect is Select for callers that treat an empty list as an error
func (s *Selector[T]) MustSelect(candidates []Candidate[T]) (T, error) {
	value, ok, err := s.Select(candidates)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, rcerr.Selection("no candidates to select from")
	}
	return value, nil
}

// Normalize converts a declared weight to the integer the selector uses,
// rounding half away from zero. Negative and non-finite weights become 0.
func Normalize(weight float64) int {
	if math.IsNaN(weight) || weight <= 0 {
		return 0
	}
	if math.IsInf(weight, 1) || weight > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(weight))
}

func clamp(weight int) int {
	if weight < 0 {
		return 0
	}
	return weight
}
