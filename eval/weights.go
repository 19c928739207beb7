package eval

import (
	"golang.org/x/exp/rand"
)

// UntrainedKey marks a persisted weight map that has never been initialized.
const UntrainedKey = "DELETE ME"

// Weights is a weight vector aligned to a schema. Values is shared between
// copies, so learner updates are visible to every holder.
type Weights struct {
	schema *Schema
	Values []float64
}

// InitZero returns all-zero weights, the starting point of learners.
func InitZero(s *Schema) Weights {
	return Weights{schema: s, Values: make([]float64, s.Len())}
}

// InitRandom draws every weight from the integers -3..3, then pins the few
// features whose sign is known: score is non-negative, a win is worth 1000,
// roads per settlement is in -5..-3 and squared distance in -1..1.
func InitRandom(s *Schema, rng *rand.Rand) Weights {
	w := InitZero(s)
	for i := range w.Values {
		w.Values[i] = float64(rng.Intn(7) - 3)
	}
	if w.Values[Score] < 0 {
		w.Values[Score] = -w.Values[Score]
	}
	w.Values[HasWon] = 1000
	w.Values[RoadsPerSettlement] = float64(-3 - rng.Intn(3))
	w.Values[SquaredDistance] = float64(rng.Intn(3) - 1)
	return w
}

// FromMap aligns a persisted key to weight mapping to a schema. Unknown keys
// are dropped and missing features are zero.
func FromMap(s *Schema, m map[string]float64) Weights {
	w := InitZero(s)
	for name, x := range m {
		if i, ok := s.Index(name); ok {
			w.Values[i] = x
		}
	}
	return w
}

// Untrained reports whether a persisted map still needs initialization.
func Untrained(m map[string]float64) bool {
	if len(m) == 0 {
		return true
	}
	_, ok := m[UntrainedKey]
	return ok
}

func (w Weights) Schema() *Schema { return w.schema }

// Map converts the weights back to their persisted form.
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, len(w.Values))
	for i, x := range w.Values {
		m[w.schema.names[i]] = x
	}
	return m
}

// Get returns the weight of a named feature, 0 if the schema lacks it.
func (w Weights) Get(name string) float64 {
	if i, ok := w.schema.Index(name); ok {
		return w.Values[i]
	}
	return 0
}

// Clone returns weights with their own backing array.
func (w Weights) Clone() Weights {
	c := Weights{schema: w.schema, Values: make([]float64, len(w.Values))}
	copy(c.Values, w.Values)
	return c
}
