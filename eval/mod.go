// Package eval scores game states with linear models: feature extraction over
// a fixed schema, schema-aligned weights, and an online temporal difference
// learner.
package eval

import (
	"fmt"
	"strings"
)

// Evaluate is the dot product of a feature vector and weights. Both must be
// aligned to the same schema.
func Evaluate(v Vector, w Weights) float64 {
	if v.schema != w.schema {
		panic(fmt.Sprintf("eval: vector schema %q does not match weights schema %q", v.schema.Name(), w.schema.Name()))
	}
	total := 0.0
	for i, x := range v.Values {
		total += x * w.Values[i]
	}
	return total
}

// ExtractorByName maps a config name to an extractor.
func ExtractorByName(name string) (Extractor, error) {
	switch strings.ToLower(name) {
	case "", "basic":
		return Basic, nil
	case "adversarial":
		return Adversarial, nil
	case "positional":
		return Positional, nil
	}
	return nil, fmt.Errorf("unknown extractor %q", name)
}
