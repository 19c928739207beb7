package agent

import (
	"fmt"
	"strings"

	"catan/eval"
)

// Spec describes an agent in a run configuration.
type Spec struct {
	Kind      string  `yaml:"kind"`
	Name      string  `yaml:"name"`
	Depth     *int    `yaml:"depth"` // nil keeps the default, 0 is one ply
	Extractor string  `yaml:"extractor"`
	Key       string  `yaml:"key"`
	Learn     bool    `yaml:"learn"`
	Target    string  `yaml:"target"`
	Eta       float64 `yaml:"eta"`
	FinalEta  float64 `yaml:"final_eta"`
}

func targetByName(name string) (eval.Target, error) {
	switch strings.ToLower(name) {
	case "", "score":
		return eval.ScoreTarget, nil
	case "win":
		return eval.WinTarget, nil
	}
	return nil, fmt.Errorf("unknown learning target %q", name)
}

// FromSpec builds the agent a spec describes. The kind picks a preset;
// extractor, learn and target override it. The store key defaults to the
// spec key, then the name. Weights are loaded by Init.
func FromSpec(seat int, spec Spec, options ...Option) (*Agent, error) {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", spec.Kind, seat)
	}

	var preset []Option
	strategy := Greedy
	switch strings.ToLower(spec.Kind) {
	case "random":
		strategy = Random
	case "human":
		strategy = Human
	case "weighted", "greedy":
		preset = []Option{WithExtractor(eval.Basic)}
	case "qlearner":
		preset = []Option{WithExtractor(eval.Adversarial), WithLearner(eval.ScoreTarget)}
	case "qlearner-win":
		preset = []Option{WithExtractor(eval.Positional), WithLearner(eval.WinTarget)}
	case "minimax", "expectimax":
		strategy = Expectimax
		preset = []Option{WithExtractor(eval.Adversarial), WithLearner(eval.ScoreTarget)}
	default:
		return nil, fmt.Errorf("unknown agent kind %q", spec.Kind)
	}

	if spec.Extractor != "" {
		x, err := eval.ExtractorByName(spec.Extractor)
		if err != nil {
			return nil, err
		}
		preset = append(preset, WithExtractor(x))
	}
	if spec.Learn || spec.Target != "" {
		target, err := targetByName(spec.Target)
		if err != nil {
			return nil, err
		}
		preset = append(preset, WithLearner(target))
	}
	preset = append(preset, WithEta(spec.Eta, spec.FinalEta))
	if strategy == Expectimax && spec.Depth != nil {
		preset = append(preset, WithDepth(*spec.Depth))
	}
	if spec.Key == "" {
		spec.Key = name
	}
	a := New(seat, name, strategy, append(preset, options...)...)
	if strategy == Human && a.chooser == nil {
		return nil, fmt.Errorf("human agent %s has no resource chooser", name)
	}
	if a.key == "" {
		a.key = spec.Key
	}
	return a, nil
}
