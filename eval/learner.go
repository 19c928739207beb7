package eval

import (
	"catan/game"
	"catan/meta"
)

const (
	DefaultEta      = 5e-8
	DefaultFinalEta = 3e-6
)

// Target is the value a finished game should have been predicted at.
type Target func(s *game.State, seat int) float64

// ScoreTarget is the final score capped at the winning score.
func ScoreTarget(s *game.State, seat int) float64 {
	return float64(min(s.CurrentScore(seat), meta.WINNING_SCORE))
}

// WinTarget is 1 for a win and 0 otherwise.
func WinTarget(s *game.State, seat int) float64 {
	return b2f(s.HasWon(seat))
}

// Learner nudges weights so each turn's prediction moves toward the next
// turn's, and the last prediction toward the game result.
type Learner struct {
	Eta      float64
	FinalEta float64
	Target   Target

	prev      Vector
	prevValue float64
	primed    bool
}

func NewLearner(target Target) *Learner {
	return &Learner{Eta: DefaultEta, FinalEta: DefaultFinalEta, Target: target}
}

// Observe records the vector of the current turn. Once a previous vector
// exists each weight moves by -eta * (previous value - current value) *
// previous feature. It returns the value of v before the update, which is
// the prediction the next turn is compared against.
func (l *Learner) Observe(v Vector, w Weights) float64 {
	value := Evaluate(v, w)
	if l.primed {
		l.update(w, l.prevValue-value, l.Eta)
	}
	l.prev, l.prevValue, l.primed = v, value, true
	return value
}

// Finish applies the same rule against a fixed target and resets the
// learner for the next game. It returns the prediction error, 0 if nothing
// was observed.
func (l *Learner) Finish(target, eta float64, w Weights) float64 {
	if !l.primed {
		return 0
	}
	diff := l.prevValue - target
	l.update(w, diff, eta)
	l.prev, l.prevValue, l.primed = Vector{}, 0, false
	return diff
}

func (l *Learner) update(w Weights, diff, eta float64) {
	for i, x := range l.prev.Values {
		w.Values[i] -= eta * diff * x
	}
}
