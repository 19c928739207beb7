package game

// Journal is a stack of undo descriptors over one state. Lookahead applies
// through a journal and rewinds it, usually with a deferred Rewind so the state
// is restored even if scoring panics.
type Journal struct {
	state *State
	undos []Undo
}

func NewJournal(s *State) *Journal {
	return &Journal{state: s, undos: make([]Undo, 0, 16)}
}

// State returns the journaled state.
func (j *Journal) State() *State {
	return j.state
}

// Apply performs an action and records its inverse.
func (j *Journal) Apply(seat int, a Action, setup bool) error {
	u, err := j.state.Apply(seat, a, setup)
	if err != nil {
		return err
	}
	j.undos = append(j.undos, u)
	return nil
}

// Draw buys a development card of a given kind for seat and records its
// inverse.
func (j *Journal) Draw(seat int, card DevCard) error {
	u, err := j.state.ApplyDraw(seat, card)
	if err != nil {
		return err
	}
	j.undos = append(j.undos, u)
	return nil
}

// Pop reverts the most recent action.
func (j *Journal) Pop() {
	last := len(j.undos) - 1
	j.state.Revert(j.undos[last])
	j.undos = j.undos[:last]
}

// RewindTo reverts actions until n remain.
func (j *Journal) RewindTo(n int) {
	for len(j.undos) > n {
		j.Pop()
	}
}

// Rewind reverts every recorded action in reverse order.
func (j *Journal) Rewind() {
	j.RewindTo(0)
}

// Len is the number of recorded actions.
func (j *Journal) Len() int {
	return len(j.undos)
}
