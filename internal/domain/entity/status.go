package entity

import "slices"

// transitionTable lists, per state, the states it may move to. States without
// an entry are terminal.
type transitionTable[S comparable] map[S][]S

func (t transitionTable[S]) allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

func (t transitionTable[S]) terminal(s S) bool {
	return len(t[s]) == 0
}
