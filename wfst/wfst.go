// Package wfst defines the read-only contract the decoder consumes
// from a weighted finite-state transducer. It holds only the
// interface and value types; concrete transducers live in package
// fst.
package wfst

import "math"

// Epsilon is the reserved "empty" label id. Arcs whose input and/or
// output label equals Epsilon are epsilon arcs.
const Epsilon int32 = 0

// Arc is one labeled, weighted transition out of a state.
type Arc struct {
	InputLabel  int32
	OutputLabel int32
	NextState   int
	Weight      float64
}

// IsEpsilonInput reports whether the arc consumes no acoustic frame.
func (a Arc) IsEpsilonInput() bool { return a.InputLabel == Epsilon }

// ArcIterator yields the outgoing arcs of one state. It mirrors
// pocketkaldi's pk_fst_iter_t / pk_fst_iter_next: callers pull one arc
// at a time until Next reports ok == false.
type ArcIterator interface {
	Next() (arc Arc, ok bool)
}

// WFST is the read-only oracle the decoder searches over: states,
// arcs, the start state, and per-state final weights.
type WFST interface {
	// StartState returns the unique start state, or ok == false if the
	// transducer has none.
	StartState() (state int, ok bool)

	// FinalWeight returns the final cost of state, or +Inf if state is
	// not final.
	FinalWeight(state int) float64

	// Arcs returns an iterator over state's outgoing arcs.
	Arcs(state int) ArcIterator
}

// InfWeight is the canonical "not final" / "unreachable" cost.
var InfWeight = math.Inf(1)
