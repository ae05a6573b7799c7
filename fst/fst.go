// Package fst provides an in-memory weighted finite-state transducer
// that implements wfst.WFST, plus a text-format reader/writer and a
// Builder for programmatic construction.
package fst

import (
	"math"

	"github.com/latticebeam/beamdecoder/wfst"
)

// FST is a fully expanded, in-memory weighted finite-state transducer.
// States are dense integers 0..N-1.
type FST struct {
	arcs        [][]wfst.Arc
	finalWeight []float64
	start       int
	hasStart    bool
}

// New returns an FST with no states.
func New() *FST {
	return &FST{start: -1}
}

// NumStates returns the number of states in the transducer.
func (f *FST) NumStates() int { return len(f.arcs) }

// StartState implements wfst.WFST.
func (f *FST) StartState() (int, bool) {
	if !f.hasStart {
		return 0, false
	}
	return f.start, true
}

// FinalWeight implements wfst.WFST.
func (f *FST) FinalWeight(state int) float64 {
	if state < 0 || state >= len(f.finalWeight) {
		return math.Inf(1)
	}
	return f.finalWeight[state]
}

// Arcs implements wfst.WFST.
func (f *FST) Arcs(state int) wfst.ArcIterator {
	if state < 0 || state >= len(f.arcs) {
		return &sliceIterator{}
	}
	return &sliceIterator{arcs: f.arcs[state]}
}

type sliceIterator struct {
	arcs []wfst.Arc
	pos  int
}

func (it *sliceIterator) Next() (wfst.Arc, bool) {
	if it.pos >= len(it.arcs) {
		return wfst.Arc{}, false
	}
	a := it.arcs[it.pos]
	it.pos++
	return a, true
}
