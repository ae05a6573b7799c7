package fst

import (
	"math"

	"github.com/latticebeam/beamdecoder/wfst"
)

// Builder constructs an FST programmatically. It is the type tests use
// to assemble small transducers in memory; the text
// format in reader.go is for transducers produced by an external
// compiler and loaded from disk.
type Builder struct {
	f *FST
}

// NewBuilder returns a Builder for an empty transducer.
func NewBuilder() *Builder {
	return &Builder{f: New()}
}

// AddState allocates a new state (initially non-final, with no arcs)
// and returns its id.
func (b *Builder) AddState() int {
	b.f.arcs = append(b.f.arcs, nil)
	b.f.finalWeight = append(b.f.finalWeight, math.Inf(1))
	return len(b.f.arcs) - 1
}

// SetStart marks state as the start state.
func (b *Builder) SetStart(state int) {
	b.f.start = state
	b.f.hasStart = true
}

// SetFinal marks state as final with the given cost.
func (b *Builder) SetFinal(state int, weight float64) {
	b.f.finalWeight[state] = weight
}

// AddArc adds an arc from "from" to "to" with the given labels and
// weight. Epsilon is label id 0.
func (b *Builder) AddArc(from int, inputLabel, outputLabel int32, to int, weight float64) {
	b.f.arcs[from] = append(b.f.arcs[from], wfst.Arc{
		InputLabel:  inputLabel,
		OutputLabel: outputLabel,
		NextState:   to,
		Weight:      weight,
	})
}

// Build returns the constructed FST. The Builder must not be reused
// after calling Build.
func (b *Builder) Build() *FST {
	return b.f
}
