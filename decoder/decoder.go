// Package decoder implements the Viterbi beam-search decoder: the
// token-passing search over a weighted finite-state transducer that is
// the core of this module. See SPEC_FULL.md for the full contract.
package decoder

import (
	"math"
	"time"

	"github.com/latticebeam/beamdecoder/decodable"
	"github.com/latticebeam/beamdecoder/wfst"
)

// Hypothesis is the decoder's public output: the emitted output
// symbols in reverse emission order (most recent first) and the
// winning path's total cost. An empty
// Words with Weight 0 denotes "no path found".
type Hypothesis struct {
	Words  []int32
	Weight float64
}

// Decoder runs one Viterbi beam search at a time over a bound WFST. A
// Decoder is not safe for concurrent use; distinct decodes must use
// distinct Decoder instances (or be run one after another).
type Decoder struct {
	fst wfst.WFST
	cfg Config
	m   *Metrics

	cur  *beam
	prev *beam

	arena *olabelArena

	numFramesDecoded int
	decoded          bool

	// scratch reused across frames to avoid per-frame allocation.
	worklist      []int
	cutoffSamples []float64
}

// New binds a Decoder to fst using DefaultConfig and no metrics. No
// search work happens until Decode is called.
func New(f wfst.WFST) *Decoder {
	return NewWithConfig(f, DefaultConfig(), nil)
}

// NewWithConfig binds a Decoder to fst with an explicit Config and
// optional Metrics (nil disables observation).
func NewWithConfig(f wfst.WFST, cfg Config, m *Metrics) *Decoder {
	return &Decoder{
		fst:   f,
		cfg:   cfg,
		m:     m,
		cur:   newBeam(cfg.BeamSize),
		prev:  newBeam(cfg.BeamSize),
		arena: newOLabelArena(),
	}
}

// Decode runs the full search on one utterance, pulling frames from
// scorer until scorer reports the last frame. It returns true iff at
// least one live token remains after the final frame.
func (d *Decoder) Decode(scorer decodable.Scorer) bool {
	d.m.observeDecode()

	// Empty-utterance short-circuit (SPEC_FULL.md §12.3): a scorer with
	// zero frames never has a first frame to seed acoustic search with,
	// so there is nothing to decode. Mirrors pocketkaldi's pk_process
	// check of an empty feature matrix before it ever constructs a
	// Decoder.
	if scorer.IsLastFrame(-1) {
		d.cur.clear()
		d.prev.clear()
		d.arena.reset()
		d.numFramesDecoded = 0
		d.decoded = true
		return false
	}

	d.initDecoding()

	for !scorer.IsLastFrame(d.numFramesDecoded - 1) {
		t0 := time.Now()
		cutoff := d.processEmitting(scorer)
		d.m.observeEmitting(time.Since(t0).Seconds())

		t1 := time.Now()
		d.processNonemitting(cutoff)
		d.m.observeNonemitting(time.Since(t1).Seconds())
	}

	d.decoded = true
	return d.cur.len() > 0
}

// initDecoding implements spec §4.2: clear all state, seed a token at
// the start state via a synthetic epsilon arc, then run the initial
// epsilon closure with an unbounded cutoff.
func (d *Decoder) initDecoding() {
	d.cur.clear()
	d.prev.clear()
	d.arena.reset()
	d.numFramesDecoded = 0
	d.decoded = false

	start, ok := d.fst.StartState()
	if !ok {
		panic("decoder: WFST has no start state")
	}

	seedArc := wfst.Arc{InputLabel: wfst.Epsilon, OutputLabel: wfst.Epsilon, NextState: start, Weight: 0}
	d.cur.insertTok(d.arena, seedArc, olabelBeginIdx, 0.0)

	d.processNonemitting(math.Inf(1))
}

// processEmitting implements spec §4.4.1.
func (d *Decoder) processEmitting(scorer decodable.Scorer) float64 {
	d.prev.clear()
	d.cur, d.prev = d.prev, d.cur

	nextWeightCutoff := math.Inf(1)
	frame := d.numFramesDecoded

	if d.prev.len() == 0 {
		// No surviving hypotheses: nothing to expand this frame.
		d.m.observeFrame()
		d.numFramesDecoded++
		return nextWeightCutoff
	}

	weightCutoff, adaptiveBeam, bestTokIdx := d.getCutoff(d.prev, d.cfg)

	// Tight-bound pass: the single best token only.
	bestTok := d.prev.toks[bestTokIdx]
	it := d.fst.Arcs(bestTok.state)
	for {
		arc, ok := it.Next()
		if !ok {
			break
		}
		if arc.IsEpsilonInput() {
			continue
		}
		acCost := -scorer.LogLikelihood(frame, arc.InputLabel)
		total := bestTok.cost + arc.Weight + acCost
		if total+adaptiveBeam < nextWeightCutoff {
			nextWeightCutoff = total + adaptiveBeam
		}
	}

	// Full sweep.
	pruned := 0
	for _, fromTok := range d.prev.toks {
		if fromTok.cost > weightCutoff {
			pruned++
			continue
		}
		it := d.fst.Arcs(fromTok.state)
		for {
			arc, ok := it.Next()
			if !ok {
				break
			}
			if arc.IsEpsilonInput() {
				continue
			}
			acCost := -scorer.LogLikelihood(frame, arc.InputLabel)
			total := fromTok.cost + arc.Weight + acCost
			if total > nextWeightCutoff {
				pruned++
				continue
			}
			if total+adaptiveBeam < nextWeightCutoff {
				nextWeightCutoff = total + adaptiveBeam
			}
			d.cur.insertTok(d.arena, arc, fromTok.olabelIdx, total)
		}
	}

	d.m.observePruned(pruned)
	d.m.observeFrame()
	d.numFramesDecoded++
	return nextWeightCutoff
}

// processNonemitting implements spec §4.4.2: a LIFO worklist closure
// over outgoing epsilon arcs whose resulting cost falls within cutoff.
func (d *Decoder) processNonemitting(cutoff float64) {
	d.worklist = d.worklist[:0]
	for _, tok := range d.cur.toks {
		d.worklist = append(d.worklist, tok.state)
	}

	for len(d.worklist) > 0 {
		state := d.worklist[len(d.worklist)-1]
		d.worklist = d.worklist[:len(d.worklist)-1]

		pos, ok := d.cur.stateIdx[state]
		if !ok {
			panic("decoder: state index disagrees with cur beam")
		}
		fromTok := d.cur.toks[pos]

		it := d.fst.Arcs(state)
		for {
			arc, ok := it.Next()
			if !ok {
				break
			}
			if !arc.IsEpsilonInput() {
				continue
			}
			total := fromTok.cost + arc.Weight
			if total > cutoff {
				continue
			}
			if d.cur.insertTok(d.arena, arc, fromTok.olabelIdx, total) {
				d.worklist = append(d.worklist, arc.NextState)
			}
		}
	}
}

// BestPath returns the best-scoring hypothesis. It must only be
// called after Decode. The returned Words are in reverse emission
// order (most recent symbol first), matching the olabel chain's
// natural walk direction; callers that want emission order must
// reverse it (see symboltable.Table.Render).
func (d *Decoder) BestPath() Hypothesis {
	bestCost := math.Inf(1)
	bestIdx := notExist

	for i, tok := range d.cur.toks {
		cost := tok.cost + d.fst.FinalWeight(tok.state)
		if !math.IsInf(cost, 1) && cost < bestCost {
			bestCost = cost
			bestIdx = i
		}
	}
	if bestIdx == notExist {
		return Hypothesis{}
	}

	best := d.cur.toks[bestIdx]
	return Hypothesis{
		Words:  d.arena.words(best.olabelIdx),
		Weight: bestCost,
	}
}

// NumFramesDecoded returns the number of frames consumed by the most
// recent (or in-progress) Decode call.
func (d *Decoder) NumFramesDecoded() int { return d.numFramesDecoded }
