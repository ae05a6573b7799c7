package decoder

import "github.com/latticebeam/beamdecoder/wfst"

// beam is an ordered sequence of Tokens representing all live
// hypotheses for exactly one frame, plus a state->position index used
// to enforce one-token-per-state and to perform cost-based merging
// (invariant P1).
type beam struct {
	toks     []Token
	stateIdx map[int]int
}

func newBeam(sizeHint int) *beam {
	return &beam{
		toks:     make([]Token, 0, sizeHint),
		stateIdx: make(map[int]int, sizeHint),
	}
}

func (b *beam) clear() {
	b.toks = b.toks[:0]
	for k := range b.stateIdx {
		delete(b.stateIdx, k)
	}
}

func (b *beam) len() int { return len(b.toks) }

// insertTok is the shared token-insertion primitive (spec §4.3). It
// appends an olabel when arc.OutputLabel is non-epsilon, then either
// inserts a new Token at arc.NextState or overwrites the existing one
// in place when the newcomer is strictly cheaper. It reports whether
// the insertion happened (i.e. whether the beam materially changed),
// which drives the nonemitting worklist.
func (b *beam) insertTok(arena *olabelArena, arc wfst.Arc, callerOLabelIdx int, cost float64) bool {
	nextOLabelIdx := callerOLabelIdx
	if arc.OutputLabel != wfst.Epsilon {
		nextOLabelIdx = arena.append(callerOLabelIdx, arc.OutputLabel)
	}

	pos, exists := b.stateIdx[arc.NextState]
	if !exists {
		b.toks = append(b.toks, Token{state: arc.NextState, cost: cost, olabelIdx: nextOLabelIdx})
		b.stateIdx[arc.NextState] = len(b.toks) - 1
		return true
	}

	if cost < b.toks[pos].cost {
		b.toks[pos] = Token{state: arc.NextState, cost: cost, olabelIdx: nextOLabelIdx}
		return true
	}
	// Newcomer is not strictly cheaper: the olabel appended above (if
	// any) becomes an orphan. The arena is append-only by design; see
	// decoder/olabel.go.
	return false
}
