package decoder

// olabel is one node of the back-pointer trellis: an output symbol
// together with the arena index of the previous olabel on the same
// path. Walking prev back to notExist reconstructs the emitted-symbol
// prefix ending at this node, in reverse emission order.
type olabel struct {
	prev int
	sym  int32
}

// olabelArena is the append-only store of olabels for a single decode.
// It is never compacted: tokens that survive into later frames keep
// referencing earlier entries by index, and InsertTok may append an
// entry that turns out to be discarded (an orphan). Orphans are
// harmless; the arena just grows until the decoder is reset.
type olabelArena struct {
	entries []olabel
}

func newOLabelArena() *olabelArena {
	return &olabelArena{}
}

func (a *olabelArena) reset() {
	a.entries = a.entries[:0]
}

// append adds {prev, sym} and returns its index.
func (a *olabelArena) append(prev int, sym int32) int {
	a.entries = append(a.entries, olabel{prev: prev, sym: sym})
	return len(a.entries) - 1
}

func (a *olabelArena) at(idx int) olabel {
	return a.entries[idx]
}

func (a *olabelArena) len() int {
	return len(a.entries)
}

// words walks the chain starting at idx back to the sentinel,
// collecting symbols. The returned order is reverse of emission (most
// recent first), matching BestPath's documented contract.
func (a *olabelArena) words(idx int) []int32 {
	var out []int32
	steps := 0
	for idx != notExist {
		if steps > len(a.entries) {
			panic("decoder: olabel chain failed to terminate")
		}
		e := a.at(idx)
		out = append(out, e.sym)
		idx = e.prev
		steps++
	}
	return out
}
