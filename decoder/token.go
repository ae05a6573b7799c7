package decoder

// notExist is the sentinel used by the state index and by olabel chains
// to mean "absent" / "no output labels yet". It is never a valid state
// id, token position, or arena index.
const notExist = -1

// olabelBeginIdx is the sentinel olabel index a Token starts with when
// its path has not yet emitted any output symbol.
const olabelBeginIdx = notExist

// Token is a live search hypothesis at a WFST state for the current
// frame: the state it occupies, its accumulated path cost (lower is
// better), and the arena index of the most recently emitted output
// label on its path.
type Token struct {
	state     int
	cost      float64
	olabelIdx int
}

// State returns the WFST state id this token occupies.
func (t Token) State() int { return t.state }

// Cost returns the token's accumulated path cost.
func (t Token) Cost() float64 { return t.cost }

// OLabelIdx returns the arena index of the token's most recent output
// label, or notExist if the path has not emitted one yet.
func (t Token) OLabelIdx() int { return t.olabelIdx }
