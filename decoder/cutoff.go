package decoder

import "math"

// lcgRand is the deterministic linear-congruential generator the
// cutoff sampler uses in place of any platform RNG. Determinism across
// runs, platforms, and threads is a correctness requirement (spec
// §4.4.3 / §9): two decodes with identical inputs must sample
// identical costs.
type lcgRand struct {
	state uint64
}

func newLCGRand(seed uint64) *lcgRand {
	return &lcgRand{state: seed}
}

// float01 advances the generator and returns a uniform value in
// [0, 1), taking the low 16 bits of the new state as in the source.
func (r *lcgRand) float01() float64 {
	r.state = r.state*25214903917 + 11
	return float64(r.state&0xffff) / 65536.0
}

// getCutoff computes an inclusive upper bound on token costs to keep
// in the beam (weightCutoff) and the slack (adaptiveBeam) used to
// tighten next frame's cutoff, per spec §4.4.3. prev is the beam being
// scanned (last frame's tokens); cfg supplies BEAM / BEAM_SIZE /
// BEAM_DELTA / the sampling knobs.
//
// Returns the cutoff, the adaptive beam, and the index within prev of
// the best (lowest-cost) token.
func (d *Decoder) getCutoff(prev *beam, cfg Config) (weightCutoff, adaptiveBeam float64, bestTokIdx int) {
	bestCost := math.Inf(1)
	bestTokIdx = 0

	d.cutoffSamples = d.cutoffSamples[:0]
	rng := newLCGRand(cfg.CutoffRandSeed)

	n := prev.len()
	sampleProb := 0.0
	if n > 0 {
		sampleProb = float64(cfg.CutoffSamples) / float64(n)
	}

	for i, tok := range prev.toks {
		if rng.float01() < sampleProb {
			d.cutoffSamples = append(d.cutoffSamples, tok.cost)
		}
		if tok.cost < bestCost {
			bestCost = tok.cost
			bestTokIdx = i
		}
	}

	beamCutoff := bestCost + cfg.Beam
	maxActiveCutoff := math.NaN()

	if n > cfg.BeamSize {
		// Note: the cutoff index is computed against the sample
		// slice's full length, not its tail, exactly as the source
		// does (spec §9 open question) — preserved verbatim for
		// parity rather than "corrected".
		cutoffIdx := len(d.cutoffSamples) * cfg.BeamSize / n
		if cutoffIdx >= len(d.cutoffSamples) {
			cutoffIdx = len(d.cutoffSamples) - 1
		}
		if cutoffIdx >= 0 {
			maxActiveCutoff = nthElement(d.cutoffSamples, cutoffIdx)
		}
	}

	if maxActiveCutoff < beamCutoff {
		weightCutoff = maxActiveCutoff
		adaptiveBeam = maxActiveCutoff - bestCost + cfg.BeamDelta
	} else {
		weightCutoff = beamCutoff
		adaptiveBeam = cfg.Beam
	}
	return weightCutoff, adaptiveBeam, bestTokIdx
}

// nthElement returns the value that would occupy index k of data if it
// were fully sorted ascending, using a Hoare quickselect partial
// selection (the Go analogue of std::nth_element — it reorders data in
// place but does not fully sort it).
func nthElement(data []float64, k int) float64 {
	lo, hi := 0, len(data)-1
	for lo < hi {
		p := partition(data, lo, hi)
		switch {
		case k < p:
			hi = p - 1
		case k > p:
			lo = p + 1
		default:
			return data[p]
		}
	}
	return data[lo]
}

func partition(data []float64, lo, hi int) int {
	pivot := data[(lo+hi)/2]
	data[(lo+hi)/2], data[hi] = data[hi], data[(lo+hi)/2]
	store := lo
	for i := lo; i < hi; i++ {
		if data[i] < pivot {
			data[i], data[store] = data[store], data[i]
			store++
		}
	}
	data[store], data[hi] = data[hi], data[store]
	return store
}
