package decodable

// ScriptedScorer is a Scorer built from caller-supplied closures, for
// decoder tests that need precise per-call control over scores without
// building a full matrix (e.g. to assert exactly which frame/label
// pairs the decoder queries).
type ScriptedScorer struct {
	LogLikelihoodFunc func(frame int, label int32) float64
	NumFrames         int
}

// LogLikelihood implements Scorer.
func (s *ScriptedScorer) LogLikelihood(frame int, label int32) float64 {
	return s.LogLikelihoodFunc(frame, label)
}

// IsLastFrame implements Scorer.
func (s *ScriptedScorer) IsLastFrame(frame int) bool {
	return frame >= s.NumFrames-1
}
