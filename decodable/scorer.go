// Package decodable provides the acoustic-scorer seam the decoder
// consumes, plus concrete scorers for tests and offline pipelines that
// have already computed per-frame log-likelihoods.
package decodable

// Scorer supplies per-frame, per-input-label log-likelihoods and
// identifies the last frame of an utterance. The decoder core treats
// it as an opaque capability: it never inspects what produced the
// scores (neural net, GMM, table lookup).
type Scorer interface {
	// LogLikelihood returns the natural-log likelihood of label at
	// frame. The decoder negates this to form an additive cost.
	LogLikelihood(frame int, label int32) float64

	// IsLastFrame reports whether frame is the index of the final
	// frame of the utterance.
	IsLastFrame(frame int) bool
}
