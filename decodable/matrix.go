package decodable

// MatrixScorer wraps a dense frame x label matrix of precomputed
// log-likelihoods. It is the natural scorer for unit tests and for
// any pipeline that has already run feature extraction, CMVN, and an
// acoustic model and dumped the resulting scores — the role
// pocketkaldi's pk_decodable_t plays around an already-computed
// feature matrix.
//
// Labels are columns; label 0 (epsilon) is never queried by the
// decoder and need not be populated.
type MatrixScorer struct {
	scores [][]float64
}

// NewMatrixScorer returns a Scorer over scores, indexed
// scores[frame][label].
func NewMatrixScorer(scores [][]float64) *MatrixScorer {
	return &MatrixScorer{scores: scores}
}

// LogLikelihood implements Scorer.
func (m *MatrixScorer) LogLikelihood(frame int, label int32) float64 {
	row := m.scores[frame]
	if int(label) >= len(row) {
		return 0
	}
	return row[label]
}

// IsLastFrame implements Scorer.
func (m *MatrixScorer) IsLastFrame(frame int) bool {
	return frame >= len(m.scores)-1
}

// NumFrames returns the number of frames in the underlying matrix.
func (m *MatrixScorer) NumFrames() int {
	return len(m.scores)
}
