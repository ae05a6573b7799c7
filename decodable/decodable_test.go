package decodable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticebeam/beamdecoder/decodable"
)

func TestMatrixScorer_LogLikelihood(t *testing.T) {
	m := decodable.NewMatrixScorer([][]float64{
		{0, -1.2, -3.4},
	})
	assert.Equal(t, -1.2, m.LogLikelihood(0, 1))
	assert.Equal(t, -3.4, m.LogLikelihood(0, 2))
}

func TestMatrixScorer_LabelOutOfRangeIsZero(t *testing.T) {
	m := decodable.NewMatrixScorer([][]float64{{0}})
	assert.Equal(t, 0.0, m.LogLikelihood(0, 99))
}

func TestMatrixScorer_IsLastFrame(t *testing.T) {
	m := decodable.NewMatrixScorer([][]float64{{0}, {0}, {0}})
	assert.False(t, m.IsLastFrame(0))
	assert.False(t, m.IsLastFrame(1))
	assert.True(t, m.IsLastFrame(2))
	assert.Equal(t, 3, m.NumFrames())
}

func TestMatrixScorer_EmptyIsImmediatelyLastFrame(t *testing.T) {
	m := decodable.NewMatrixScorer(nil)
	assert.True(t, m.IsLastFrame(-1))
}

func TestScriptedScorer(t *testing.T) {
	calls := make([]int32, 0)
	s := &decodable.ScriptedScorer{
		NumFrames: 2,
		LogLikelihoodFunc: func(frame int, label int32) float64 {
			calls = append(calls, label)
			return -float64(frame) - float64(label)
		},
	}

	assert.False(t, s.IsLastFrame(0))
	assert.True(t, s.IsLastFrame(1))
	assert.Equal(t, -3.0, s.LogLikelihood(1, 2))
	assert.Equal(t, []int32{2}, calls)
}
