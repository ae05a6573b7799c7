package symboltable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticebeam/beamdecoder/symboltable"
)

func TestNew_RegistersEpsilon(t *testing.T) {
	tbl := symboltable.New()
	assert.Equal(t, "<eps>", tbl.Word(symboltable.Epsilon))
	assert.Equal(t, 1, tbl.Len())
}

func TestReadText_And_Lookups(t *testing.T) {
	tbl, err := symboltable.ReadText(strings.NewReader("hello 1\nworld 2\n"))
	require.NoError(t, err)

	assert.Equal(t, "hello", tbl.Word(1))
	id, ok := tbl.ID("world")
	require.True(t, ok)
	assert.Equal(t, int32(2), id)

	_, ok = tbl.ID("missing")
	assert.False(t, ok)
}

func TestReadText_SkipsBlankAndComment(t *testing.T) {
	tbl, err := symboltable.ReadText(strings.NewReader("# header\n\nhello 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "hello", tbl.Word(1))
}

func TestReadText_RejectsMalformedLine(t *testing.T) {
	_, err := symboltable.ReadText(strings.NewReader("hello\n"))
	assert.Error(t, err)
}

func TestRender_ReversesToEmissionOrder(t *testing.T) {
	tbl := symboltable.New()
	tbl.Add("world", 2)
	tbl.Add("hello", 1)

	// Words come from the decoder's olabel chain in reverse emission
	// order: most recently emitted symbol first.
	got := tbl.Render([]int32{2, 1})
	assert.Equal(t, "hello world", got)
}

func TestRender_Empty(t *testing.T) {
	tbl := symboltable.New()
	assert.Equal(t, "", tbl.Render(nil))
}

func TestRender_UnknownID(t *testing.T) {
	tbl := symboltable.New()
	assert.Equal(t, "<unk:99>", tbl.Render([]int32{99}))
}
