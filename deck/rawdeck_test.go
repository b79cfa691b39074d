package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDeckKeywordLookup(t *testing.T) {
	d := NewRawDeck().
		Doubles("ZCORN", 1, 2, 3, 4).
		Ints("DIMENS", 2, 2, 1)

	assert.True(t, d.HasKeyword("ZCORN"))
	assert.False(t, d.HasKeyword("COORD"))

	kw, ok := d.Keyword("ZCORN")
	require.True(t, ok)
	assert.Equal(t, "ZCORN", kw.Name())
	assert.Equal(t, 4, kw.Size())
	assert.Equal(t, []float64{1, 2, 3, 4}, kw.SIDoubleData())

	_, ok = d.Keyword("COORD")
	assert.False(t, ok)
}

func TestRawKeywordConversions(t *testing.T) {
	d := NewRawDeck().
		Ints("DIMENS", 3, 2, 1).
		Doubles("MAPAXES", 0, 1, 0, 0, 1, 0)

	dims, _ := d.Keyword("DIMENS")
	assert.Equal(t, 3, dims.Int(0, 0))
	assert.Equal(t, 2, dims.Int(0, 1))
	assert.Equal(t, 1, dims.Int(0, 2))
	assert.Equal(t, []float64{3, 2, 1}, dims.SIDoubleData())

	ma, _ := d.Keyword("MAPAXES")
	assert.Equal(t, 1.0, ma.SIDouble(0, 1))
	assert.Equal(t, []int{0, 1, 0, 0, 1, 0}, ma.IntData())
}
