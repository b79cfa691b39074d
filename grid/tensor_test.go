package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordsFromDeltas(t *testing.T) {
	deltas := []float64{1.0, 2.5, 0.5}
	coords := CoordsFromDeltas(deltas)
	require.Len(t, coords, 4)
	assert.Equal(t, 0.0, coords[0])
	for i := 1; i < len(coords); i++ {
		assert.InDelta(t, coords[i-1]+deltas[i-1], coords[i], 1e-15)
	}
}

func TestTensor3DVolumes(t *testing.T) {
	g, err := NewTensor3D([]float64{1, 2}, []float64{3}, []float64{0.5}, nil)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 2, g.NumCells)
	assert.InDelta(t, 1.5, g.CellVolumes[0], 1e-12)
	assert.InDelta(t, 3.0, g.CellVolumes[1], 1e-12)
	assert.Equal(t, [3]int{2, 1, 1}, g.CartDims)
}

func TestTensor3DTopDepthShift(t *testing.T) {
	depthz := make([]float64, 3*2)
	for i := range depthz {
		depthz[i] = 5.0
	}
	g, err := NewTensor3D([]float64{1, 1}, []float64{1}, []float64{1}, depthz)
	require.NoError(t, err)

	// All top-layer nodes sit at depth 5, bottom-layer at 6.
	for n := 0; n < g.NumNodes; n++ {
		z := g.NodeCoord(n)[2]
		if z != 5.0 && z != 6.0 {
			t.Errorf("node %d at unexpected depth %g", n, z)
		}
	}
	for c := 0; c < g.NumCells; c++ {
		assert.InDelta(t, 1.0, g.CellVolumes[c], 1e-12)
	}
}

func TestTensor3DNonUniformDepthField(t *testing.T) {
	// A tilted top surface shifts whole columns without changing
	// cell heights, so unit volumes are preserved.
	depthz := []float64{0, 1, 2, 0, 1, 2}
	g, err := NewTensor3D([]float64{1, 1}, []float64{1}, []float64{1}, depthz)
	require.NoError(t, err)
	for c := 0; c < g.NumCells; c++ {
		assert.InDelta(t, 1.0, g.CellVolumes[c], 1e-9)
	}
}

func TestTensor3DRejectsBadInput(t *testing.T) {
	_, err := NewTensor3D(nil, []float64{1}, []float64{1}, nil)
	assert.Error(t, err)

	_, err = NewTensor3D([]float64{1}, []float64{1}, []float64{1}, []float64{1, 2, 3})
	assert.Error(t, err, "depth field size must be (nx+1)*(ny+1)")
}
