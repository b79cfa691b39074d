package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartesian2DUnitCells(t *testing.T) {
	// 2x3 unit grid: 6 cells, each of unit area.
	g, err := NewCartesian2D(2, 3, 1.0, 1.0)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 2, g.Dimensions)
	assert.Equal(t, 6, g.NumCells)
	assert.Equal(t, 12, g.NumNodes)
	assert.Equal(t, (2+1)*3+2*(3+1), g.NumFaces)
	for c := 0; c < g.NumCells; c++ {
		assert.InDelta(t, 1.0, g.CellVolumes[c], 1e-12, "cell %d", c)
	}
	// Cell centroids at half-integer coordinates.
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			c := i + 2*j
			assert.InDelta(t, float64(i)+0.5, g.CellCentroids[2*c], 1e-12)
			assert.InDelta(t, float64(j)+0.5, g.CellCentroids[2*c+1], 1e-12)
		}
	}
}

func TestCartesian2DSizedCells(t *testing.T) {
	g, err := NewCartesian2D(3, 2, 2.0, 0.5)
	require.NoError(t, err)
	for c := 0; c < g.NumCells; c++ {
		assert.InDelta(t, 1.0, g.CellVolumes[c], 1e-12)
	}
	// Edge faces have length dx or dy.
	for f := 0; f < g.NumFaces; f++ {
		a := g.FaceAreas[f]
		if a != 2.0 && a != 0.5 {
			t.Errorf("face %d has unexpected length %g", f, a)
		}
	}
}

func TestCartesian3DGeometry(t *testing.T) {
	g, err := NewCartesian3D(2, 2, 2, 1.0, 2.0, 3.0)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 8, g.NumCells)
	assert.Equal(t, 27, g.NumNodes)
	assert.Equal(t, 36, g.NumFaces)
	for c := 0; c < g.NumCells; c++ {
		assert.InDelta(t, 6.0, g.CellVolumes[c], 1e-12, "cell %d", c)
	}
}

func TestCartesianRejectsNonPositiveCounts(t *testing.T) {
	_, err := NewCartesian2D(0, 3, 1, 1)
	assert.Error(t, err)
	_, err = NewCartesian3D(2, -1, 2, 1, 1, 1)
	assert.Error(t, err)
}

func TestInteriorNormalsPointBetweenCells(t *testing.T) {
	g, err := NewCartesian3D(3, 3, 3, 1.0, 1.0, 1.0)
	require.NoError(t, err)

	d := g.Dimensions
	for f := 0; f < g.NumFaces; f++ {
		c1, c2 := g.FaceCells[2*f], g.FaceCells[2*f+1]
		if c1 < 0 || c2 < 0 {
			continue
		}
		var dot float64
		for i := 0; i < d; i++ {
			dot += (g.CellCentroids[c2*d+i] - g.CellCentroids[c1*d+i]) * g.FaceNormals[f*d+i]
		}
		assert.Greater(t, dot, 0.0, "face %d normal does not point from cell %d to %d", f, c1, c2)
	}
}
