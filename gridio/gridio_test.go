package gridio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openporous/gridcore/grid"
)

func TestRoundTrip(t *testing.T) {
	g, err := grid.NewCartesian3D(3, 2, 2, 1.0, 2.0, 0.5)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "block.grid")
	require.NoError(t, Write(path, g))

	g2, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, g.NumCells, g2.NumCells)
	assert.Equal(t, g.NumFaces, g2.NumFaces)
	assert.Equal(t, g.FaceNodes, g2.FaceNodes)
	assert.Equal(t, g.FaceNodePos, g2.FaceNodePos)
	assert.Equal(t, g.FaceCells, g2.FaceCells)
	assert.Equal(t, g.CellFaces, g2.CellFaces)
	assert.InDeltaSlice(t, g.NodeCoords, g2.NodeCoords, 0)
	assert.InDeltaSlice(t, g.CellVolumes, g2.CellVolumes, 0)
}

func TestRoundTrip2D(t *testing.T) {
	g, err := grid.NewCartesian2D(4, 4, 1, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "flat.grid")
	require.NoError(t, Write(path, g))
	g2, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g2.Dimensions)
	assert.Equal(t, 16, g2.NumCells)
}

func TestReadMissingFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.grid")
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestReadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notagrid.grid")
	require.NoError(t, os.WriteFile(path, []byte("PORO\n0.25 0.25 /\n"), 0o644))
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a grid file")
}

func TestReadDetectsCorruption(t *testing.T) {
	g, err := grid.NewCartesian2D(2, 2, 1, 1)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "corrupt.grid")
	require.NoError(t, Write(path, g))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	buf[len(buf)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	_, err = Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestReadDetectsTruncation(t *testing.T) {
	g, err := grid.NewCartesian2D(2, 2, 1, 1)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "short.grid")
	require.NoError(t, Write(path, g))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf[:len(buf)-5], 0o644))

	_, err = Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}
