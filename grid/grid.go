// Package grid defines the canonical unstructured mesh used as the spatial
// discretization for reservoir simulation, together with the cartesian and
// tensor-product construction paths and the shared geometry computation.
//
// A Grid is built once by a construction path and is immutable afterwards.
// Corner-point construction lives in the cornerpoint package; lifecycle
// management and deck interpretation live in the manager package.
package grid

import (
	"fmt"
)

// Grid is the canonical mesh representation. Cell, face and node data are
// stored in flat arrays; variable-length topology uses CSR-style position
// arrays.
type Grid struct {
	// Spatial dimension, 2 or 3.
	Dimensions int

	// Entity counts
	NumCells int
	NumFaces int
	NumNodes int

	// Node coordinates, Dimensions entries per node.
	NodeCoords []float64

	// Face-to-node topology: the nodes of face f are
	// FaceNodes[FaceNodePos[f]:FaceNodePos[f+1]], in cyclic order.
	FaceNodes   []int
	FaceNodePos []int

	// Face-to-cell adjacency: FaceCells[2f] and FaceCells[2f+1] are the
	// cells on either side of face f, -1 on the boundary. The face normal
	// points from FaceCells[2f] toward FaceCells[2f+1].
	FaceCells []int

	// Cell-to-face topology: the faces of cell c are
	// CellFaces[CellFacePos[c]:CellFacePos[c+1]].
	CellFaces   []int
	CellFacePos []int

	// Geometry, computed once at construction.
	FaceCentroids []float64 // Dimensions entries per face
	FaceNormals   []float64 // area-weighted, Dimensions entries per face
	FaceAreas     []float64
	CellCentroids []float64 // Dimensions entries per cell
	CellVolumes   []float64

	// CartDims holds the logical cartesian dimensions of the construction
	// input. For 2D grids CartDims[2] is 1.
	CartDims [3]int

	// GlobalCell maps each cell to its logical cartesian index
	// i + nx*(j + ny*k). Nil when every logical cell is present in
	// natural order.
	GlobalCell []int
}

// CellFaceList returns the faces of cell c.
func (g *Grid) CellFaceList(c int) []int {
	return g.CellFaces[g.CellFacePos[c]:g.CellFacePos[c+1]]
}

// FaceNodeList returns the nodes of face f in cyclic order.
func (g *Grid) FaceNodeList(f int) []int {
	return g.FaceNodes[g.FaceNodePos[f]:g.FaceNodePos[f+1]]
}

// NodeCoord returns the coordinates of node n.
func (g *Grid) NodeCoord(n int) []float64 {
	return g.NodeCoords[n*g.Dimensions : (n+1)*g.Dimensions]
}

// LogicalIndex returns the logical cartesian index of cell c.
func (g *Grid) LogicalIndex(c int) int {
	if g.GlobalCell == nil {
		return c
	}
	return g.GlobalCell[c]
}

// Validate checks structural consistency of the topology arrays. A grid
// returned by any construction path always passes.
func (g *Grid) Validate() error {
	if g.Dimensions != 2 && g.Dimensions != 3 {
		return fmt.Errorf("invalid dimension %d", g.Dimensions)
	}
	if g.NumCells <= 0 {
		return fmt.Errorf("grid has no cells")
	}
	if len(g.NodeCoords) != g.NumNodes*g.Dimensions {
		return fmt.Errorf("node coordinate array length %d does not match %d nodes in %dD",
			len(g.NodeCoords), g.NumNodes, g.Dimensions)
	}
	if len(g.FaceNodePos) != g.NumFaces+1 {
		return fmt.Errorf("face position array length %d does not match %d faces",
			len(g.FaceNodePos), g.NumFaces)
	}
	if len(g.CellFacePos) != g.NumCells+1 {
		return fmt.Errorf("cell position array length %d does not match %d cells",
			len(g.CellFacePos), g.NumCells)
	}
	if len(g.FaceCells) != 2*g.NumFaces {
		return fmt.Errorf("face adjacency length %d does not match %d faces",
			len(g.FaceCells), g.NumFaces)
	}
	for f := 0; f < g.NumFaces; f++ {
		if g.FaceNodePos[f+1] <= g.FaceNodePos[f] {
			return fmt.Errorf("face %d has non-increasing node range", f)
		}
		for _, n := range g.FaceNodeList(f) {
			if n < 0 || n >= g.NumNodes {
				return fmt.Errorf("face %d references node %d out of range", f, n)
			}
		}
		c1, c2 := g.FaceCells[2*f], g.FaceCells[2*f+1]
		if c1 < -1 || c1 >= g.NumCells || c2 < -1 || c2 >= g.NumCells {
			return fmt.Errorf("face %d references cell out of range (%d, %d)", f, c1, c2)
		}
		if c1 == -1 && c2 == -1 {
			return fmt.Errorf("face %d has no adjacent cell", f)
		}
	}
	// Correspondence: every cell-face reference points back at the cell.
	for c := 0; c < g.NumCells; c++ {
		for _, f := range g.CellFaceList(c) {
			if f < 0 || f >= g.NumFaces {
				return fmt.Errorf("cell %d references face %d out of range", c, f)
			}
			if g.FaceCells[2*f] != c && g.FaceCells[2*f+1] != c {
				return fmt.Errorf("cell %d lists face %d which does not border it", c, f)
			}
		}
	}
	if g.GlobalCell != nil && len(g.GlobalCell) != g.NumCells {
		return fmt.Errorf("global cell map length %d does not match %d cells",
			len(g.GlobalCell), g.NumCells)
	}
	return nil
}
