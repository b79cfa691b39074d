package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// NewTensor3D builds a 3D grid with axis-aligned faces from three cell-extent
// vectors. Coordinates along each axis are the cumulative sums of the deltas,
// starting at 0. depthz, when non-nil, gives the absolute depth of each of
// the (nx+1)*(ny+1) areal nodes; the whole column of z coordinates under an
// areal node is shifted by its entry. A nil depthz means top depth 0
// everywhere.
func NewTensor3D(dxv, dyv, dzv []float64, depthz []float64) (*Grid, error) {
	nx, ny, nz := len(dxv), len(dyv), len(dzv)
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("tensor grid needs at least one cell per axis, got %dx%dx%d", nx, ny, nz)
	}
	if depthz != nil && len(depthz) != (nx+1)*(ny+1) {
		return nil, fmt.Errorf("depth field has %d entries, want %d", len(depthz), (nx+1)*(ny+1))
	}

	x := CoordsFromDeltas(dxv)
	y := CoordsFromDeltas(dyv)
	z := CoordsFromDeltas(dzv)

	g := newHexStructured(nx, ny, nz)
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				top := 0.0
				if depthz != nil {
					top = depthz[j*(nx+1)+i]
				}
				n := i + j*(nx+1) + k*(nx+1)*(ny+1)
				g.NodeCoords[3*n] = x[i]
				g.NodeCoords[3*n+1] = y[j]
				g.NodeCoords[3*n+2] = top + z[k]
			}
		}
	}
	if err := g.ComputeGeometry(); err != nil {
		return nil, err
	}
	return g, nil
}

// CoordsFromDeltas turns cell extents into node coordinates: coords[0] = 0
// and coords[i] = coords[i-1] + deltas[i-1].
func CoordsFromDeltas(deltas []float64) []float64 {
	coords := make([]float64, len(deltas)+1)
	floats.CumSum(coords[1:], deltas)
	return coords
}

// newHexStructured allocates a fully active logically cartesian hexahedral
// topology with (nx+1)(ny+1)(nz+1) nodes. Node coordinates are left zero for
// the caller to fill in. Faces come in I, J, K order; each cell lists its six
// faces as (I-, I+, J-, J+, K-, K+).
func newHexStructured(nx, ny, nz int) *Grid {
	node := func(i, j, k int) int { return i + j*(nx+1) + k*(nx+1)*(ny+1) }
	cell := func(i, j, k int) int { return i + j*nx + k*nx*ny }

	numCells := nx * ny * nz
	numFaces := (nx+1)*ny*nz + nx*(ny+1)*nz + nx*ny*(nz+1)

	g := &Grid{
		Dimensions:  3,
		NumCells:    numCells,
		NumFaces:    numFaces,
		NumNodes:    (nx + 1) * (ny + 1) * (nz + 1),
		NodeCoords:  make([]float64, 3*(nx+1)*(ny+1)*(nz+1)),
		FaceNodes:   make([]int, 0, 4*numFaces),
		FaceNodePos: make([]int, 1, numFaces+1),
		FaceCells:   make([]int, 0, 2*numFaces),
		CartDims:    [3]int{nx, ny, nz},
	}

	cellFaces := make([][6]int, numCells)
	addFace := func(quad [4]int, c1, c2 int, slot1, slot2 int) {
		f := len(g.FaceNodePos) - 1
		g.FaceNodes = append(g.FaceNodes, quad[0], quad[1], quad[2], quad[3])
		g.FaceNodePos = append(g.FaceNodePos, len(g.FaceNodes))
		g.FaceCells = append(g.FaceCells, c1, c2)
		if c1 >= 0 {
			cellFaces[c1][slot1] = f
		}
		if c2 >= 0 {
			cellFaces[c2][slot2] = f
		}
	}

	// I-faces: constant i, between cells (i-1,j,k) and (i,j,k).
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i <= nx; i++ {
				c1, c2 := -1, -1
				if i > 0 {
					c1 = cell(i-1, j, k)
				}
				if i < nx {
					c2 = cell(i, j, k)
				}
				quad := [4]int{node(i, j, k), node(i, j+1, k), node(i, j+1, k+1), node(i, j, k+1)}
				addFace(quad, c1, c2, 1, 0)
			}
		}
	}
	// J-faces: constant j.
	for k := 0; k < nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				c1, c2 := -1, -1
				if j > 0 {
					c1 = cell(i, j-1, k)
				}
				if j < ny {
					c2 = cell(i, j, k)
				}
				quad := [4]int{node(i, j, k), node(i+1, j, k), node(i+1, j, k+1), node(i, j, k+1)}
				addFace(quad, c1, c2, 3, 2)
			}
		}
	}
	// K-faces: constant k.
	for k := 0; k <= nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c1, c2 := -1, -1
				if k > 0 {
					c1 = cell(i, j, k-1)
				}
				if k < nz {
					c2 = cell(i, j, k)
				}
				quad := [4]int{node(i, j, k), node(i+1, j, k), node(i+1, j+1, k), node(i, j+1, k)}
				addFace(quad, c1, c2, 5, 4)
			}
		}
	}

	g.CellFaces = make([]int, 0, 6*numCells)
	g.CellFacePos = make([]int, 1, numCells+1)
	for c := 0; c < numCells; c++ {
		g.CellFaces = append(g.CellFaces, cellFaces[c][:]...)
		g.CellFacePos = append(g.CellFacePos, len(g.CellFaces))
	}
	return g
}
