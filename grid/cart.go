package grid

import (
	"fmt"
)

// NewCartesian2D builds a uniform 2D grid of nx*ny rectangular cells with
// extents dx by dy. Faces are edges; face "areas" are lengths and cell
// "volumes" are areas.
func NewCartesian2D(nx, ny int, dx, dy float64) (*Grid, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("cartesian grid needs positive cell counts, got %dx%d", nx, ny)
	}

	node := func(i, j int) int { return i + j*(nx+1) }
	cell := func(i, j int) int { return i + j*nx }

	numCells := nx * ny
	numFaces := (nx+1)*ny + nx*(ny+1)

	g := &Grid{
		Dimensions:  2,
		NumCells:    numCells,
		NumFaces:    numFaces,
		NumNodes:    (nx + 1) * (ny + 1),
		NodeCoords:  make([]float64, 2*(nx+1)*(ny+1)),
		FaceNodes:   make([]int, 0, 2*numFaces),
		FaceNodePos: make([]int, 1, numFaces+1),
		FaceCells:   make([]int, 0, 2*numFaces),
		CartDims:    [3]int{nx, ny, 1},
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			g.NodeCoords[2*node(i, j)] = float64(i) * dx
			g.NodeCoords[2*node(i, j)+1] = float64(j) * dy
		}
	}

	cellFaces := make([][4]int, numCells)
	addFace := func(n1, n2, c1, c2, slot1, slot2 int) {
		f := len(g.FaceNodePos) - 1
		g.FaceNodes = append(g.FaceNodes, n1, n2)
		g.FaceNodePos = append(g.FaceNodePos, len(g.FaceNodes))
		g.FaceCells = append(g.FaceCells, c1, c2)
		if c1 >= 0 {
			cellFaces[c1][slot1] = f
		}
		if c2 >= 0 {
			cellFaces[c2][slot2] = f
		}
	}

	// I-faces: constant i, between cells (i-1,j) and (i,j).
	for j := 0; j < ny; j++ {
		for i := 0; i <= nx; i++ {
			c1, c2 := -1, -1
			if i > 0 {
				c1 = cell(i-1, j)
			}
			if i < nx {
				c2 = cell(i, j)
			}
			addFace(node(i, j), node(i, j+1), c1, c2, 1, 0)
		}
	}
	// J-faces: constant j.
	for j := 0; j <= ny; j++ {
		for i := 0; i < nx; i++ {
			c1, c2 := -1, -1
			if j > 0 {
				c1 = cell(i, j-1)
			}
			if j < ny {
				c2 = cell(i, j)
			}
			addFace(node(i, j), node(i+1, j), c1, c2, 3, 2)
		}
	}

	g.CellFaces = make([]int, 0, 4*numCells)
	g.CellFacePos = make([]int, 1, numCells+1)
	for c := 0; c < numCells; c++ {
		g.CellFaces = append(g.CellFaces, cellFaces[c][:]...)
		g.CellFacePos = append(g.CellFacePos, len(g.CellFaces))
	}

	if err := g.ComputeGeometry(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewCartesian3D builds a uniform 3D grid of nx*ny*nz hexahedral cells with
// extents dx by dy by dz. It is the tensor path with constant deltas.
func NewCartesian3D(nx, ny, nz int, dx, dy, dz float64) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("cartesian grid needs positive cell counts, got %dx%dx%d", nx, ny, nz)
	}
	return NewTensor3D(uniform(nx, dx), uniform(ny, dy), uniform(nz, dz), nil)
}

func uniform(n int, v float64) []float64 {
	d := make([]float64, n)
	for i := range d {
		d[i] = v
	}
	return d
}
