// Package cornerpoint converts raw corner-point arrays (COORD, ZCORN, ACTNUM,
// MAPAXES plus logical dimensions) into a connected grid.Grid. Cells are
// logically indexed (i,j,k); each cell's eight corner depths are read from
// ZCORN and projected onto the COORD pillar lines, faces are inferred by
// matching corner nodes between logically adjacent cells, and inactive or
// zero-thickness cells are excluded from the final topology.
package cornerpoint

import (
	"fmt"
)

// Grdecl is the normalized corner-point input record. The slices are value
// copies or caller-provided views; the processor never retains them past the
// Process call.
type Grdecl struct {
	// Logical cell counts (nx, ny, nz).
	Dims [3]int

	// COORD holds 6 values per pillar, (x0,y0,z0, x1,y1,z1) for the two
	// endpoints of the pillar line, 6*(nx+1)*(ny+1) in total.
	COORD []float64

	// ZCORN holds the eight corner depths of every cell, 8*nx*ny*nz in
	// total, in standard corner-point ordering (i fastest, then j, then k,
	// corners doubled along each axis).
	ZCORN []float64

	// ACTNUM marks cells inactive (0) or active (nonzero). Optional; nil
	// means all cells active.
	ACTNUM []int

	// MAPAXES is an optional areal transform (x1,y1, x2,y2, x3,y3): local
	// origin at (x2,y2), (x3,y3) a point on the local X axis, (x1,y1) a
	// point on the local Y axis. Always an owned copy, never a view into
	// deck storage.
	MAPAXES []float64
}

// Validate checks that every array length matches the declared dimensions.
func (g *Grdecl) Validate() error {
	nx, ny, nz := g.Dims[0], g.Dims[1], g.Dims[2]
	if nx < 1 || ny < 1 || nz < 1 {
		return fmt.Errorf("dimensions must be positive, got %dx%dx%d", nx, ny, nz)
	}
	if want := 6 * (nx + 1) * (ny + 1); len(g.COORD) != want {
		return fmt.Errorf("COORD has %d entries, want 6*(nx+1)*(ny+1) = %d", len(g.COORD), want)
	}
	if want := 8 * nx * ny * nz; len(g.ZCORN) != want {
		return fmt.Errorf("ZCORN has %d entries, want 8*nx*ny*nz = %d", len(g.ZCORN), want)
	}
	if g.ACTNUM != nil && len(g.ACTNUM) != nx*ny*nz {
		return fmt.Errorf("ACTNUM has %d entries, want nx*ny*nz = %d", len(g.ACTNUM), nx*ny*nz)
	}
	if g.MAPAXES != nil && len(g.MAPAXES) != 6 {
		return fmt.Errorf("MAPAXES has %d entries, want 6", len(g.MAPAXES))
	}
	return nil
}

// zcornIndex addresses corner c of cell (i,j,k) in the ZCORN array. Corner
// bits: bit 0 selects the +I side, bit 1 the +J side, bit 2 the bottom.
func (g *Grdecl) zcornIndex(i, j, k, c int) int {
	nx, ny := g.Dims[0], g.Dims[1]
	i2 := 2*i + (c & 1)
	j2 := 2*j + ((c >> 1) & 1)
	k2 := 2*k + ((c >> 2) & 1)
	return i2 + j2*2*nx + k2*4*nx*ny
}

// CornerDepth returns the depth of corner c of cell (i,j,k).
func (g *Grdecl) CornerDepth(i, j, k, c int) float64 {
	return g.ZCORN[g.zcornIndex(i, j, k, c)]
}

func (g *Grdecl) cellIndex(i, j, k int) int {
	return i + g.Dims[0]*(j+g.Dims[1]*k)
}
