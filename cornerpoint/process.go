package cornerpoint

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/openporous/gridcore/grid"
)

// DefaultTolerance is the default z-matching tolerance: exact agreement.
const DefaultTolerance = 0.0

// Process reconstructs a connected grid from a corner-point description.
//
// tol is the single tolerance used for every depth comparison, in two places
// with one rule:
//
//   - Node merging: per pillar, candidate corner depths are sorted ascending
//     and clustered greedily; a depth joins the open cluster iff
//     z - clusterBase <= tol, where clusterBase is the smallest depth in the
//     cluster. Each cluster becomes one node at depth clusterBase.
//   - Face matching: two logically adjacent cell sides are connected iff all
//     four of their corners resolved to the same nodes during merging.
//
// With tol = 0 both reduce to exact equality. Inactive cells (ACTNUM == 0)
// and cells of zero thickness everywhere are excluded from the topology, but
// their corner depths still contribute to pillar node generation so that
// neighboring active cells land on consistent nodes.
func Process(in *Grdecl, tol float64) (*grid.Grid, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if tol < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %g", tol)
	}
	nx, ny, nz := in.Dims[0], in.Dims[1], in.Dims[2]

	coord, err := arealCoord(in)
	if err != nil {
		return nil, err
	}

	p := &processor{in: in, tol: tol, coord: coord}
	p.buildNodes()
	p.markActive()
	if p.numActive == 0 {
		return nil, fmt.Errorf("no active cells of positive thickness in %dx%dx%d input", nx, ny, nz)
	}
	p.buildFaces()

	g, err := p.assemble()
	if err != nil {
		return nil, err
	}
	if err := g.ComputeGeometry(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// arealCoord returns the COORD array with the MAPAXES transform applied to
// the x,y components of both pillar endpoints. Without MAPAXES the input is
// returned as is.
func arealCoord(in *Grdecl) ([]float64, error) {
	if in.MAPAXES == nil {
		return in.COORD, nil
	}
	ma := in.MAPAXES
	ex := [2]float64{ma[4] - ma[2], ma[5] - ma[3]}
	ey := [2]float64{ma[0] - ma[2], ma[1] - ma[3]}
	lx := math.Hypot(ex[0], ex[1])
	ly := math.Hypot(ey[0], ey[1])
	if lx == 0 || ly == 0 {
		return nil, fmt.Errorf("MAPAXES axes are degenerate: %v", ma)
	}
	basis := mat.NewDense(2, 2, []float64{
		ex[0] / lx, ey[0] / ly,
		ex[1] / lx, ey[1] / ly,
	})
	out := make([]float64, len(in.COORD))
	copy(out, in.COORD)
	v := mat.NewVecDense(2, nil)
	var w mat.VecDense
	// COORD is a run of (x,y,z) endpoint triples; transform each x,y pair.
	for p := 0; p < len(out); p += 3 {
		v.SetVec(0, out[p])
		v.SetVec(1, out[p+1])
		w.MulVec(basis, v)
		out[p] = ma[2] + w.AtVec(0)
		out[p+1] = ma[3] + w.AtVec(1)
	}
	return out, nil
}

type processor struct {
	in    *Grdecl
	tol   float64
	coord []float64

	nodeCoords []float64 // 3 per node
	cornerNode []int     // 8 per logical cell

	active    []bool
	numActive int

	// Assembled face lists, in creation order.
	faceNodes []int
	facePos   []int
	faceCells []int
	cellFaces [][]int // indexed by logical cell
}

type pillarEntry struct {
	z      float64
	cell   int // logical cell index
	corner int
}

// buildNodes generates merged nodes pillar by pillar and records which node
// each cell corner resolved to.
func (p *processor) buildNodes() {
	nx, ny, nz := p.in.Dims[0], p.in.Dims[1], p.in.Dims[2]
	p.cornerNode = make([]int, 8*nx*ny*nz)

	entries := make([]pillarEntry, 0, 8*nz)
	for jp := 0; jp <= ny; jp++ {
		for ip := 0; ip <= nx; ip++ {
			entries = entries[:0]
			for _, j := range []int{jp - 1, jp} {
				if j < 0 || j >= ny {
					continue
				}
				for _, i := range []int{ip - 1, ip} {
					if i < 0 || i >= nx {
						continue
					}
					// Corner bits selecting this pillar's side of the cell.
					xbit := ip - i
					ybit := jp - j
					for k := 0; k < nz; k++ {
						for zbit := 0; zbit <= 1; zbit++ {
							c := xbit | ybit<<1 | zbit<<2
							entries = append(entries, pillarEntry{
								z:      p.in.CornerDepth(i, j, k, c),
								cell:   p.in.cellIndex(i, j, k),
								corner: c,
							})
						}
					}
				}
			}
			p.mergePillar(ip+jp*(nx+1), entries)
		}
	}
}

// mergePillar sorts the candidate depths of one pillar, clusters them with
// the z - clusterBase <= tol rule and emits one node per cluster, projected
// onto the pillar line.
func (p *processor) mergePillar(pillar int, entries []pillarEntry) {
	sort.Slice(entries, func(a, b int) bool { return entries[a].z < entries[b].z })

	base := math.Inf(1)
	node := -1
	for _, e := range entries {
		if e.z-base > p.tol {
			node = -1
		}
		if node < 0 {
			base = e.z
			node = p.addNode(pillar, base)
		}
		p.cornerNode[8*e.cell+e.corner] = node
	}
}

// addNode projects depth z onto the pillar line and appends the node.
func (p *processor) addNode(pillar int, z float64) int {
	c := p.coord[6*pillar : 6*pillar+6]
	x0, y0, z0 := c[0], c[1], c[2]
	x1, y1, z1 := c[3], c[4], c[5]
	x, y := x0, y0
	// A pillar with coincident endpoint depths is treated as vertical.
	if dz := z1 - z0; math.Abs(dz) > 0 {
		t := (z - z0) / dz
		x = x0 + t*(x1-x0)
		y = y0 + t*(y1-y0)
	}
	id := len(p.nodeCoords) / 3
	p.nodeCoords = append(p.nodeCoords, x, y, z)
	return id
}

// markActive flags cells that are both ACTNUM-active and of positive
// thickness at some corner.
func (p *processor) markActive() {
	nx, ny, nz := p.in.Dims[0], p.in.Dims[1], p.in.Dims[2]
	p.active = make([]bool, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := p.in.cellIndex(i, j, k)
				if p.in.ACTNUM != nil && p.in.ACTNUM[idx] == 0 {
					continue
				}
				thick := 0.0
				for c := 0; c < 4; c++ {
					dz := p.in.CornerDepth(i, j, k, c+4) - p.in.CornerDepth(i, j, k, c)
					if dz > thick {
						thick = dz
					}
				}
				if thick > p.tol {
					p.active[idx] = true
					p.numActive++
				}
			}
		}
	}
}

// Side corner orderings, cyclic around each cell side quad, and the
// corner-to-corner correspondence between the two sides of an interface.
var (
	sideIPlus  = [4]int{1, 3, 7, 5}
	sideIMinus = [4]int{0, 2, 6, 4}
	sideJPlus  = [4]int{2, 3, 7, 6}
	sideJMinus = [4]int{0, 1, 5, 4}
	sideKPlus  = [4]int{4, 5, 7, 6} // bottom of a cell
	sideKMinus = [4]int{0, 1, 3, 2} // top of a cell
)

func (p *processor) buildFaces() {
	nx, ny, nz := p.in.Dims[0], p.in.Dims[1], p.in.Dims[2]
	p.facePos = append(p.facePos, 0)
	p.cellFaces = make([][]int, nx*ny*nz)

	// I interfaces: between (i-1,j,k) and (i,j,k).
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i <= nx; i++ {
				c1, c2 := -1, -1
				if i > 0 {
					c1 = p.in.cellIndex(i-1, j, k)
				}
				if i < nx {
					c2 = p.in.cellIndex(i, j, k)
				}
				p.interfaceFaces(c1, c2, sideIPlus, sideIMinus)
			}
		}
	}
	// J interfaces.
	for k := 0; k < nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				c1, c2 := -1, -1
				if j > 0 {
					c1 = p.in.cellIndex(i, j-1, k)
				}
				if j < ny {
					c2 = p.in.cellIndex(i, j, k)
				}
				p.interfaceFaces(c1, c2, sideJPlus, sideJMinus)
			}
		}
	}
	// K interfaces: c1 above (smaller depth), c2 below.
	for k := 0; k <= nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c1, c2 := -1, -1
				if k > 0 {
					c1 = p.in.cellIndex(i, j, k-1)
				}
				if k < nz {
					c2 = p.in.cellIndex(i, j, k)
				}
				p.interfaceFaces(c1, c2, sideKPlus, sideKMinus)
			}
		}
	}
}

// interfaceFaces emits the faces of one logical interface. Matching sides
// yield a single interior face; mismatched or one-sided interfaces yield
// boundary faces. Degenerate quads are pruned.
func (p *processor) interfaceFaces(c1, c2 int, side1, side2 [4]int) {
	if c1 >= 0 && !p.active[c1] {
		c1 = -1
	}
	if c2 >= 0 && !p.active[c2] {
		c2 = -1
	}
	if c1 < 0 && c2 < 0 {
		return
	}
	if c1 >= 0 && c2 >= 0 && p.sidesMatch(c1, c2, side1, side2) {
		p.addFace(p.sideNodes(c1, side1), c1, c2)
		return
	}
	if c1 >= 0 {
		p.addFace(p.sideNodes(c1, side1), c1, -1)
	}
	if c2 >= 0 {
		p.addFace(p.sideNodes(c2, side2), -1, c2)
	}
}

// sidesMatch reports whether both sides of an interface resolved to the same
// four nodes, corner for corner.
func (p *processor) sidesMatch(c1, c2 int, side1, side2 [4]int) bool {
	for i := 0; i < 4; i++ {
		if p.cornerNode[8*c1+side1[i]] != p.cornerNode[8*c2+side2[i]] {
			return false
		}
	}
	return true
}

func (p *processor) sideNodes(cell int, side [4]int) []int {
	nodes := make([]int, 0, 4)
	for _, c := range side {
		nodes = append(nodes, p.cornerNode[8*cell+c])
	}
	return nodes
}

// addFace appends a face after collapsing repeated nodes; quads reduced
// below a triangle are dropped.
func (p *processor) addFace(nodes []int, c1, c2 int) {
	distinct := nodes[:0]
	for i, n := range nodes {
		if i > 0 && n == distinct[len(distinct)-1] {
			continue
		}
		distinct = append(distinct, n)
	}
	if len(distinct) > 1 && distinct[0] == distinct[len(distinct)-1] {
		distinct = distinct[:len(distinct)-1]
	}
	if len(distinct) < 3 {
		return
	}
	f := len(p.facePos) - 1
	p.faceNodes = append(p.faceNodes, distinct...)
	p.facePos = append(p.facePos, len(p.faceNodes))
	p.faceCells = append(p.faceCells, c1, c2)
	if c1 >= 0 {
		p.cellFaces[c1] = append(p.cellFaces[c1], f)
	}
	if c2 >= 0 {
		p.cellFaces[c2] = append(p.cellFaces[c2], f)
	}
}

// assemble renumbers active cells compactly and produces the grid.
func (p *processor) assemble() (*grid.Grid, error) {
	nx, ny, nz := p.in.Dims[0], p.in.Dims[1], p.in.Dims[2]
	numLogical := nx * ny * nz

	localCell := make([]int, numLogical)
	var globalCell []int
	if p.numActive < numLogical {
		globalCell = make([]int, 0, p.numActive)
	}
	next := 0
	for idx := 0; idx < numLogical; idx++ {
		if !p.active[idx] {
			localCell[idx] = -1
			continue
		}
		localCell[idx] = next
		next++
		if globalCell != nil {
			globalCell = append(globalCell, idx)
		}
	}

	numFaces := len(p.facePos) - 1
	g := &grid.Grid{
		Dimensions:  3,
		NumCells:    p.numActive,
		NumFaces:    numFaces,
		NumNodes:    len(p.nodeCoords) / 3,
		NodeCoords:  p.nodeCoords,
		FaceNodes:   p.faceNodes,
		FaceNodePos: p.facePos,
		FaceCells:   make([]int, 0, 2*numFaces),
		CartDims:    [3]int{nx, ny, nz},
		GlobalCell:  globalCell,
	}
	for _, c := range p.faceCells {
		if c >= 0 {
			c = localCell[c]
		}
		g.FaceCells = append(g.FaceCells, c)
	}
	g.CellFacePos = append(g.CellFacePos, 0)
	for idx := 0; idx < numLogical; idx++ {
		if !p.active[idx] {
			continue
		}
		if len(p.cellFaces[idx]) < 4 {
			return nil, fmt.Errorf("cell %d degenerated to %d faces", idx, len(p.cellFaces[idx]))
		}
		g.CellFaces = append(g.CellFaces, p.cellFaces[idx]...)
		g.CellFacePos = append(g.CellFacePos, len(g.CellFaces))
	}
	return g, nil
}
