package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ComputeGeometry fills the geometric attribute arrays (face centroids,
// normals and areas, cell centroids and volumes) from the topology and node
// coordinates. Every construction path calls it exactly once, after the
// topology is final.
//
// Face normals are area-weighted and oriented from FaceCells[2f] toward
// FaceCells[2f+1]. Cell volumes come from pyramid decomposition against the
// face centroids; in 2D "areas" of faces are edge lengths and "volumes" of
// cells are polygon areas.
func (g *Grid) ComputeGeometry() error {
	d := g.Dimensions
	g.FaceCentroids = make([]float64, g.NumFaces*d)
	g.FaceNormals = make([]float64, g.NumFaces*d)
	g.FaceAreas = make([]float64, g.NumFaces)
	g.CellCentroids = make([]float64, g.NumCells*d)
	g.CellVolumes = make([]float64, g.NumCells)

	for f := 0; f < g.NumFaces; f++ {
		if d == 2 {
			g.edgeGeometry(f)
		} else {
			g.polygonGeometry(f)
		}
	}

	g.orientNormals()

	// Provisional cell centers: mean of adjacent face centroids. Used as
	// the apex of the pyramid decomposition below.
	centers := make([]float64, g.NumCells*d)
	for c := 0; c < g.NumCells; c++ {
		faces := g.CellFaceList(c)
		if len(faces) == 0 {
			return fmt.Errorf("cell %d has no faces", c)
		}
		for _, f := range faces {
			floats.Add(centers[c*d:(c+1)*d], g.FaceCentroids[f*d:(f+1)*d])
		}
		floats.Scale(1/float64(len(faces)), centers[c*d:(c+1)*d])
	}

	for c := 0; c < g.NumCells; c++ {
		cc := centers[c*d : (c+1)*d]
		var volume float64
		centroid := make([]float64, d)
		rel := make([]float64, d)
		for _, f := range g.CellFaceList(c) {
			sign := 1.0
			if g.FaceCells[2*f+1] == c {
				sign = -1.0
			}
			cf := g.FaceCentroids[f*d : (f+1)*d]
			n := g.FaceNormals[f*d : (f+1)*d]
			floats.SubTo(rel, cf, cc)
			// Signed pyramid volume with apex at the cell center.
			v := sign * floats.Dot(rel, n) / float64(d)
			volume += v
			// Pyramid centroid: apex + d/(d+1) of the way to the base.
			w := float64(d) / float64(d+1)
			for i := 0; i < d; i++ {
				centroid[i] += v * (cc[i] + w*rel[i])
			}
		}
		if volume > 0 {
			floats.Scale(1/volume, centroid)
		} else {
			copy(centroid, cc)
		}
		g.CellVolumes[c] = volume
		copy(g.CellCentroids[c*d:(c+1)*d], centroid)
	}
	return nil
}

// edgeGeometry computes length, midpoint and normal of a 2D face (an edge).
// The normal is the edge rotated -90 degrees, scaled by its length.
func (g *Grid) edgeGeometry(f int) {
	nodes := g.FaceNodeList(f)
	a := g.NodeCoord(nodes[0])
	b := g.NodeCoord(nodes[len(nodes)-1])
	dx, dy := b[0]-a[0], b[1]-a[1]
	g.FaceCentroids[2*f] = 0.5 * (a[0] + b[0])
	g.FaceCentroids[2*f+1] = 0.5 * (a[1] + b[1])
	g.FaceNormals[2*f] = dy
	g.FaceNormals[2*f+1] = -dx
	g.FaceAreas[f] = hypot2(dx, dy)
}

// polygonGeometry computes area, centroid and area-weighted normal of a 3D
// face by fanning triangles around the node average.
func (g *Grid) polygonGeometry(f int) {
	nodes := g.FaceNodeList(f)
	nn := len(nodes)

	center := make([]float64, 3)
	for _, n := range nodes {
		floats.Add(center, g.NodeCoord(n))
	}
	floats.Scale(1/float64(nn), center)

	var area float64
	normal := make([]float64, 3)
	centroid := make([]float64, 3)
	u := make([]float64, 3)
	v := make([]float64, 3)
	for i := 0; i < nn; i++ {
		a := g.NodeCoord(nodes[i])
		b := g.NodeCoord(nodes[(i+1)%nn])
		floats.SubTo(u, a, center)
		floats.SubTo(v, b, center)
		tn := cross(u, v) // twice the triangle normal
		ta := 0.5 * hypot3(tn[0], tn[1], tn[2])
		area += ta
		for j := 0; j < 3; j++ {
			normal[j] += 0.5 * tn[j]
			centroid[j] += ta * (center[j] + a[j] + b[j]) / 3
		}
	}
	if area > 0 {
		floats.Scale(1/area, centroid)
	} else {
		copy(centroid, center)
	}
	copy(g.FaceCentroids[3*f:3*f+3], centroid)
	copy(g.FaceNormals[3*f:3*f+3], normal)
	g.FaceAreas[f] = area
}

// orientNormals flips face normals where needed so each points from
// FaceCells[2f] toward FaceCells[2f+1]. Orientation is decided against the
// node average of the adjacent cell, which is interior to every cell shape
// produced by the construction paths.
func (g *Grid) orientNormals() {
	d := g.Dimensions
	rel := make([]float64, d)
	ref := make([]float64, d)
	for f := 0; f < g.NumFaces; f++ {
		c, away := g.FaceCells[2*f], true
		if c == -1 {
			c, away = g.FaceCells[2*f+1], false
		}
		g.cellNodeAverage(c, ref)
		floats.SubTo(rel, g.FaceCentroids[f*d:(f+1)*d], ref)
		dot := floats.Dot(rel, g.FaceNormals[f*d:(f+1)*d])
		if (away && dot < 0) || (!away && dot > 0) {
			floats.Scale(-1, g.FaceNormals[f*d:(f+1)*d])
		}
	}
}

// cellNodeAverage writes the mean of all node coordinates on the faces of
// cell c into dst.
func (g *Grid) cellNodeAverage(c int, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	count := 0
	for _, f := range g.CellFaceList(c) {
		for _, n := range g.FaceNodeList(f) {
			floats.Add(dst, g.NodeCoord(n))
			count++
		}
	}
	floats.Scale(1/float64(count), dst)
}

func cross(u, v []float64) [3]float64 {
	return [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

func hypot2(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

func hypot3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
