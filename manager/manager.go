// Package manager encapsulates creation and ownership of a grid.Grid. The
// following grid types can be constructed:
//   - 3D corner-point grids (from deck input or a structured geometry source)
//   - 3D tensor grids (from deck input)
//   - 2D and 3D cartesian grids
//   - grids reloaded from a serialized grid file
//
// A Manager holds exactly one grid for its whole lifetime: every constructor
// either returns a Manager with a fully valid grid or an error, never a
// partially built state. The grid is reachable through Grid() and must be
// treated as read-only; its arrays are shared, never copied.
package manager

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/openporous/gridcore/cornerpoint"
	"github.com/openporous/gridcore/grid"
	"github.com/openporous/gridcore/gridio"
)

// ConstructionError is the single error kind reported by every construction
// path. Reason carries the human-readable cause; Err, when set, is the
// underlying builder failure.
type ConstructionError struct {
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func constructionFailed(err error) error {
	return &ConstructionError{Reason: "failed to construct grid", Err: err}
}

// Manager owns one constructed grid.
type Manager struct {
	g *grid.Grid
}

// Grid returns the managed grid. It remains valid only as long as the
// Manager itself is referenced; callers must not mutate it.
func (m *Manager) Grid() *grid.Grid { return m.g }

// GeometrySource is an externally supplied structured grid-geometry source
// with already-extracted corner-point arrays. The Export methods yield owned
// sequences.
type GeometrySource interface {
	NX() int
	NY() int
	NZ() int
	ExportCOORD() []float64
	ExportZCORN() []float64
	ExportACTNUM() []int
	ExportMAPAXES() []float64
}

// NewFromGeometry constructs a corner-point grid from a structured geometry
// source, using the default (exact) matching tolerance.
func NewFromGeometry(src GeometrySource) (*Manager, error) {
	g := &cornerpoint.Grdecl{
		Dims:    [3]int{src.NX(), src.NY(), src.NZ()},
		COORD:   src.ExportCOORD(),
		ZCORN:   src.ExportZCORN(),
		ACTNUM:  src.ExportACTNUM(),
		MAPAXES: src.ExportMAPAXES(),
	}
	return fromGrdecl(g)
}

func fromGrdecl(g *cornerpoint.Grdecl) (*Manager, error) {
	mesh, err := cornerpoint.Process(g, cornerpoint.DefaultTolerance)
	if err != nil {
		return nil, constructionFailed(err)
	}
	log.WithFields(log.Fields{
		"path":  "corner-point",
		"dims":  g.Dims,
		"cells": mesh.NumCells,
		"faces": mesh.NumFaces,
	}).Debug("constructed grid")
	return &Manager{g: mesh}, nil
}

// NewCartesian2D constructs a 2D cartesian grid with cells of unit size.
func NewCartesian2D(nx, ny int) (*Manager, error) {
	return NewCartesian2DWithSize(nx, ny, 1.0, 1.0)
}

// NewCartesian2DWithSize constructs a 2D cartesian grid with cells of size
// dx by dy.
func NewCartesian2DWithSize(nx, ny int, dx, dy float64) (*Manager, error) {
	mesh, err := grid.NewCartesian2D(nx, ny, dx, dy)
	if err != nil {
		return nil, constructionFailed(err)
	}
	return &Manager{g: mesh}, nil
}

// NewCartesian3D constructs a 3D cartesian grid with cells of unit size.
func NewCartesian3D(nx, ny, nz int) (*Manager, error) {
	return NewCartesian3DWithSize(nx, ny, nz, 1.0, 1.0, 1.0)
}

// NewCartesian3DWithSize constructs a 3D cartesian grid with cells of size
// dx by dy by dz.
func NewCartesian3DWithSize(nx, ny, nz int, dx, dy, dz float64) (*Manager, error) {
	mesh, err := grid.NewCartesian3D(nx, ny, nz, dx, dy, dz)
	if err != nil {
		return nil, constructionFailed(err)
	}
	return &Manager{g: mesh}, nil
}

// NewFromFile reloads a grid from a serialized grid file.
func NewFromFile(path string) (*Manager, error) {
	mesh, err := gridio.Read(path)
	if err != nil {
		return nil, &ConstructionError{
			Reason: fmt.Sprintf("failed to read grid from file %s", path),
			Err:    err,
		}
	}
	log.WithFields(log.Fields{
		"path":  "file",
		"file":  path,
		"cells": mesh.NumCells,
	}).Debug("constructed grid")
	return &Manager{g: mesh}, nil
}
