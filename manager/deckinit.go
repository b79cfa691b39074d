package manager

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/openporous/gridcore/cornerpoint"
	"github.com/openporous/gridcore/deck"
	"github.com/openporous/gridcore/grid"
)

// NewFromDeck constructs a grid from a deck. Two ways to specify the grid
// are accepted, decided in order with the first match winning:
//
//  1. Corner-point format: ZCORN and COORD present. Also needs DIMENS or
//     SPECGRID; ACTNUM and MAPAXES are optional.
//  2. Tensor format: DXV, DYV and DZV present. Also needs DIMENS or
//     SPECGRID; DEPTHZ or a uniform TOPS are optional.
//
// A deck carrying both keyword families takes the corner-point path; the
// presence of the other family is not rejected.
func NewFromDeck(d deck.Deck) (*Manager, error) {
	switch {
	case d.HasKeyword("ZCORN") && d.HasKeyword("COORD"):
		return initFromDeckCornerpoint(d)
	case d.HasKeyword("DXV") && d.HasKeyword("DYV") && d.HasKeyword("DZV"):
		return initFromDeckTensorgrid(d)
	default:
		return nil, &ConstructionError{
			Reason: "could not initialize grid from deck: need either ZCORN + COORD or DXV + DYV + DZV keywords",
		}
	}
}

func initFromDeckCornerpoint(d deck.Deck) (*Manager, error) {
	g, err := CreateGrdecl(d)
	if err != nil {
		return nil, err
	}
	return fromGrdecl(g)
}

// CreateGrdecl extracts the normalized corner-point input record from a
// deck. ZCORN, COORD and ACTNUM are views into deck storage and must not
// outlive the deck; MAPAXES is an owned copy.
func CreateGrdecl(d deck.Deck) (*cornerpoint.Grdecl, error) {
	dims, err := readDims(d)
	if err != nil {
		return nil, err
	}
	zcornKw, ok := d.Keyword("ZCORN")
	if !ok {
		return nil, &ConstructionError{Reason: "deck has no ZCORN keyword"}
	}
	coordKw, ok := d.Keyword("COORD")
	if !ok {
		return nil, &ConstructionError{Reason: "deck has no COORD keyword"}
	}
	g := &cornerpoint.Grdecl{
		Dims:  dims,
		ZCORN: zcornKw.SIDoubleData(),
		COORD: coordKw.SIDoubleData(),
	}
	if kw, ok := d.Keyword("ACTNUM"); ok {
		g.ACTNUM = kw.IntData()
	}
	if kw, ok := d.Keyword("MAPAXES"); ok {
		mapaxes := make([]float64, kw.Size())
		for i := range mapaxes {
			mapaxes[i] = kw.SIDouble(0, i)
		}
		g.MAPAXES = mapaxes
	}
	return g, nil
}

// readDims resolves the logical dimensions, preferring DIMENS over SPECGRID.
func readDims(d deck.Deck) ([3]int, error) {
	name := "DIMENS"
	kw, ok := d.Keyword(name)
	if !ok {
		name = "SPECGRID"
		kw, ok = d.Keyword(name)
	}
	if !ok {
		return [3]int{}, &ConstructionError{Reason: "deck must have either DIMENS or SPECGRID"}
	}
	if kw.Size() < 3 {
		return [3]int{}, &ConstructionError{
			Reason: fmt.Sprintf("%s has %d items, want at least 3", name, kw.Size()),
		}
	}
	return [3]int{kw.Int(0, 0), kw.Int(0, 1), kw.Int(0, 2)}, nil
}

func initFromDeckTensorgrid(d deck.Deck) (*Manager, error) {
	dims, err := readDims(d)
	if err != nil {
		return nil, err
	}
	dxv := keywordDoubles(d, "DXV")
	dyv := keywordDoubles(d, "DYV")
	dzv := keywordDoubles(d, "DZV")

	// Cell counts per axis must agree with DIMENS/SPECGRID.
	for _, axis := range []struct {
		name string
		n    int
		dims int
	}{
		{"DXV", len(dxv), dims[0]},
		{"DYV", len(dyv), dims[1]},
		{"DZV", len(dzv), dims[2]},
	} {
		if axis.n != axis.dims {
			return nil, &ConstructionError{
				Reason: fmt.Sprintf("number of %s data points (%d) does not match DIMENS or SPECGRID (%d)",
					axis.name, axis.n, axis.dims),
			}
		}
	}

	depthz, err := topDepths(d, dims[0], dims[1])
	if err != nil {
		return nil, err
	}

	mesh, err := grid.NewTensor3D(dxv, dyv, dzv, depthz)
	if err != nil {
		return nil, constructionFailed(err)
	}
	log.WithFields(log.Fields{
		"path":  "tensor",
		"dims":  dims,
		"cells": mesh.NumCells,
	}).Debug("constructed grid")
	return &Manager{g: mesh}, nil
}

// topDepths extracts the areal top-depth field: DEPTHZ verbatim, or a
// uniform TOPS broadcast over the (nx+1)*(ny+1) areal nodes. Nil means top
// depth 0 everywhere.
func topDepths(d deck.Deck, nx, ny int) ([]float64, error) {
	arealNodes := (nx + 1) * (ny + 1)
	if kw, ok := d.Keyword("DEPTHZ"); ok {
		depthz := kw.SIDoubleData()
		if len(depthz) != arealNodes {
			return nil, &ConstructionError{
				Reason: fmt.Sprintf("incorrect size of DEPTHZ: %d, want %d", len(depthz), arealNodes),
			}
		}
		return depthz, nil
	}
	if kw, ok := d.Keyword("TOPS"); ok {
		tops := kw.SIDoubleData()
		if len(tops) == 0 {
			return nil, &ConstructionError{Reason: "TOPS keyword has no data"}
		}
		for _, v := range tops {
			if v != tops[0] {
				return nil, &ConstructionError{
					Reason: "non-uniform TOPS is not supported, use ZCORN/COORD instead",
				}
			}
		}
		depthz := make([]float64, arealNodes)
		for i := range depthz {
			depthz[i] = tops[0]
		}
		return depthz, nil
	}
	return nil, nil
}

func keywordDoubles(d deck.Deck, name string) []float64 {
	kw, ok := d.Keyword(name)
	if !ok {
		return nil
	}
	return kw.SIDoubleData()
}
