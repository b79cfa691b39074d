// Package partitions groups the cells of a constructed grid into partitions
// for distributed simulation. Partitioning operates on the cell adjacency
// induced by interior faces; statistics report load imbalance and the number
// of faces cut by partition boundaries.
package partitions

import (
	"fmt"
	"math"

	"github.com/openporous/gridcore/grid"
)

// Strategy defines how cells are grouped.
type Strategy int

const (
	// Block assigns consecutive cell ranges.
	Block Strategy = iota
	// RoundRobin distributes cells cyclically.
	RoundRobin
)

// Builder constructs partition layouts for one grid.
type Builder struct {
	Grid *grid.Grid

	// TargetPartitionSize is the desired number of cells per partition.
	TargetPartitionSize int
	Strategy            Strategy
}

// Partition is one group of cells.
type Partition struct {
	ID       int
	Cells    []int // global cell indices
	NumCells int
}

// Layout is a complete assignment of cells to partitions.
type Layout struct {
	Partitions    []Partition
	NumPartitions int
	TotalCells    int
	CellToPart    []int
}

// Build creates a partition layout.
func (b *Builder) Build() (*Layout, error) {
	if b.Grid == nil || b.Grid.NumCells == 0 {
		return nil, fmt.Errorf("no grid to partition")
	}
	if b.TargetPartitionSize <= 0 {
		return nil, fmt.Errorf("target partition size must be positive, got %d", b.TargetPartitionSize)
	}
	numCells := b.Grid.NumCells
	numPartitions := (numCells + b.TargetPartitionSize - 1) / b.TargetPartitionSize

	cellToPart := make([]int, numCells)
	switch b.Strategy {
	case RoundRobin:
		for c := 0; c < numCells; c++ {
			cellToPart[c] = c % numPartitions
		}
	default: // Block
		perPart := (numCells + numPartitions - 1) / numPartitions
		for c := 0; c < numCells; c++ {
			p := c / perPart
			if p >= numPartitions {
				p = numPartitions - 1
			}
			cellToPart[c] = p
		}
	}

	layout := &Layout{
		Partitions:    make([]Partition, numPartitions),
		NumPartitions: numPartitions,
		TotalCells:    numCells,
		CellToPart:    cellToPart,
	}
	for p := range layout.Partitions {
		layout.Partitions[p].ID = p
	}
	for c, p := range cellToPart {
		layout.Partitions[p].Cells = append(layout.Partitions[p].Cells, c)
		layout.Partitions[p].NumCells++
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

// Part returns the partition owning cell c, or -1 for an out-of-range cell.
func (l *Layout) Part(c int) int {
	if c < 0 || c >= len(l.CellToPart) {
		return -1
	}
	return l.CellToPart[c]
}

// Validate checks that every cell is assigned exactly once and that no
// partition is empty.
func (l *Layout) Validate() error {
	seen := make([]bool, l.TotalCells)
	counted := 0
	for _, p := range l.Partitions {
		if p.NumCells == 0 {
			return fmt.Errorf("partition %d is empty", p.ID)
		}
		if p.NumCells != len(p.Cells) {
			return fmt.Errorf("partition %d count %d does not match %d listed cells",
				p.ID, p.NumCells, len(p.Cells))
		}
		for _, c := range p.Cells {
			if c < 0 || c >= l.TotalCells {
				return fmt.Errorf("partition %d references cell %d out of range", p.ID, c)
			}
			if seen[c] {
				return fmt.Errorf("cell %d assigned to more than one partition", c)
			}
			seen[c] = true
			counted++
		}
	}
	if counted != l.TotalCells {
		return fmt.Errorf("assigned %d of %d cells", counted, l.TotalCells)
	}
	return nil
}

// Stats summarizes load balance and communication cost of a layout.
type Stats struct {
	NumPartitions int
	MinCells      int
	MaxCells      int
	AvgCells      float64
	Imbalance     float64 // MaxCells / AvgCells

	// CutFaces counts interior faces whose two cells live in different
	// partitions, a proxy for communication volume.
	CutFaces int
}

// Statistics computes layout statistics against the grid the layout was
// built from.
func (l *Layout) Statistics(g *grid.Grid) Stats {
	s := Stats{
		NumPartitions: l.NumPartitions,
		MinCells:      math.MaxInt32,
		AvgCells:      float64(l.TotalCells) / float64(l.NumPartitions),
	}
	for _, p := range l.Partitions {
		if p.NumCells < s.MinCells {
			s.MinCells = p.NumCells
		}
		if p.NumCells > s.MaxCells {
			s.MaxCells = p.NumCells
		}
	}
	s.Imbalance = float64(s.MaxCells) / s.AvgCells

	for f := 0; f < g.NumFaces; f++ {
		c1, c2 := g.FaceCells[2*f], g.FaceCells[2*f+1]
		if c1 >= 0 && c2 >= 0 && l.CellToPart[c1] != l.CellToPart[c2] {
			s.CutFaces++
		}
	}
	return s
}
