package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openporous/gridcore/grid"
)

func buildGrid(t *testing.T, nx, ny, nz int) *grid.Grid {
	t.Helper()
	g, err := grid.NewCartesian3D(nx, ny, nz, 1, 1, 1)
	require.NoError(t, err)
	return g
}

func TestBlockPartitioning(t *testing.T) {
	g := buildGrid(t, 10, 1, 1)
	b := &Builder{Grid: g, TargetPartitionSize: 4, Strategy: Block}
	layout, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, layout.NumPartitions)
	assert.Equal(t, []int{4, 4, 2}, []int{
		layout.Partitions[0].NumCells,
		layout.Partitions[1].NumCells,
		layout.Partitions[2].NumCells,
	})
	require.NoError(t, layout.Validate())

	// Consecutive cells share partitions under block assignment.
	assert.Equal(t, 0, layout.Part(0))
	assert.Equal(t, 0, layout.Part(3))
	assert.Equal(t, 1, layout.Part(4))
	assert.Equal(t, -1, layout.Part(10))
}

func TestRoundRobinPartitioning(t *testing.T) {
	g := buildGrid(t, 6, 1, 1)
	b := &Builder{Grid: g, TargetPartitionSize: 3, Strategy: RoundRobin}
	layout, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 2, layout.NumPartitions)
	for c := 0; c < 6; c++ {
		assert.Equal(t, c%2, layout.Part(c))
	}
}

func TestStatisticsCutFaces(t *testing.T) {
	// A 4x1x1 line split in the middle cuts exactly one interior face.
	g := buildGrid(t, 4, 1, 1)
	b := &Builder{Grid: g, TargetPartitionSize: 2, Strategy: Block}
	layout, err := b.Build()
	require.NoError(t, err)

	stats := layout.Statistics(g)
	assert.Equal(t, 2, stats.NumPartitions)
	assert.Equal(t, 1, stats.CutFaces)
	assert.InDelta(t, 1.0, stats.Imbalance, 1e-12)
}

func TestRoundRobinMaximizesCuts(t *testing.T) {
	g := buildGrid(t, 4, 1, 1)
	b := &Builder{Grid: g, TargetPartitionSize: 2, Strategy: RoundRobin}
	layout, err := b.Build()
	require.NoError(t, err)

	// Alternating ownership cuts every interior face along the line.
	stats := layout.Statistics(g)
	assert.Equal(t, 3, stats.CutFaces)
}

func TestBuildRejectsBadInput(t *testing.T) {
	_, err := (&Builder{Grid: nil, TargetPartitionSize: 4}).Build()
	assert.Error(t, err)

	g := buildGrid(t, 2, 2, 1)
	_, err = (&Builder{Grid: g, TargetPartitionSize: 0}).Build()
	assert.Error(t, err)
}
