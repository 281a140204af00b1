package comm

import (
	"sync"
	"testing"

	"github.com/mattetrop/fluidhcen/numerics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopologyRejectsNonPositiveDims(t *testing.T) {
	_, err := NewTopology(0, 2)
	require.Error(t, err)
}

func TestNewTopologyBuildsNeighborGrid(t *testing.T) {
	topo, err := NewTopology(2, 2)
	require.NoError(t, err)
	require.Len(t, topo.Contexts, 4)

	rank0 := topo.Contexts[0] // coords (0,0): bottom-left
	assert.False(t, rank0.HasNeighbor(Left))
	assert.False(t, rank0.HasNeighbor(Bottom))
	assert.True(t, rank0.HasNeighbor(Right))
	assert.True(t, rank0.HasNeighbor(Top))

	rank3 := topo.Contexts[3] // coords (1,1): top-right
	assert.True(t, rank3.HasNeighbor(Left))
	assert.True(t, rank3.HasNeighbor(Bottom))
	assert.False(t, rank3.HasNeighbor(Right))
	assert.False(t, rank3.HasNeighbor(Top))
}

func TestCommunicateExchangesHorizontalHalo(t *testing.T) {
	topo, err := NewTopology(2, 1)
	require.NoError(t, err)
	left, right := topo.Contexts[0], topo.Contexts[1]

	mLeft := numerics.NewFieldMatrix(4, 3, 0)
	mRight := numerics.NewFieldMatrix(4, 3, 0)
	for j := 0; j < 3; j++ {
		mLeft.Set(2, j, 11.0)  // left's interior column, sent right
		mRight.Set(1, j, 22.0) // right's interior column, sent left
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); left.Communicate(mLeft) }()
	go func() { defer wg.Done(); right.Communicate(mRight) }()
	wg.Wait()

	for j := 0; j < 3; j++ {
		assert.Equal(t, 22.0, mLeft.At(3, j), "left's ghost column should hold right's interior")
		assert.Equal(t, 11.0, mRight.At(0, j), "right's ghost column should hold left's interior")
	}
}

func TestCommunicateSkipsMissingNeighbor(t *testing.T) {
	topo, err := NewTopology(1, 1)
	require.NoError(t, err)
	only := topo.Contexts[0]
	m := numerics.NewFieldMatrix(3, 3, 5.0)
	only.Communicate(m) // must not block: every direction is nil
	assert.Equal(t, 5.0, m.At(0, 0))
}

func TestReduceMinBlocksUntilAllRanksContribute(t *testing.T) {
	topo, err := NewTopology(2, 2)
	require.NoError(t, err)

	values := []float64{4.0, 1.0, 9.0, 7.0}
	var wg sync.WaitGroup
	results := make([]float64, len(topo.Contexts))
	for i, c := range topo.Contexts {
		wg.Add(1)
		go func(i int, c *Context) {
			defer wg.Done()
			results[i] = c.ReduceMin(values[i])
		}(i, c)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 1.0, r)
	}
}

func TestReduceSumAcrossRanks(t *testing.T) {
	topo, err := NewTopology(3, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, len(topo.Contexts))
	for i, c := range topo.Contexts {
		wg.Add(1)
		go func(i int, c *Context) {
			defer wg.Done()
			results[i] = c.ReduceSum(float64(i + 1))
		}(i, c)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 6.0, r) // 1+2+3
	}
}
