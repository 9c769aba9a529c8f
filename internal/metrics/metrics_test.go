package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderTracksAllocationsAndFrees(t *testing.T) {
	r := New("metrics-test-alloc")

	r.RecordAllocated()
	r.RecordAllocated()
	require.Equal(t, 2, r.Snapshot().Records)

	r.RecordFreed()
	require.Equal(t, 1, r.Snapshot().Records)

	r.ResetRecords()
	require.Equal(t, 0, r.Snapshot().Records)
}

func TestRecorderTracksNodesAndSplits(t *testing.T) {
	r := New("metrics-test-nodes")

	r.NodeCreated()
	for i := 0; i < 8; i++ {
		r.NodeCreated()
	}
	r.NodeSplit()

	snap := r.Snapshot()
	require.Equal(t, 9, snap.Nodes)
	require.Equal(t, int64(1), snap.Splits)

	r.NodesCleared(1)
	require.Equal(t, 1, r.Snapshot().Nodes)
}

func TestRecorderTracksBufferGrowth(t *testing.T) {
	r := New("metrics-test-growth")

	r.BufferGrown(2048)
	r.BufferGrown(4096)

	snap := r.Snapshot()
	require.Equal(t, int64(2), snap.Growths)
	require.Equal(t, 4096, snap.StoreCapacity)
}
