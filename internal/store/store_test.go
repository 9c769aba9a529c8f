package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateFreeRoundTrip(t *testing.T) {
	s := New()

	head := int32(NoNext)
	head = s.Allocate(head, [6]float32{0, 0, 0, 1, 1, 1}, 1)
	head = s.Allocate(head, [6]float32{2, 2, 2, 4, 4, 4}, 2)

	require.Equal(t, 2, s.Length(head))

	view := s.ReadBoxed(head)
	require.Equal(t, int32(2), view.ID)

	head = s.Free(head, 1)
	require.Equal(t, 1, s.Length(head))

	ids := collectIDs(s, head)
	require.Equal(t, []int32{2}, ids)
}

func TestFreeUnknownIDIsNoop(t *testing.T) {
	s := New()
	head := s.Allocate(NoNext, [6]float32{}, 7)

	newHead := s.Free(head, 999)
	require.Equal(t, head, newHead)
	require.Equal(t, 1, s.Length(newHead))
}

func TestFreeInteriorSplices(t *testing.T) {
	s := New()
	head := int32(NoNext)
	head = s.Allocate(head, [6]float32{}, 1) // tail
	head = s.Allocate(head, [6]float32{}, 2) // middle
	head = s.Allocate(head, [6]float32{}, 3) // head

	head = s.Free(head, 2)
	require.Equal(t, []int32{3, 1}, collectIDs(s, head))
}

func TestGrowthPreservesContent(t *testing.T) {
	s := New()
	require.Equal(t, 1024, s.Capacity())

	head := int32(NoNext)
	ids := make([]int32, 0, 1025)
	for i := int32(0); i < 1025; i++ {
		head = s.Allocate(head, [6]float32{float32(i), 0, 0, float32(i) + 1, 1, 1}, i)
		ids = append(ids, i)
	}

	require.Equal(t, 2048, s.Capacity())
	require.Equal(t, 1025, s.Length(head))

	// Spot check a record allocated before the grow still reads back
	// correctly.
	first := s.ReadBoxed(0)
	require.Equal(t, int32(0), first.ID)
	require.InDelta(t, 0, first.Bounds.Min.X, 1e-6)
	require.InDelta(t, 1, first.Bounds.Max.X, 1e-6)
}

func TestClearResetsStore(t *testing.T) {
	s := New()
	head := s.Allocate(NoNext, [6]float32{}, 1)
	head = s.Allocate(head, [6]float32{}, 2)
	require.Equal(t, 2, s.Length(head))

	s.Clear()

	newHead := s.Allocate(NoNext, [6]float32{}, 99)
	require.Equal(t, int32(0), newHead, "first slot after clear should be reused from index 0")
	require.Equal(t, 1, s.Length(newHead))
}

func TestReadRawMatchesReadBoxed(t *testing.T) {
	s := New()
	idx := s.Allocate(NoNext, [6]float32{-1, -2, -3, 4, 5, 6}, 42)

	raw := s.ReadRaw(idx)
	boxed := s.ReadBoxed(idx)

	require.Equal(t, boxed.ID, raw.ID)
	require.Equal(t, boxed.Bounds, raw.AABB())
}

func collectIDs(s *Store, head int32) []int32 {
	var ids []int32
	s.TraverseBoxed(head, func(rv RecordView) bool {
		ids = append(ids, rv.ID)
		return true
	})
	return ids
}
