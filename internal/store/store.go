package store

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Observer receives allocation/free/growth events. The record store has no
// dependency on any concrete metrics implementation; internal/metrics
// satisfies this interface and is wired in by the façade.
type Observer interface {
	RecordAllocated()
	RecordFreed()
	BufferGrown(capacity int)
}

type noopObserver struct{}

func (noopObserver) RecordAllocated() {}
func (noopObserver) RecordFreed()     {}
func (noopObserver) BufferGrown(int)  {}

// Store is the pooled, array-backed record store described in §4.1: a
// single contiguous byte buffer of capacity*32 bytes, a next-free-slot
// cursor, and a free list of reusable indices.
type Store struct {
	buf      []byte
	capacity int
	nextSlot int32
	freeList []int32
	observer Observer
}

// New creates a Store with the default initial capacity (1024 records).
func New() *Store {
	return &Store{
		buf:      make([]byte, initialCapacity*recordSize),
		capacity: initialCapacity,
		observer: noopObserver{},
	}
}

// SetObserver wires a growth/allocation observer (e.g. internal/metrics'
// Recorder). Passing nil restores the no-op observer.
func (s *Store) SetObserver(o Observer) {
	if o == nil {
		o = noopObserver{}
	}
	s.observer = o
}

// Allocate pushes a new record at the front of the list rooted at head
// (NoNext for an empty list) and returns the new head — the index of the
// just-allocated record. The buffer is grown before the write if the store
// has no free slot and no previously-freed index to reuse.
func (s *Store) Allocate(head int32, bounds [6]float32, id int32) int32 {
	idx := s.acquireSlot()
	writeRecord(s.buf, idx, bounds, id, head)
	s.observer.RecordAllocated()
	return idx
}

// acquireSlot returns a record index ready to be written: a reused freed
// index if one is available, otherwise the next never-allocated slot,
// growing the buffer first if that slot doesn't exist yet.
func (s *Store) acquireSlot() int32 {
	if n := len(s.freeList); n > 0 {
		idx := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		return idx
	}

	if int(s.nextSlot) == s.capacity {
		s.grow()
	}

	idx := s.nextSlot
	s.nextSlot++
	return idx
}

// grow doubles the buffer's record capacity, copying existing data
// verbatim. Indices remain valid across a grow; raw views obtained before
// the grow do not, since they wrap the old, now-orphaned buffer.
func (s *Store) grow() {
	newCapacity := s.capacity * 2
	newBuf := make([]byte, newCapacity*recordSize)
	copy(newBuf, s.buf)
	s.buf = newBuf
	s.capacity = newCapacity

	s.observer.BufferGrown(newCapacity)
	logs.WithTag("capacity", newCapacity).Debug("record store grew")
}

// Free scans the list rooted at head front-to-back, removes the first
// record whose id matches, and returns the (possibly unchanged) head. If id
// is not present the head is returned unchanged.
func (s *Store) Free(head int32, id int32) int32 {
	if head == NoNext {
		return NoNext
	}

	if readID(s.buf, head) == id {
		next := readNext(s.buf, head)
		s.release(head)
		return next
	}

	prev := head
	cur := readNext(s.buf, head)
	for cur != NoNext {
		if readID(s.buf, cur) == id {
			writeNext(s.buf, prev, readNext(s.buf, cur))
			s.release(cur)
			return head
		}
		prev = cur
		cur = readNext(s.buf, cur)
	}

	return head
}

func (s *Store) release(idx int32) {
	s.freeList = append(s.freeList, idx)
	s.observer.RecordFreed()
}

// Length walks the list rooted at head and counts its records.
func (s *Store) Length(head int32) int {
	n := 0
	for cur := head; cur != NoNext; cur = readNext(s.buf, cur) {
		n++
	}
	return n
}

// ReadBoxed returns the logical, value-copy view of the record at idx.
func (s *Store) ReadBoxed(idx int32) RecordView {
	bounds := readBounds(s.buf, idx)
	return RecordView{
		Bounds: BoundsToAABB(bounds),
		ID:     readID(s.buf, idx),
		Next:   readNext(s.buf, idx),
	}
}

// ReadRaw returns a zero-copy view into the record at idx. See RawView's
// doc comment for the validity contract across a grow.
func (s *Store) ReadRaw(idx int32) RawView {
	off := boundsOffset(idx)
	return RawView{
		raw:  s.buf[off : off+24],
		ID:   readID(s.buf, idx),
		Next: readNext(s.buf, idx),
	}
}

// TraverseBoxed walks the list rooted at head front-to-back, invoking visit
// with a boxed view of each record. visit returns false to stop early.
func (s *Store) TraverseBoxed(head int32, visit func(RecordView) bool) {
	for cur := head; cur != NoNext; cur = readNext(s.buf, cur) {
		if !visit(s.ReadBoxed(cur)) {
			return
		}
	}
}

// TraverseRaw is TraverseBoxed's zero-copy counterpart.
func (s *Store) TraverseRaw(head int32, visit func(RawView) bool) {
	for cur := head; cur != NoNext; cur = readNext(s.buf, cur) {
		if !visit(s.ReadRaw(cur)) {
			return
		}
	}
}

// Clear resets the store to empty. The buffer is retained, so a
// subsequent build-up of the tree does not immediately re-grow it.
func (s *Store) Clear() {
	s.nextSlot = 0
	s.freeList = s.freeList[:0]
}

// Capacity returns the current record capacity of the backing buffer.
func (s *Store) Capacity() int { return s.capacity }

// Prepend re-links an already-allocated record at idx to the front of the
// list rooted at head, without acquiring a new slot. This is how split
// moves a record from a parent's list into a child's (or back onto the
// parent's own rebuilt list) without the churn of freeing and
// re-allocating it under a new identity.
func (s *Store) Prepend(head int32, idx int32) int32 {
	writeNext(s.buf, idx, head)
	return idx
}
