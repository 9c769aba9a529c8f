// Package store implements the record store: a growable, contiguous
// byte-buffer-backed pool of fixed-size object records threaded into
// singly linked lists by index.
//
// This replaces per-object heap allocation with index arithmetic over a
// single buffer, the same trick iancmcc-bandit's Tree uses for its node
// pool (a pooled, index-addressed []node backed by a free list instead of
// pointer-linked nodes) — generalized here to a raw byte buffer so the
// 32-byte record layout is load-bearing rather than incidental.
package store

import (
	"encoding/binary"
	"math"

	"github.com/phuhao00/octreecore/internal/geom"
)

// recordSize is the fixed size, in bytes, of one object record: six
// little-endian float32 bounds, a signed 32-bit id, and a signed 32-bit
// next-index link.
const recordSize = 32

// NoNext is the sentinel meaning "end of list" for a record's next link,
// and also the sentinel meaning "empty list" for a node's head.
const NoNext int32 = -1

// initialCapacity is the record count the very first buffer is sized for.
const initialCapacity = 1024

func boundsOffset(idx int32) int { return int(idx) * recordSize }
func idOffset(idx int32) int     { return int(idx)*recordSize + 24 }
func nextOffset(idx int32) int   { return int(idx)*recordSize + 28 }

func writeRecord(buf []byte, idx int32, bounds [6]float32, id, next int32) {
	off := boundsOffset(idx)
	for i, f := range bounds {
		binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(f))
	}
	binary.LittleEndian.PutUint32(buf[idOffset(idx):], uint32(id))
	binary.LittleEndian.PutUint32(buf[nextOffset(idx):], uint32(next))
}

func readBounds(buf []byte, idx int32) [6]float32 {
	off := boundsOffset(idx)
	var b [6]float32
	for i := range b {
		b[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+i*4:]))
	}
	return b
}

func readID(buf []byte, idx int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[idOffset(idx):]))
}

func readNext(buf []byte, idx int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[nextOffset(idx):]))
}

func writeNext(buf []byte, idx int32, next int32) {
	binary.LittleEndian.PutUint32(buf[nextOffset(idx):], uint32(next))
}

// BoundsToAABB converts the six-float record layout (minX,minY,minZ,maxX,
// maxY,maxZ) into a geom.AABB.
func BoundsToAABB(b [6]float32) geom.AABB {
	return geom.AABB{
		Min: geom.Vector3{X: float64(b[0]), Y: float64(b[1]), Z: float64(b[2])},
		Max: geom.Vector3{X: float64(b[3]), Y: float64(b[4]), Z: float64(b[5])},
	}
}

// AABBToBounds converts a geom.AABB into the six-float record layout.
func AABBToBounds(box geom.AABB) [6]float32 {
	return [6]float32{
		float32(box.Min.X), float32(box.Min.Y), float32(box.Min.Z),
		float32(box.Max.X), float32(box.Max.Y), float32(box.Max.Z),
	}
}

// RecordView is the boxed, value-copy view of a record returned by
// ReadBoxed: safe to retain past a subsequent grow.
type RecordView struct {
	Bounds geom.AABB
	ID     int32
	Next   int32
}

// RawView is a zero-copy view into the record store's backing buffer.
// Callers must not retain a RawView across any call that may grow the
// store (Allocate past capacity): the slice it wraps is invalidated along
// with every other reference into the old buffer.
type RawView struct {
	raw []byte
	ID  int32
	Next int32
}

func (v RawView) component(i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v.raw[i*4:]))
}

// MinX, MinY, MinZ, MaxX, MaxY, MaxZ read the six raw bound components.
func (v RawView) MinX() float32 { return v.component(0) }
func (v RawView) MinY() float32 { return v.component(1) }
func (v RawView) MinZ() float32 { return v.component(2) }
func (v RawView) MaxX() float32 { return v.component(3) }
func (v RawView) MaxY() float32 { return v.component(4) }
func (v RawView) MaxZ() float32 { return v.component(5) }

// AABB materializes the raw view's bounds as a geom.AABB (a value copy of
// just the six floats, not of the whole buffer).
func (v RawView) AABB() geom.AABB {
	return BoundsToAABB([6]float32{v.MinX(), v.MinY(), v.MinZ(), v.MaxX(), v.MaxY(), v.MaxZ()})
}
