// Package transport implements the worker transport's wire contract from
// spec.md §6: batch mutation commands, correlated query commands, and the
// reply envelope. It is a pure boundary codec over pkg/octreecore's public
// façade — it owns no tree state of its own, so a decoding bug can never
// corrupt the engine's own invariants.
//
// Marshal/unmarshal use github.com/segmentio/encoding/json in place of the
// standard library's encoding/json, the same drop-in swap
// aukilabs-hagall/cmd/main.go performs for its hot paths.
package transport

import "github.com/phuhao00/octreecore/pkg/octreecore"

// Command is one batch (fire-and-forget) mutation: insert, remove, or
// update. Min/Max are only meaningful for "insert" and "update".
type Command struct {
	Cmd string     `json:"cmd"`
	ID  int32      `json:"id"`
	Min [3]float32 `json:"min,omitempty"`
	Max [3]float32 `json:"max,omitempty"`
}

// Query is one request/response query command, correlated by ID — a
// monotonic 32-bit correlation id distinct from any object id.
type Query struct {
	Type      string     `json:"type"`
	ID        uint32     `json:"id"`
	Min       [3]float32 `json:"min,omitempty"`
	Max       [3]float32 `json:"max,omitempty"`
	Origin    [3]float32 `json:"origin,omitempty"`
	Direction [3]float32 `json:"direction,omitempty"`
	Planes    [24]float32 `json:"planes,omitempty"`
}

// Reply is the envelope every query response is wrapped in; ID echoes the
// request's correlation id.
type Reply struct {
	ID      uint32      `json:"id"`
	Payload interface{} `json:"payload"`
}

// RaycastHit is one element of a raycast query's reply payload.
type RaycastHit struct {
	ID       int32   `json:"id"`
	Distance float64 `json:"distance"`
}

func vecToAABB(min, max [3]float32) octreecore.AABB {
	return octreecore.AABB{
		Min: octreecore.Vector3{X: float64(min[0]), Y: float64(min[1]), Z: float64(min[2])},
		Max: octreecore.Vector3{X: float64(max[0]), Y: float64(max[1]), Z: float64(max[2])},
	}
}

func vecToVector3(v [3]float32) octreecore.Vector3 {
	return octreecore.Vector3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func planesToFrustum(p [24]float32) octreecore.Frustum {
	var f octreecore.Frustum
	for k := 0; k < 6; k++ {
		f.Planes[k] = octreecore.Plane{
			Normal:   octreecore.Vector3{X: float64(p[4*k]), Y: float64(p[4*k+1]), Z: float64(p[4*k+2])},
			Constant: float64(p[4*k+3]),
		}
	}
	return f
}
