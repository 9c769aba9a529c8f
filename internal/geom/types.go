// Package geom holds the geometric primitives shared by the record store and
// the octree: vectors, axis-aligned bounding boxes, rays and view frustums.
package geom

import "math"

// Vector3 represents a 3D coordinate/vector.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns the componentwise sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// AABB (Axis-Aligned Bounding Box) represents a 3D rectangular boundary.
type AABB struct {
	Min, Max Vector3
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Intersects reports whether b and o overlap. Intersection is inclusive: the
// boxes overlap iff on every axis a.min <= b.max and b.min <= a.max.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// Empty reports whether the box carries no volume information at all (the
// zero value), used by callers that want to pass an AABB-less remove.
func (b AABB) Empty() bool {
	return b == AABB{}
}

// Plane is an oriented plane (normal, constant) as used by a view frustum.
type Plane struct {
	Normal   Vector3
	Constant float64
}

// Frustum is a convex region bounded by six oriented planes.
type Frustum struct {
	Planes [6]Plane
}

// IntersectsAABB reports whether box overlaps the frustum using the
// standard conservative positive-vertex test: the box is outside iff, for
// some plane, its positive vertex (the corner most in the direction of the
// plane's normal) lies on the negative side of that plane.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, p := range f.Planes {
		positive := box.Min
		if p.Normal.X >= 0 {
			positive.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			positive.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			positive.Z = box.Max.Z
		}
		if p.Normal.Dot(positive)+p.Constant < 0 {
			return false
		}
	}
	return true
}

// Ray is a 3D ray defined by an origin and a (not necessarily normalized)
// direction. InvDir is precomputed once per ray and reused by every slab
// test the ray is run against.
type Ray struct {
	Origin Vector3
	Dir    Vector3
	InvDir Vector3
}

// NewRay builds a Ray and precomputes its componentwise inverse direction.
// A zero component in dir produces a signed infinity in InvDir, which the
// slab test below relies on to resolve axis-parallel rays correctly.
func NewRay(origin, dir Vector3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: Vector3{X: 1 / dir.X, Y: 1 / dir.Y, Z: 1 / dir.Z},
	}
}
