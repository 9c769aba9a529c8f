package geom

import "math"

// SlabInterval runs the classical ray-AABB slab test and returns the
// entry/exit parameters tMin, tMax along the ray. hit is false when the
// intervals never overlap (tMin > tMax), in which case tMin/tMax carry no
// meaning.
//
// The formula is written exactly as specified, with no reshaping that would
// introduce an Inf-Inf: a ray parallel to a slab (Dir.a == 0) drives InvDir.a
// to a signed infinity, and the surrounding comparisons still resolve to the
// correct hit/miss because IEEE-754 arithmetic propagates that infinity
// through the subtraction and multiplication correctly.
func (r Ray) SlabInterval(box AABB) (tMin, tMax float64, hit bool) {
	tMin, tMax = math.Inf(-1), math.Inf(1)

	axes := [3]struct{ min, max, origin, invDir float64 }{
		{box.Min.X, box.Max.X, r.Origin.X, r.InvDir.X},
		{box.Min.Y, box.Max.Y, r.Origin.Y, r.InvDir.Y},
		{box.Min.Z, box.Max.Z, r.Origin.Z, r.InvDir.Z},
	}

	for _, a := range axes {
		t1 := (a.min - a.origin) * a.invDir
		t2 := (a.max - a.origin) * a.invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return tMin, tMax, false
		}
	}

	return tMin, tMax, true
}

// SlabEnter returns the slab entry distance t_enter, or +Inf on a miss. It
// is the value used to sort and prune child nodes during traversal.
func (r Ray) SlabEnter(box AABB) float64 {
	tMin, _, hit := r.SlabInterval(box)
	if !hit {
		return math.Inf(1)
	}
	return tMin
}

// SlabDistance returns the reported hit distance for a record: t_enter if
// non-negative, else t_exit if non-negative (the ray originates inside the
// box), else +Inf for a miss.
func (r Ray) SlabDistance(box AABB) float64 {
	tMin, tMax, hit := r.SlabInterval(box)
	if !hit {
		return math.Inf(1)
	}
	if tMin >= 0 {
		return tMin
	}
	if tMax >= 0 {
		return tMax
	}
	return math.Inf(1)
}
