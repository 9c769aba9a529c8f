// Package octree implements the recursive spatial partition described in
// spec §4.2: eight children per node in a canonical octant order, a loose
// straddle-at-parent discipline, and iterative near-to-far raycasting.
//
// The shape of insert/remove/split/query below is carried over from
// phuhao00-Pathweaver's internal/spatial/octree.go, generalized from a
// map-backed, eagerly-duplicating node into one backed by the pooled
// internal/store linked lists and the loose (straddle-at-parent) discipline
// spec.md requires.
package octree

import (
	"math"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/phuhao00/octreecore/internal/geom"
	"github.com/phuhao00/octreecore/internal/store"
)

// Observer receives node lifecycle events. internal/metrics.Recorder
// satisfies this.
type Observer interface {
	NodeCreated()
	NodeSplit()
	NodesCleared(remaining int)
}

type noopObserver struct{}

func (noopObserver) NodeCreated()     {}
func (noopObserver) NodeSplit()       {}
func (noopObserver) NodesCleared(int) {}

// Config holds the tree-wide tuning knobs every node consults. It is shared
// by pointer across all nodes of one tree so splitting never needs to copy
// or re-resolve these values.
type Config struct {
	MaxDepth   int
	MaxObjects int
}

// Hit is the payload a raycast reports for one intersected record.
type Hit struct {
	ID       int32
	Distance float64
}

// VisibleNode is the per-node envelope FrustumRaycast hands to its visitor:
// the node itself (for LOD decisions), its distance to the ray origin, and
// — when this node tightened the walk's closest hit — the record that did.
type VisibleNode struct {
	Node     *Node
	Distance float64
	MouseHit *Hit
}

// Node is one node of the octree: the AABB it covers, its depth, the
// record-store index of the first object held directly at this node (or
// store.NoNext), and either no children (leaf) or exactly eight.
type Node struct {
	box      geom.AABB
	level    int
	head     int32
	children [8]*Node

	cfg      *Config
	records  *store.Store
	observer Observer
}

// NewNode constructs a single leaf node. Octree (the façade) calls this
// once for the root; split calls it eight times per split.
func NewNode(box geom.AABB, level int, cfg *Config, records *store.Store, observer Observer) *Node {
	if observer == nil {
		observer = noopObserver{}
	}
	n := &Node{
		box:      box,
		level:    level,
		head:     store.NoNext,
		cfg:      cfg,
		records:  records,
		observer: observer,
	}
	observer.NodeCreated()
	return n
}

// Box returns the AABB this node covers.
func (n *Node) Box() geom.AABB { return n.box }

// IsLeaf reports whether this node has no children.
func (n *Node) IsLeaf() bool { return n.children[0] == nil }

// Head returns the record-store index of this node's own object list.
func (n *Node) Head() int32 { return n.head }

// Children returns the node's eight children (undefined contents on a
// leaf — check IsLeaf first).
func (n *Node) Children() [8]*Node { return n.children }

// OwnRecords collects the records held directly at this node (not its
// descendants). It exists for diagnostics (internal/debug's tree dump) and
// tests; the hot query/mutation paths never call it.
func (n *Node) OwnRecords() []store.RecordView {
	var out []store.RecordView
	n.records.TraverseBoxed(n.head, func(rv store.RecordView) bool {
		out = append(out, rv)
		return true
	})
	return out
}

// classify returns which child octant (0..7) fully contains box under
// parent's canonical split, or -1 if box straddles any of parent's
// midplanes. Bit 0 is x, bit 1 is y, bit 2 is z (1 meaning "high half").
func classify(parent geom.AABB, box geom.AABB) int {
	c := parent.Center()
	idx := 0

	switch {
	case box.Max.X <= c.X:
	case box.Min.X >= c.X:
		idx |= 1
	default:
		return -1
	}

	switch {
	case box.Max.Y <= c.Y:
	case box.Min.Y >= c.Y:
		idx |= 2
	default:
		return -1
	}

	switch {
	case box.Max.Z <= c.Z:
	case box.Min.Z >= c.Z:
		idx |= 4
	default:
		return -1
	}

	return idx
}

// octantBox returns the sub-box of parent selected by octant index i under
// the canonical order (see classify).
func octantBox(parent geom.AABB, i int) geom.AABB {
	c := parent.Center()
	box := geom.AABB{Min: parent.Min, Max: parent.Max}

	if i&1 == 0 {
		box.Max.X = c.X
	} else {
		box.Min.X = c.X
	}
	if i&2 == 0 {
		box.Max.Y = c.Y
	} else {
		box.Min.Y = c.Y
	}
	if i&4 == 0 {
		box.Max.Z = c.Z
	} else {
		box.Min.Z = c.Z
	}

	return box
}

// Insert places a new record with the given bounds and id. Per §4.2, a
// node that doesn't intersect box self-filters: Insert may be called at
// any node.
func (n *Node) Insert(box geom.AABB, id int32) {
	n.insert(box, func(head int32) int32 {
		return n.records.Allocate(head, store.AABBToBounds(box), id)
	})
}

// insert is the shared descent used by both fresh inserts and the
// record-preserving re-insertion split performs: attach is called on
// whichever node the record ultimately lands at, receiving that node's
// current head and returning its new head.
func (n *Node) insert(box geom.AABB, attach func(head int32) int32) {
	if !n.box.Intersects(box) {
		return
	}

	if !n.IsLeaf() {
		if idx := classify(n.box, box); idx != -1 {
			n.children[idx].insert(box, attach)
			return
		}
	}

	n.head = attach(n.head)

	if n.IsLeaf() && n.level < n.cfg.MaxDepth && n.records.Length(n.head) >= n.cfg.MaxObjects {
		n.split()
	}
}

// split creates eight children and redistributes this node's own list:
// records that classify into exactly one child move there (recursively,
// possibly triggering a further split); records that straddle a midplane
// stay on this node's own list per the loose invariant.
func (n *Node) split() {
	for i := 0; i < 8; i++ {
		n.children[i] = NewNode(octantBox(n.box, i), n.level+1, n.cfg, n.records, n.observer)
	}

	type pending struct {
		idx    int32
		bounds geom.AABB
	}
	var items []pending
	for cur := n.head; cur != store.NoNext; {
		rv := n.records.ReadBoxed(cur)
		items = append(items, pending{idx: cur, bounds: rv.Bounds})
		cur = rv.Next
	}
	n.head = store.NoNext

	n.observer.NodeSplit()
	logs.WithTag("level", n.level).Debug("octree node split")

	for _, it := range items {
		idx := it.idx
		n.insert(it.bounds, func(head int32) int32 {
			return n.records.Prepend(head, idx)
		})
	}
}

// Remove walks downward looking for id, pruning on box unless box is the
// empty AABB (the caller didn't have it on hand — see spec.md §9's note on
// the worker transport's remove message).
func (n *Node) Remove(box geom.AABB, id int32) {
	if !box.Empty() && !n.box.Intersects(box) {
		return
	}

	newHead := n.records.Free(n.head, id)
	moved := newHead != n.head
	n.head = newHead
	if moved {
		return
	}

	if !n.IsLeaf() {
		for _, c := range n.children {
			c.Remove(box, id)
		}
	}
}

// AABBQuery emits the id of every record whose bounds intersect box.
// visit returning false stops the walk early; AABBQuery itself returns
// false once that happens, so a node propagates the stop to its caller.
func (n *Node) AABBQuery(box geom.AABB, visit func(id int32) bool) bool {
	if !n.box.Intersects(box) {
		return true
	}

	if !n.IsLeaf() {
		for _, c := range n.children {
			if !c.AABBQuery(box, visit) {
				return false
			}
		}
	}

	cont := true
	n.records.TraverseBoxed(n.head, func(rv store.RecordView) bool {
		if box.Intersects(rv.Bounds) {
			if !visit(rv.ID) {
				cont = false
				return false
			}
		}
		return true
	})
	return cont
}

// FrustumQuery emits the id of every record whose bounds overlap frustum.
func (n *Node) FrustumQuery(f geom.Frustum, visit func(id int32) bool) bool {
	if !f.IntersectsAABB(n.box) {
		return true
	}

	if !n.IsLeaf() {
		for _, c := range n.children {
			if !c.FrustumQuery(f, visit) {
				return false
			}
		}
	}

	cont := true
	n.records.TraverseBoxed(n.head, func(rv store.RecordView) bool {
		if f.IntersectsAABB(rv.Bounds) {
			if !visit(rv.ID) {
				cont = false
				return false
			}
		}
		return true
	})
	return cont
}

// maxStackDepth is the initial capacity of the explicit stack Raycast and
// FrustumRaycast use; it is generous relative to the default max depth of 8,
// and append grows the stack past it when a deeper, caller-configured tree
// needs more (see Config.MaxDepth).
const maxStackDepth = 64

// Raycast runs the iterative near-to-far walk described in §4.2, appending
// every hit found anywhere on the ray to out (which is reset to empty
// length first, preserving its storage).
func (n *Node) Raycast(r geom.Ray, out *[]Hit) {
	*out = (*out)[:0]

	stack := make([]*Node, 0, maxStackDepth)
	stack = append(stack, n)

	type childEntry struct {
		node *Node
		t    float64
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !cur.IsLeaf() {
			entries := make([]childEntry, 0, 8)
			for _, c := range cur.children {
				t := r.SlabEnter(c.box)
				if !math.IsInf(t, 1) {
					entries = append(entries, childEntry{c, t})
				}
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].t < entries[j].t })
			for i := len(entries) - 1; i >= 0; i-- {
				stack = append(stack, entries[i].node)
			}
		}

		cur.records.TraverseBoxed(cur.head, func(rv store.RecordView) bool {
			d := r.SlabDistance(rv.Bounds)
			if !math.IsInf(d, 1) {
				*out = append(*out, Hit{ID: rv.ID, Distance: d})
			}
			return true
		})
	}
}

// FrustumRaycast is the combined per-frame walk: it visits every
// frustum-visible node exactly once, except leaves with an empty own list
// (interior nodes are visited even when their own list is empty), maintains a single
// monotonically-decreasing closest_hit_distance across the whole walk, and
// — unlike Raycast — does not sort children near-to-far (the visitor also
// drives LOD decisions that need breadth-first-ish coverage; see
// spec.md §9).
func (n *Node) FrustumRaycast(f geom.Frustum, r geom.Ray, visit func(VisibleNode) bool) {
	stack := make([]*Node, 0, maxStackDepth)
	stack = append(stack, n)
	closest := math.Inf(1)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.IntersectsAABB(cur.box) {
			continue
		}
		if cur.head == store.NoNext && cur.IsLeaf() {
			continue
		}

		env := VisibleNode{
			Node:     cur,
			Distance: cur.box.Center().Sub(r.Origin).Length(),
		}

		if cur.head != store.NoNext && r.SlabEnter(cur.box) < closest {
			cur.records.TraverseBoxed(cur.head, func(rv store.RecordView) bool {
				t := r.SlabEnter(rv.Bounds)
				if t < closest {
					closest = t
					hit := Hit{ID: rv.ID, Distance: t}
					env.MouseHit = &hit
				}
				return true
			})
		}

		if !visit(env) {
			return
		}

		for _, c := range cur.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// Clear drops this node's children and own list (used at the root by
// Octree.Clear, which clears the shared store separately).
func (n *Node) Clear() {
	n.children = [8]*Node{}
	n.head = store.NoNext
	n.observer.NodesCleared(1)
}
