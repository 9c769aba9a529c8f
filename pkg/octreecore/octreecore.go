// Package octreecore is the public façade over the loose octree engine: one
// record store, one root node, and the configuration triple that governs
// splitting. It does no work of its own beyond delegating to the root and
// resolving the spec's default-id and default-config conventions — see
// spec.md §4.3.
package octreecore

import (
	"io"

	"github.com/phuhao00/octreecore/internal/debug"
	"github.com/phuhao00/octreecore/internal/geom"
	"github.com/phuhao00/octreecore/internal/metrics"
	"github.com/phuhao00/octreecore/internal/octree"
	"github.com/phuhao00/octreecore/internal/store"
)

// Re-exported geometry and result types so callers never need to import
// the internal packages directly.
type (
	AABB    = geom.AABB
	Vector3 = geom.Vector3
	Ray     = geom.Ray
	Frustum = geom.Frustum
	Plane   = geom.Plane

	Hit         = octree.Hit
	VisibleNode = octree.VisibleNode
)

// NewRay is geom.NewRay, re-exported so callers building queries never
// reach into internal/geom directly.
func NewRay(origin, dir Vector3) Ray { return geom.NewRay(origin, dir) }

// Octree is the façade: one store, one root, one config.
type Octree struct {
	cfg     Config
	records *store.Store
	root    *octree.Node
	metrics *metrics.Recorder
}

// New creates an Octree. A nil cfg resolves to DefaultConfig(). Returns an
// error only for a structurally invalid Config — every subsequent mutation
// and query is error-free by design (§7).
func New(cfg *Config) (*Octree, error) {
	resolved := DefaultConfig()
	if cfg != nil {
		resolved = *cfg
	}
	if err := resolved.validate(); err != nil {
		return nil, err
	}

	rec := metrics.New(resolved.Name)
	records := store.New()
	records.SetObserver(rec)

	nodeCfg := &octree.Config{MaxDepth: resolved.MaxDepth, MaxObjects: resolved.MaxObjects}
	root := octree.NewNode(resolved.RootBox, 0, nodeCfg, records, rec)

	return &Octree{cfg: resolved, records: records, root: root, metrics: rec}, nil
}

// Insert adds a new record with the given bounds and id. A caller with no
// meaningful id simply passes 0 — Go's zero value is spec §4.3's "missing
// id defaults to 0" expressed natively, with no optional-parameter plumbing
// needed.
func (o *Octree) Insert(bounds AABB, id int32) {
	o.root.Insert(bounds, id)
}

// Remove deletes the record with the given id. Pass the empty AABB when
// the caller doesn't have the record's bounds on hand (as the worker
// transport's remove message doesn't carry one) — pruning by box is then
// disabled and the whole tree is searched. See spec.md §9.
func (o *Octree) Remove(bounds AABB, id int32) {
	o.root.Remove(bounds, id)
}

// Update is remove-then-insert under the new bounds. Like the worker
// transport's update command, it takes only the new bounds: the old ones
// are not assumed to be known, so the removal step runs unpruned (see
// Remove). An update whose new bounds fall outside the root box is silently
// dropped by Insert, same as any other out-of-bounds insert (§9).
func (o *Octree) Update(id int32, newBounds AABB) {
	o.root.Remove(AABB{}, id)
	o.root.Insert(newBounds, id)
}

// AABBQuery visits the id of every record intersecting box. visit may
// return false to stop the walk early.
func (o *Octree) AABBQuery(box AABB, visit func(id int32) bool) {
	o.root.AABBQuery(box, visit)
}

// FrustumQuery visits the id of every record overlapping frustum. visit
// may return false to stop the walk early.
func (o *Octree) FrustumQuery(frustum Frustum, visit func(id int32) bool) {
	o.root.FrustumQuery(frustum, visit)
}

// Raycast resets out to empty length and appends every hit found anywhere
// along ray, near-to-far traversal order notwithstanding (§4.2: no global
// far-pruning is applied).
func (o *Octree) Raycast(ray Ray, out *[]Hit) {
	o.root.Raycast(ray, out)
}

// FrustumRaycast runs the combined per-frame visitation: every
// frustum-visible node except an empty leaf is visited once, carrying the closest
// ray hit found so far. visit may return false to stop the walk early.
func (o *Octree) FrustumRaycast(frustum Frustum, ray Ray, visit func(VisibleNode) bool) {
	o.root.FrustumRaycast(frustum, ray, visit)
}

// Clear empties the store and drops every node below the root.
func (o *Octree) Clear() {
	o.records.Clear()
	o.root.Clear()
	o.metrics.ResetRecords()
}

// Stats returns a snapshot of this tree's live counters (records, nodes,
// splits, store growths and capacity) — see internal/metrics.
func (o *Octree) Stats() metrics.Snapshot {
	return o.metrics.Snapshot()
}

// Dump writes a human-readable tree structure to w, for tests and operator
// diagnostics (internal/debug). It is never on any query or mutation path.
func (o *Octree) Dump(w io.Writer) error {
	return debug.Dump(w, o.cfg.Name, o.root)
}
