package octreecore

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/phuhao00/octreecore/internal/geom"
)

// Config mirrors the tuning triple spec §3 assigns to an Octree: the root
// volume, the maximum split depth, and the per-node object threshold that
// triggers a split. It follows the same shape as the teacher pack's
// pkg/pathweaver.Config3D — a plain struct resolved to defaults by New when
// the caller passes nil.
type Config struct {
	// RootBox is the volume the whole tree covers. Any insert whose bounds
	// don't intersect it is silently dropped (§7).
	RootBox geom.AABB

	// MaxDepth bounds how many times a node may split. Root is depth 0.
	MaxDepth int

	// MaxObjects is the per-node object count that triggers a split, once
	// a leaf is shallower than MaxDepth.
	MaxObjects int

	// Name labels this tree's Prometheus series (internal/metrics) and its
	// debug dump header. Multiple trees in one process should use
	// distinct names to avoid colliding on the same metric series.
	Name string
}

// DefaultConfig returns spec §3's defaults: max depth 8, max objects 16, and
// a root box of side 10 centered at the origin.
func DefaultConfig() Config {
	return Config{
		RootBox: geom.AABB{
			Min: geom.Vector3{X: -5, Y: -5, Z: -5},
			Max: geom.Vector3{X: 5, Y: 5, Z: 5},
		},
		MaxDepth:   8,
		MaxObjects: 16,
		Name:       "default",
	}
}

// validate rejects a Config that can't back a correct tree: a degenerate
// root box, a negative depth, or a non-positive object threshold (a node
// could never NOT split, since a single object already meets "length >= 0").
func (c Config) validate() error {
	if c.RootBox.Min.X > c.RootBox.Max.X || c.RootBox.Min.Y > c.RootBox.Max.Y || c.RootBox.Min.Z > c.RootBox.Max.Z {
		return errors.New("octree config: root box is degenerate").
			WithTag("min", c.RootBox.Min).
			WithTag("max", c.RootBox.Max)
	}
	if c.MaxDepth < 0 {
		return errors.New("octree config: max depth must be non-negative").WithTag("maxDepth", c.MaxDepth)
	}
	if c.MaxObjects < 1 {
		return errors.New("octree config: max objects must be at least 1").WithTag("maxObjects", c.MaxObjects)
	}
	return nil
}
