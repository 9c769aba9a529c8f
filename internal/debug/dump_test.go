package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phuhao00/octreecore/internal/geom"
	"github.com/phuhao00/octreecore/internal/octree"
	"github.com/phuhao00/octreecore/internal/store"
)

func TestDumpEmptyTreeDoesNotPanic(t *testing.T) {
	box := geom.AABB{Min: geom.Vector3{X: -5, Y: -5, Z: -5}, Max: geom.Vector3{X: 5, Y: 5, Z: 5}}
	records := store.New()
	root := octree.NewNode(box, 0, &octree.Config{MaxDepth: 8, MaxObjects: 16}, records, nil)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, "empty", root))
	require.Contains(t, buf.String(), "empty")
}

func TestDumpBranchingTreeListsStraddlersAndChildren(t *testing.T) {
	box := geom.AABB{Min: geom.Vector3{X: -10, Y: -10, Z: -10}, Max: geom.Vector3{X: 10, Y: 10, Z: 10}}
	records := store.New()
	root := octree.NewNode(box, 0, &octree.Config{MaxDepth: 4, MaxObjects: 1}, records, nil)

	straddler := geom.AABB{Min: geom.Vector3{X: -1, Y: -1, Z: -1}, Max: geom.Vector3{X: 1, Y: 1, Z: 1}}
	root.Insert(straddler, 100)
	root.Insert(geom.AABB{Min: geom.Vector3{X: 3, Y: 3, Z: 3}, Max: geom.Vector3{X: 4, Y: 4, Z: 4}}, 1)
	root.Insert(geom.AABB{Min: geom.Vector3{X: 3.2, Y: 3.2, Z: 3.2}, Max: geom.Vector3{X: 3.5, Y: 3.5, Z: 3.5}}, 2)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, "branching", root))
	out := buf.String()

	require.True(t, strings.Contains(out, "id=100 (straddler)"))
	require.True(t, strings.Contains(out, "id=1"))
	require.True(t, strings.Contains(out, "id=2"))
}
