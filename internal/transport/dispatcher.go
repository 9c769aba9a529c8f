package transport

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"

	"github.com/phuhao00/octreecore/pkg/octreecore"
)

// Dispatcher owns one façade and applies decoded batches/queries to it in
// order, per spec §5's ordering guarantee ("reads posted after a write are
// answered against the post-write state" — trivially true here since a
// Dispatcher processes one message at a time, synchronously).
type Dispatcher struct {
	tree *octreecore.Octree
}

// NewDispatcher wraps an existing façade instance.
func NewDispatcher(tree *octreecore.Octree) *Dispatcher {
	return &Dispatcher{tree: tree}
}

// Ready returns the backend's first post-construction message. Proxies on
// the other side of the worker boundary should buffer requests until they
// observe this.
func Ready() []byte {
	b, _ := json.Marshal(map[string]bool{"ready": true})
	return b
}

// ApplyBatch decodes a JSON array of Command and applies each in order.
func (d *Dispatcher) ApplyBatch(raw []byte) error {
	var cmds []Command
	if err := json.Unmarshal(raw, &cmds); err != nil {
		return errors.New("transport: malformed batch").Wrap(err)
	}
	d.ApplyCommands(cmds)
	return nil
}

// ApplyCommands applies a decoded batch in order.
func (d *Dispatcher) ApplyCommands(cmds []Command) {
	for _, c := range cmds {
		switch c.Cmd {
		case "insert":
			d.tree.Insert(vecToAABB(c.Min, c.Max), c.ID)
		case "remove":
			d.tree.Remove(octreecore.AABB{}, c.ID)
		case "update":
			d.tree.Update(c.ID, vecToAABB(c.Min, c.Max))
		default:
			logs.WithTag("cmd", c.Cmd).Warn("transport: unknown batch command")
		}
	}
}

// HandleQuery decodes a single Query, runs it against the façade, and
// returns the marshaled Reply envelope.
func (d *Dispatcher) HandleQuery(raw []byte) ([]byte, error) {
	var q Query
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, errors.New("transport: malformed query").Wrap(err)
	}

	var payload interface{}
	switch q.Type {
	case "raycast":
		ray := octreecore.NewRay(vecToVector3(q.Origin), vecToVector3(q.Direction))
		var hits []octreecore.Hit
		d.tree.Raycast(ray, &hits)
		out := make([]RaycastHit, len(hits))
		for i, h := range hits {
			out[i] = RaycastHit{ID: h.ID, Distance: h.Distance}
		}
		payload = out

	case "aabbQuery":
		var ids []int32
		d.tree.AABBQuery(vecToAABB(q.Min, q.Max), func(id int32) bool {
			ids = append(ids, id)
			return true
		})
		payload = ids

	case "frustumQuery":
		var ids []int32
		d.tree.FrustumQuery(planesToFrustum(q.Planes), func(id int32) bool {
			ids = append(ids, id)
			return true
		})
		payload = ids

	default:
		return nil, errors.New("transport: unknown query type").WithTag("type", q.Type)
	}

	return json.Marshal(Reply{ID: q.ID, Payload: payload})
}
