package transport

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"

	"github.com/phuhao00/octreecore/pkg/octreecore"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	tree, err := octreecore.New(nil)
	require.NoError(t, err)
	return NewDispatcher(tree)
}

func TestReadyPayload(t *testing.T) {
	var got map[string]bool
	require.NoError(t, json.Unmarshal(Ready(), &got))
	require.True(t, got["ready"])
}

func TestApplyBatchInsertRemoveUpdate(t *testing.T) {
	d := newTestDispatcher(t)

	batch, err := json.Marshal([]Command{
		{Cmd: "insert", ID: 1, Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}},
		{Cmd: "insert", ID: 2, Min: [3]float32{-2, -2, -2}, Max: [3]float32{-1, -1, -1}},
	})
	require.NoError(t, err)
	require.NoError(t, d.ApplyBatch(batch))

	queryRaw, err := json.Marshal(Query{Type: "aabbQuery", ID: 1, Min: [3]float32{-5, -5, -5}, Max: [3]float32{5, 5, 5}})
	require.NoError(t, err)
	replyRaw, err := d.HandleQuery(queryRaw)
	require.NoError(t, err)

	var reply Reply
	require.NoError(t, json.Unmarshal(replyRaw, &reply))
	require.EqualValues(t, 1, reply.ID)

	ids := decodeIDs(t, replyRaw)
	require.ElementsMatch(t, []int32{1, 2}, ids)

	removeBatch, err := json.Marshal([]Command{{Cmd: "remove", ID: 1}})
	require.NoError(t, err)
	require.NoError(t, d.ApplyBatch(removeBatch))

	replyRaw, err = d.HandleQuery(queryRaw)
	require.NoError(t, err)
	ids = decodeIDs(t, replyRaw)
	require.Equal(t, []int32{2}, ids)

	updateBatch, err := json.Marshal([]Command{
		{Cmd: "update", ID: 2, Min: [3]float32{3, 3, 3}, Max: [3]float32{4, 4, 4}},
	})
	require.NoError(t, err)
	require.NoError(t, d.ApplyBatch(updateBatch))

	movedQuery, err := json.Marshal(Query{Type: "aabbQuery", ID: 2, Min: [3]float32{2, 2, 2}, Max: [3]float32{5, 5, 5}})
	require.NoError(t, err)
	replyRaw, err = d.HandleQuery(movedQuery)
	require.NoError(t, err)
	ids = decodeIDs(t, replyRaw)
	require.Equal(t, []int32{2}, ids)
}

func TestApplyBatchUnknownCommandIsIgnored(t *testing.T) {
	d := newTestDispatcher(t)
	batch, err := json.Marshal([]Command{{Cmd: "frobnicate", ID: 1}})
	require.NoError(t, err)
	require.NoError(t, d.ApplyBatch(batch))
}

func TestApplyBatchMalformedReturnsError(t *testing.T) {
	d := newTestDispatcher(t)
	require.Error(t, d.ApplyBatch([]byte("not json")))
}

func TestHandleQueryRaycast(t *testing.T) {
	d := newTestDispatcher(t)

	insertBatch, _ := json.Marshal([]Command{
		{Cmd: "insert", ID: 7, Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}},
	})
	require.NoError(t, d.ApplyBatch(insertBatch))

	queryRaw, _ := json.Marshal(Query{
		Type:      "raycast",
		ID:        42,
		Origin:    [3]float32{-5, 0.5, 0.5},
		Direction: [3]float32{1, 0, 0},
	})
	replyRaw, err := d.HandleQuery(queryRaw)
	require.NoError(t, err)

	var reply struct {
		ID      uint32       `json:"id"`
		Payload []RaycastHit `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(replyRaw, &reply))
	require.EqualValues(t, 42, reply.ID)
	require.Len(t, reply.Payload, 1)
	require.EqualValues(t, 7, reply.Payload[0].ID)
}

func TestHandleQueryFrustumQuery(t *testing.T) {
	d := newTestDispatcher(t)

	insertBatch, _ := json.Marshal([]Command{
		{Cmd: "insert", ID: 3, Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}},
	})
	require.NoError(t, d.ApplyBatch(insertBatch))

	var planes [24]float32
	axes := [][3]float32{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for k, n := range axes {
		planes[4*k] = n[0]
		planes[4*k+1] = n[1]
		planes[4*k+2] = n[2]
		planes[4*k+3] = 10
	}

	queryRaw, _ := json.Marshal(Query{Type: "frustumQuery", ID: 9, Planes: planes})
	replyRaw, err := d.HandleQuery(queryRaw)
	require.NoError(t, err)
	require.Equal(t, []int32{3}, decodeIDs(t, replyRaw))
}

func TestHandleQueryUnknownTypeErrors(t *testing.T) {
	d := newTestDispatcher(t)
	queryRaw, _ := json.Marshal(Query{Type: "bogus", ID: 1})
	_, err := d.HandleQuery(queryRaw)
	require.Error(t, err)
}

func decodeIDs(t *testing.T, replyRaw []byte) []int32 {
	var reply struct {
		Payload []int32 `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(replyRaw, &reply))
	return reply.Payload
}
