// Package metrics instruments an Octree with Prometheus gauges and
// counters, grounded on aukilabs-hagall/models/metrics.go's
// promauto.NewGaugeVec/NewCounterVec pattern. A Recorder is created per
// Octree instance (labeled by a caller-supplied tree name, so multiple
// trees in one process don't collide on the same series) and satisfies the
// observer interfaces internal/store and internal/octree declare.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const treeLabel = "tree"

var (
	recordCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "octreecore_records",
		Help: "Number of object records currently live in the tree.",
	}, []string{treeLabel})

	nodeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "octreecore_nodes",
		Help: "Number of octree nodes currently allocated.",
	}, []string{treeLabel})

	splitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octreecore_splits_total",
		Help: "Total number of node splits performed.",
	}, []string{treeLabel})

	growthTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octreecore_store_growths_total",
		Help: "Total number of record-store buffer growths.",
	}, []string{treeLabel})

	storeCapacity = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "octreecore_store_capacity_records",
		Help: "Current record capacity of the record store's backing buffer.",
	}, []string{treeLabel})
)

// Snapshot is a point-in-time read of a Recorder's counters, handed back to
// callers that want to assert on or log tree health without walking it.
type Snapshot struct {
	Records      int
	Nodes        int
	Splits       int64
	Growths      int64
	StoreCapacity int
}

// Recorder tracks the live counters backing a tree's Prometheus series. The
// gauges are set from these plain ints rather than read back from
// Prometheus, since Prometheus vectors don't expose a cheap read path and
// the engine already has the numbers on hand at the point of mutation.
type Recorder struct {
	name     string
	records  int
	nodes    int
	splits   int64
	growths  int64
	capacity int
}

// New creates a Recorder whose series are labeled with name.
func New(name string) *Recorder {
	return &Recorder{name: name}
}

// RecordAllocated implements store.Observer.
func (r *Recorder) RecordAllocated() {
	r.records++
	recordCount.With(prometheus.Labels{treeLabel: r.name}).Set(float64(r.records))
}

// RecordFreed implements store.Observer.
func (r *Recorder) RecordFreed() {
	r.records--
	recordCount.With(prometheus.Labels{treeLabel: r.name}).Set(float64(r.records))
}

// BufferGrown implements store.Observer.
func (r *Recorder) BufferGrown(capacity int) {
	r.capacity = capacity
	r.growths++
	growthTotal.With(prometheus.Labels{treeLabel: r.name}).Inc()
	storeCapacity.With(prometheus.Labels{treeLabel: r.name}).Set(float64(capacity))
}

// NodeCreated implements octree.Observer: called once per node brought
// into existence (the root, and each of the eight children of a split).
func (r *Recorder) NodeCreated() {
	r.nodes++
	nodeCount.With(prometheus.Labels{treeLabel: r.name}).Set(float64(r.nodes))
}

// NodesCleared implements octree.Observer: called when clear drops every
// node below the root.
func (r *Recorder) NodesCleared(remaining int) {
	r.nodes = remaining
	nodeCount.With(prometheus.Labels{treeLabel: r.name}).Set(float64(r.nodes))
}

// NodeSplit implements octree.Observer.
func (r *Recorder) NodeSplit() {
	r.splits++
	splitTotal.With(prometheus.Labels{treeLabel: r.name}).Inc()
}

// Snapshot returns the current counters.
func (r *Recorder) Snapshot() Snapshot {
	return Snapshot{
		Records:       r.records,
		Nodes:         r.nodes,
		Splits:        r.splits,
		Growths:       r.growths,
		StoreCapacity: r.capacity,
	}
}

// ResetRecords implements the portion of store.Observer's bookkeeping that
// Clear needs: the store itself doesn't call free per-record on Clear, so
// the façade calls this directly to zero the live-record gauge.
func (r *Recorder) ResetRecords() {
	r.records = 0
	recordCount.With(prometheus.Labels{treeLabel: r.name}).Set(0)
}
