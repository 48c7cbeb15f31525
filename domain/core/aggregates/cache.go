package aggregates

import "driftgraph/domain/core/valueobjects"

// analysisCache holds the lazily-built derived state of a session graph:
// per-node centrality scores, cluster partitions keyed by threshold, and
// the ranked bridge list. Entries are created on first query and the
// whole cache is cleared atomically on every structural mutation. The
// cache is never handed to callers; accessor methods on ConceptGraph
// check and populate it.
type analysisCache struct {
	centrality   map[valueobjects.ConceptID]float64
	clusters     map[float64][][]valueobjects.ConceptID
	membership   map[float64]map[valueobjects.ConceptID]int
	bridges      []BridgeNode
	bridgesBuilt bool
}

func newAnalysisCache() *analysisCache {
	c := &analysisCache{}
	c.invalidate()
	return c
}

// invalidate drops all derived state. Clearing all three caches together
// is a correctness requirement, not an optimization: a mutation that
// invalidated only one of them could pair fresh clusters with stale
// centrality in the bridge ranking.
func (c *analysisCache) invalidate() {
	c.centrality = make(map[valueobjects.ConceptID]float64)
	c.clusters = make(map[float64][][]valueobjects.ConceptID)
	c.membership = make(map[float64]map[valueobjects.ConceptID]int)
	c.bridges = nil
	c.bridgesBuilt = false
}
