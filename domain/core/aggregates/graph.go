package aggregates

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"driftgraph/domain/config"
	"driftgraph/domain/core/entities"
	"driftgraph/domain/core/valueobjects"
	"driftgraph/domain/events"
	pkgerrors "driftgraph/pkg/errors"
)

// SessionID represents a unique exploration session identifier
type SessionID string

// NewSessionID creates a new random SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// ConceptGraph is the aggregate root for one exploration session. It is
// the single source of truth for concepts, relations, traversal history,
// and the derived analysis cache. The aggregate is not safe for
// concurrent use; the session store serializes access behind one mutex
// per session so a reader can never observe a structurally-updated graph
// paired with a stale cache.
type ConceptGraph struct {
	id        SessionID
	userID    string
	cfg       *config.DomainConfig
	clock     func() time.Time
	rand      *rand.Rand
	nodes     map[valueobjects.ConceptID]*entities.Concept
	order     []valueobjects.ConceptID
	edges     []*Edge
	outEdges  map[valueobjects.ConceptID][]*Edge
	inEdges   map[valueobjects.ConceptID][]*Edge
	history   []Visit
	cache     *analysisCache
	createdAt time.Time
	updatedAt time.Time
	version   int
	events    []events.DomainEvent
}

// Edge represents a directed, typed, weighted relation between concepts.
// Multiple edges between the same ordered pair are permitted, including
// edges of the same type. Weight is documented as [0,1] but not clamped.
type Edge struct {
	ID        string
	SourceID  valueobjects.ConceptID
	TargetID  valueobjects.ConceptID
	Type      entities.RelationType
	Weight    float64
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// Visit is one entry in the append-only traversal history
type Visit struct {
	ConceptID valueobjects.ConceptID
	At        time.Time
}

// NewConceptGraph creates a new session graph
func NewConceptGraph(userID string, cfg *config.DomainConfig) *ConceptGraph {
	return newConceptGraph(userID, cfg, time.Now)
}

// NewConceptGraphWithClock creates a session graph with an injected clock.
// Tests use this to control visit timestamps and novelty decay.
func NewConceptGraphWithClock(userID string, cfg *config.DomainConfig, clock func() time.Time) *ConceptGraph {
	return newConceptGraph(userID, cfg, clock)
}

func newConceptGraph(userID string, cfg *config.DomainConfig, clock func() time.Time) *ConceptGraph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	now := clock()
	return &ConceptGraph{
		id:        NewSessionID(),
		userID:    userID,
		cfg:       cfg,
		clock:     clock,
		rand:      rand.New(rand.NewSource(now.UnixNano())),
		nodes:     make(map[valueobjects.ConceptID]*entities.Concept),
		outEdges:  make(map[valueobjects.ConceptID][]*Edge),
		inEdges:   make(map[valueobjects.ConceptID][]*Edge),
		cache:     newAnalysisCache(),
		createdAt: now,
		updatedAt: now,
		version:   1,
	}
}

// ID returns the session's unique identifier
func (g *ConceptGraph) ID() SessionID {
	return g.id
}

// UserID returns the owner's ID
func (g *ConceptGraph) UserID() string {
	return g.userID
}

// Config returns the engine configuration fixed for this session
func (g *ConceptGraph) Config() *config.DomainConfig {
	return g.cfg
}

// CreatedAt returns when the session was created
func (g *ConceptGraph) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the session was last structurally mutated
func (g *ConceptGraph) UpdatedAt() time.Time {
	return g.updatedAt
}

// NodeCount returns the number of concepts in the store
func (g *ConceptGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the store
func (g *ConceptGraph) EdgeCount() int {
	return len(g.edges)
}

// AddConcept inserts a concept node. A duplicate id is rejected and the
// store is left unchanged. If the concept carries no creation timestamp
// one is assigned from the session clock.
func (g *ConceptGraph) AddConcept(c *entities.Concept) error {
	if c == nil {
		return pkgerrors.NewValidationError("concept cannot be nil")
	}

	id := c.ID()
	if _, exists := g.nodes[id]; exists {
		return pkgerrors.NewDuplicateNodeError(id.String())
	}
	if len(g.nodes) >= g.cfg.MaxNodesPerSession {
		return pkgerrors.NewValidationError("maximum concepts per session reached")
	}

	now := g.clock()
	c.EnsureCreatedAt(now)

	g.nodes[id] = c
	g.order = append(g.order, id)
	// Adjacency entries exist from insertion so EdgesFrom/EdgesTo are
	// O(1) lookups, never edge-list scans.
	g.outEdges[id] = nil
	g.inEdges[id] = nil

	g.markMutated(now)
	g.addEvent(events.NewConceptAdded(g.id.String(), id.String(), c.Source(), now))

	return nil
}

// Link inserts a directed edge between two existing concepts. Both
// endpoints must exist at insertion time; node deletion is not supported,
// so the referential invariant cannot be violated later.
func (g *ConceptGraph) Link(sourceID, targetID valueobjects.ConceptID, relation entities.RelationType, weight float64, metadata map[string]interface{}) (*Edge, error) {
	if !relation.IsValid() {
		return nil, pkgerrors.NewValidationError("unknown relation type " + relation.String())
	}
	if _, exists := g.nodes[sourceID]; !exists {
		return nil, pkgerrors.NewUnknownNodeError(sourceID.String())
	}
	if _, exists := g.nodes[targetID]; !exists {
		return nil, pkgerrors.NewUnknownNodeError(targetID.String())
	}
	if len(g.edges) >= g.cfg.MaxEdgesPerSession {
		return nil, pkgerrors.NewValidationError("maximum edges per session reached")
	}

	now := g.clock()
	edge := &Edge{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		TargetID:  targetID,
		Type:      relation,
		Weight:    weight,
		Metadata:  metadata,
		CreatedAt: now,
	}

	g.edges = append(g.edges, edge)
	g.outEdges[sourceID] = append(g.outEdges[sourceID], edge)
	g.inEdges[targetID] = append(g.inEdges[targetID], edge)

	g.markMutated(now)
	g.addEvent(events.NewConceptsLinked(g.id.String(), sourceID.String(), targetID.String(), relation.String(), weight, now))

	return edge, nil
}

// Visit appends a concept to the traversal history. Visiting is not a
// structural mutation and does not invalidate the analysis cache.
func (g *ConceptGraph) Visit(id valueobjects.ConceptID) error {
	if _, exists := g.nodes[id]; !exists {
		return pkgerrors.NewUnknownNodeError(id.String())
	}

	now := g.clock()
	g.history = append(g.history, Visit{ConceptID: id, At: now})
	g.addEvent(events.NewConceptVisited(g.id.String(), id.String(), now))

	return nil
}

// HasConcept checks if a concept exists without error
func (g *ConceptGraph) HasConcept(id valueobjects.ConceptID) bool {
	_, exists := g.nodes[id]
	return exists
}

// GetConcept retrieves a concept by ID
func (g *ConceptGraph) GetConcept(id valueobjects.ConceptID) (*entities.Concept, error) {
	c, exists := g.nodes[id]
	if !exists {
		return nil, pkgerrors.NewUnknownNodeError(id.String())
	}
	return c, nil
}

// Concepts returns all concepts in insertion order
func (g *ConceptGraph) Concepts() []*entities.Concept {
	concepts := make([]*entities.Concept, 0, len(g.order))
	for _, id := range g.order {
		concepts = append(concepts, g.nodes[id])
	}
	return concepts
}

// Edges returns a copy of the edge list
func (g *ConceptGraph) Edges() []*Edge {
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// EdgesFrom returns the outgoing edges of a concept via the adjacency index
func (g *ConceptGraph) EdgesFrom(id valueobjects.ConceptID) []*Edge {
	out := g.outEdges[id]
	edges := make([]*Edge, len(out))
	copy(edges, out)
	return edges
}

// EdgesTo returns the incoming edges of a concept via the adjacency index
func (g *ConceptGraph) EdgesTo(id valueobjects.ConceptID) []*Edge {
	in := g.inEdges[id]
	edges := make([]*Edge, len(in))
	copy(edges, in)
	return edges
}

// History returns a copy of the traversal history
func (g *ConceptGraph) History() []Visit {
	h := make([]Visit, len(g.history))
	copy(h, g.history)
	return h
}

// LastVisit returns the most recent visit time of a concept
func (g *ConceptGraph) LastVisit(id valueobjects.ConceptID) (time.Time, bool) {
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].ConceptID.Equals(id) {
			return g.history[i].At, true
		}
	}
	return time.Time{}, false
}

// RecentVisits returns up to n most recent history entries, newest last
func (g *ConceptGraph) RecentVisits(n int) []Visit {
	if n <= 0 || len(g.history) == 0 {
		return nil
	}
	if n > len(g.history) {
		n = len(g.history)
	}
	h := make([]Visit, n)
	copy(h, g.history[len(g.history)-n:])
	return h
}

// Now returns the session clock's current time
func (g *ConceptGraph) Now() time.Time {
	return g.clock()
}

// ShortestPathLength returns the directed hop count between two concepts
// using BFS. Edge weight plays no role in path length. The second return
// is false when no directed path exists. Identical endpoints are 0
// without searching.
func (g *ConceptGraph) ShortestPathLength(a, b valueobjects.ConceptID) (int, bool) {
	if a.Equals(b) {
		return 0, true
	}
	if _, exists := g.nodes[a]; !exists {
		return 0, false
	}
	if _, exists := g.nodes[b]; !exists {
		return 0, false
	}

	visited := map[valueobjects.ConceptID]bool{a: true}
	queue := []valueobjects.ConceptID{a}
	depth := 0

	for len(queue) > 0 {
		depth++
		next := queue[:0:0]
		for _, current := range queue {
			for _, edge := range g.outEdges[current] {
				if visited[edge.TargetID] {
					continue
				}
				if edge.TargetID.Equals(b) {
					return depth, true
				}
				visited[edge.TargetID] = true
				next = append(next, edge.TargetID)
			}
		}
		queue = next
	}

	return 0, false
}

// UncommittedEvents returns all uncommitted domain events
func (g *ConceptGraph) UncommittedEvents() []events.DomainEvent {
	evts := make([]events.DomainEvent, len(g.events))
	copy(evts, g.events)
	return evts
}

// MarkEventsAsCommitted clears the uncommitted events
func (g *ConceptGraph) MarkEventsAsCommitted() {
	g.events = nil
}

// Private helper methods

// markMutated bumps the version and invalidates every derived cache.
// Invalidation happens synchronously inside the mutating call so a stale
// cache is never observable after a mutation.
func (g *ConceptGraph) markMutated(now time.Time) {
	g.updatedAt = now
	g.version++
	g.cache.invalidate()
}

func (g *ConceptGraph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}
