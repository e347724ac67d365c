// pkg/engine/collision_system.go
package engine

import (
	"context"
	"sort"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-canvas/pkg/config"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/event"
	"github.com/opd-ai/go-canvas/pkg/logging"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

// CollisionSystem finds the intersecting pairs of the registry every update
// and records CollisionStarted and CollisionEnded events for pairs that
// changed since the previous update. Events are queued, not published; the
// engine drains them once its lock is released so handlers may call back
// into it. A CollisionSystem is not safe for concurrent use.
type CollisionSystem struct {
	registry *entity.Registry
	logger   *logging.Logger

	mode     string
	workers  int
	contacts bool
	tree     *physics.QuadTree

	active  map[string]entity.Pair
	pending []event.Event
}

// NewCollisionSystem creates a collision system over registry. A nil logger
// discards output.
func NewCollisionSystem(registry *entity.Registry, cfg *config.Config, logger *logging.Logger) *CollisionSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &CollisionSystem{
		registry: registry,
		logger:   logger,
		mode:     cfg.BroadPhase.Mode,
		workers:  cfg.Workers,
		contacts: cfg.Contacts,
		active:   make(map[string]entity.Pair),
	}
	if s.mode == config.BroadPhaseQuadTree {
		s.tree = physics.NewQuadTree(physics.AABB{
			Width:  cfg.WorldSize,
			Height: cfg.WorldSize,
		}, cfg.BroadPhase.Capacity)
	}
	return s
}

// Priority implements ecs.Prioritizer
func (s *CollisionSystem) Priority() int {
	return collisionPriority
}

// Update scans for pairs and queues the events for whatever changed
func (s *CollisionSystem) Update(dt float32) {
	pairs, err := s.Scan(context.Background())
	if err != nil {
		s.logger.Error(context.Background(), "Collision scan failed", err, "mode", s.mode)
		return
	}
	s.apply(pairs)
}

// Remove satisfies the ecs.System interface. Active pairs involving the
// removed entity end immediately.
func (s *CollisionSystem) Remove(basic ecs.BasicEntity) {
	var ended []entity.Pair
	for key, p := range s.active {
		if p.A.ID() == basic.ID() || p.B.ID() == basic.ID() {
			ended = append(ended, p)
			delete(s.active, key)
		}
	}
	entity.SortPairs(ended)
	for _, p := range ended {
		s.queue(event.CollisionEnded, p)
	}
}

// Scan returns the intersecting pairs of the current frame sorted by name,
// using the configured broad phase. It does not change the active set.
func (s *CollisionSystem) Scan(ctx context.Context) ([]entity.Pair, error) {
	if s.tree == nil {
		return s.registry.Pairs(ctx, s.workers)
	}
	return s.quadTreePairs(ctx)
}

func (s *CollisionSystem) quadTreePairs(ctx context.Context) ([]entity.Pair, error) {
	list := s.registry.List()

	s.tree.Clear()
	for _, e := range list {
		if c := e.Collider(); c != nil {
			s.tree.Insert(e.Position(), c.BoundingRadius(), e)
		}
	}

	var pairs []entity.Pair
	for _, a := range list {
		c := a.Collider()
		if c == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, candidate := range s.tree.QueryCircle(a.Position(), c.BoundingRadius()) {
			b := candidate.(*entity.Entity)
			// each unordered pair once; names are unique
			if b.Name <= a.Name {
				continue
			}
			if a.IsIntersecting(b) {
				pairs = append(pairs, entity.NewPair(a, b))
			}
		}
	}
	entity.SortPairs(pairs)
	return pairs, nil
}

// apply diffs pairs against the active set
func (s *CollisionSystem) apply(pairs []entity.Pair) {
	next := make(map[string]entity.Pair, len(pairs))
	for _, p := range pairs {
		key := p.Key()
		next[key] = p
		if _, ok := s.active[key]; !ok {
			s.queue(event.CollisionStarted, p)
		}
	}

	ended := make([]string, 0)
	for key := range s.active {
		if _, ok := next[key]; !ok {
			ended = append(ended, key)
		}
	}
	sort.Strings(ended)
	for _, key := range ended {
		s.queue(event.CollisionEnded, s.active[key])
	}

	s.active = next
}

func (s *CollisionSystem) queue(eventType event.Type, p entity.Pair) {
	ev := event.NewCollisionEvent(eventType, s, p.A.Name, p.B.Name)
	if eventType == event.CollisionStarted && s.contacts {
		if contact, ok := physics.ContactBetween(p.A, p.B); ok {
			ev.Contact = &contact
		}
	}
	s.pending = append(s.pending, ev)
}

// drain returns and forgets the queued events
func (s *CollisionSystem) drain() []event.Event {
	out := s.pending
	s.pending = nil
	return out
}

// Active returns the pairs intersecting as of the last update, sorted by name
func (s *CollisionSystem) Active() []entity.Pair {
	pairs := make([]entity.Pair, 0, len(s.active))
	for _, p := range s.active {
		pairs = append(pairs, p)
	}
	entity.SortPairs(pairs)
	return pairs
}
