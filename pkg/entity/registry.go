package entity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-canvas/pkg/validation"
)

var (
	// ErrDuplicateName is returned when registering a name that is taken
	ErrDuplicateName = errors.New("entity name already registered")
	// ErrNotFound is returned when a named entity does not exist
	ErrNotFound = errors.New("entity not found")
	// ErrNilEntity is returned when registering a nil entity
	ErrNilEntity = errors.New("nil entity")
)

// Pair is an unordered pair of intersecting entities, A.Name < B.Name
type Pair struct {
	A, B *Entity
}

// Key returns a stable identifier for the pair
func (p Pair) Key() string {
	return p.A.Name + "\x00" + p.B.Name
}

// Registry holds the live entities of one world in registration order
type Registry struct {
	mu     sync.RWMutex
	list   []*Entity
	byName map[string]*Entity
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Entity)}
}

// Register adds e. The name is trimmed and validated and tags are normalized.
func (r *Registry) Register(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	name, err := validation.ValidateEntityName(e.Name)
	if err != nil {
		return fmt.Errorf("register entity: %w", err)
	}
	tags, err := validation.ValidateTags(e.Tags)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("can not register %q: %w", name, ErrDuplicateName)
	}
	e.Name = name
	e.Tags = tags
	r.list = append(r.list, e)
	r.byName[name] = e
	return nil
}

// Spawn creates, registers and returns an entity with a random unique name
func (r *Registry) Spawn(tags ...string) (*Entity, error) {
	e := New(uuid.NewString(), tags...)
	if err := r.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Find returns the entity registered under name
func (r *Registry) Find(name string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return e, ok
}

// FindAllTagged returns every entity carrying tag, in registration order
func (r *Registry) FindAllTagged(tag string) []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*Entity
	for _, e := range r.list {
		if e.HasTag(tag) {
			found = append(found, e)
		}
	}
	return found
}

// Destroy removes the named entity and reports whether it existed
func (r *Registry) Destroy(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	for i, item := range r.list {
		if item == e {
			r.list = append(r.list[:i:i], r.list[i+1:]...)
			break
		}
	}
	return true
}

// Wipe removes every entity
func (r *Registry) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = nil
	r.byName = make(map[string]*Entity)
}

// List returns a copy of the entities in registration order
func (r *Registry) List() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entity, len(r.list))
	copy(out, r.list)
	return out
}

// Len returns the number of registered entities
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}

// CollisionsByTag returns the entities carrying any of tags that intersect self
func (r *Registry) CollisionsByTag(self *Entity, tags ...string) []*Entity {
	var hits []*Entity
	for _, e := range r.List() {
		if e == self || !hasAnyTag(e, tags) {
			continue
		}
		if self.IsIntersecting(e) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Collisions returns every other entity that intersects self
func (r *Registry) Collisions(self *Entity) []*Entity {
	var hits []*Entity
	for _, e := range r.List() {
		if e != self && self.IsIntersecting(e) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Collides reports whether the two named entities intersect
func (r *Registry) Collides(a, b string) (bool, error) {
	ea, ok := r.Find(a)
	if !ok {
		return false, fmt.Errorf("%q: %w", a, ErrNotFound)
	}
	eb, ok := r.Find(b)
	if !ok {
		return false, fmt.Errorf("%q: %w", b, ErrNotFound)
	}
	return ea.IsIntersecting(eb), nil
}

// Pairs returns every intersecting pair, sorted by name. Rows of the pair
// matrix are scanned by up to workers goroutines; workers < 1 means one.
func (r *Registry) Pairs(ctx context.Context, workers int) ([]Pair, error) {
	list := r.List()
	if workers < 1 {
		workers = 1
	}

	rows := make([][]Pair, len(list))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range list {
		if list[i].Collider() == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := list[i]
			for _, b := range list[i+1:] {
				if a.IsIntersecting(b) {
					rows[i] = append(rows[i], NewPair(a, b))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan pairs: %w", err)
	}

	var pairs []Pair
	for _, row := range rows {
		pairs = append(pairs, row...)
	}
	SortPairs(pairs)
	return pairs, nil
}

// NewPair orders a and b by name
func NewPair(a, b *Entity) Pair {
	if b.Name < a.Name {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// SortPairs sorts by A's name, then B's
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A.Name != pairs[j].A.Name {
			return pairs[i].A.Name < pairs[j].A.Name
		}
		return pairs[i].B.Name < pairs[j].B.Name
	})
}

func hasAnyTag(e *Entity, tags []string) bool {
	for _, tag := range tags {
		if e.HasTag(tag) {
			return true
		}
	}
	return false
}
