package entity

import "github.com/opd-ai/go-canvas/pkg/physics"

// Group is an ordered set of entities moved and tested together.
// Membership is by identity; a Group does not register its members.
type Group struct {
	items []*Entity
}

// NewGroup creates a group holding the given entities
func NewGroup(entities ...*Entity) *Group {
	g := &Group{}
	for _, e := range entities {
		g.Add(e)
	}
	return g
}

// Add appends e unless it is already a member
func (g *Group) Add(e *Entity) {
	if e == nil || g.Contains(e) {
		return
	}
	g.items = append(g.items, e)
}

// Remove drops e from the group
func (g *Group) Remove(e *Entity) {
	for i, item := range g.items {
		if item == e {
			g.items = append(g.items[:i:i], g.items[i+1:]...)
			return
		}
	}
}

// Contains reports membership
func (g *Group) Contains(e *Entity) bool {
	for _, item := range g.items {
		if item == e {
			return true
		}
	}
	return false
}

// Items returns a copy of the members
func (g *Group) Items() []*Entity {
	out := make([]*Entity, len(g.items))
	copy(out, g.items)
	return out
}

// Len returns the number of members
func (g *Group) Len() int {
	return len(g.items)
}

// Translate moves every member by v
func (g *Group) Translate(v physics.Vector2D) {
	for _, item := range g.items {
		item.Translate(v)
	}
}

// MoveTowards moves every member toward target
func (g *Group) MoveTowards(target physics.Vector2D, step float64) {
	for _, item := range g.items {
		item.MoveTowards(target, step)
	}
}

// IsIntersecting reports whether any member intersects target
func (g *Group) IsIntersecting(target *Entity) bool {
	for _, item := range g.items {
		if item.IsIntersecting(target) {
			return true
		}
	}
	return false
}

// GetIntersections returns the members that intersect target
func (g *Group) GetIntersections(target *Entity) []*Entity {
	var hits []*Entity
	for _, item := range g.items {
		if item.IsIntersecting(target) {
			hits = append(hits, item)
		}
	}
	return hits
}
