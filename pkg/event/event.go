// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	EntityRegistered Type = "entity_registered"
	EntityDestroyed  Type = "entity_destroyed"
	CollisionStarted Type = "collision_started"
	CollisionEnded   Type = "collision_ended"
	EngineStarted    Type = "engine_started"
	EngineStopped    Type = "engine_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies one Subscribe call
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler and is
// safe to call more than once.
type Subscription struct {
	ID     SubscriptionID
	Type   Type
	Cancel func()
}

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			once.Do(func() { b.Unsubscribe(eventType, id) })
		},
	}
}

// Unsubscribe removes the subscription with the given id. It reports whether
// anything was removed.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// copy so a Publish iterating the old slice is unaffected
		kept := make([]subscription, 0, len(subs)-1)
		kept = append(kept, subs[:i]...)
		kept = append(kept, subs[i+1:]...)
		if len(kept) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = kept
		}
		return true
	}
	return false
}

// HandlerCount returns the number of handlers subscribed to eventType
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// EntityEvent reports a registry change
type EntityEvent struct {
	BaseEvent
	Name string
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, name string) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Name: name,
	}
}

// CollisionEvent reports that a pair of entities started or stopped
// intersecting. EntityA sorts before EntityB. Contact is set only for
// circle pairs that started colliding.
type CollisionEvent struct {
	BaseEvent
	EntityA string
	EntityB string
	Contact *physics.Contact
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(eventType Type, source interface{}, entityA, entityB string) *CollisionEvent {
	if entityB < entityA {
		entityA, entityB = entityB, entityA
	}
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityA: entityA,
		EntityB: entityB,
	}
}

// EngineEvent reports engine lifecycle changes
type EngineEvent struct {
	BaseEvent
	Frame uint64
}

// NewEngineEvent creates a new engine event
func NewEngineEvent(eventType Type, source interface{}, frame uint64) *EngineEvent {
	return &EngineEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Frame: frame,
	}
}
