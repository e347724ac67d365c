package entity

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-canvas/pkg/physics"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(New("player", "Hero")))
	assert.Equal(t, 1, r.Len())

	e, ok := r.Find("player")
	require.True(t, ok)
	assert.Equal(t, []string{"Hero"}, e.Tags, "tags are kept as given")

	err := r.Register(New("player"))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, r.Len())

	assert.ErrorIs(t, r.Register(nil), ErrNilEntity)
	assert.Error(t, r.Register(New("")))
	assert.Error(t, r.Register(New("two words")))
	assert.Error(t, r.Register(New("ok", "")))
}

func TestRegistry_RegisterTrimsName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("  wall  ")))

	_, ok := r.Find("wall")
	assert.True(t, ok)
	assert.ErrorIs(t, r.Register(New("wall")), ErrDuplicateName)
}

func TestRegistry_Spawn(t *testing.T) {
	r := NewRegistry()

	a, err := r.Spawn("enemy")
	require.NoError(t, err)
	b, err := r.Spawn("enemy")
	require.NoError(t, err)

	assert.NotEqual(t, a.Name, b.Name)
	_, err = uuid.Parse(a.Name)
	assert.NoError(t, err, "spawned names are uuids")
	assert.Len(t, r.FindAllTagged("enemy"), 2)
}

func TestRegistry_FindAllTagged(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("a", "wall")))
	require.NoError(t, r.Register(New("b", "enemy")))
	require.NoError(t, r.Register(New("c", "wall", "static")))

	walls := r.FindAllTagged("wall")
	require.Len(t, walls, 2)
	assert.Equal(t, "a", walls[0].Name)
	assert.Equal(t, "c", walls[1].Name)
	assert.Empty(t, r.FindAllTagged("missing"))
}

func TestRegistry_TagsMatchExactly(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("hero", "Player")))
	require.NoError(t, r.Register(New("npc", "main character", "player")))

	hero, _ := r.Find("hero")
	npc, _ := r.Find("npc")
	assert.Equal(t, []*Entity{hero}, r.FindAllTagged("Player"))
	assert.Equal(t, []*Entity{npc}, r.FindAllTagged("player"))
	assert.Equal(t, []*Entity{npc}, r.FindAllTagged("main character"))
	assert.True(t, hero.HasTag("Player"))
	assert.False(t, hero.HasTag("player"))

	hero.AttachCollider(mustCircle(t, 1))
	npc.AttachCollider(mustCircle(t, 1))
	assert.Equal(t, []*Entity{npc}, r.CollisionsByTag(hero, "main character"))
	assert.Empty(t, r.CollisionsByTag(npc, "player"))
}

func TestRegistry_Destroy(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.Register(New(name)))
	}

	assert.True(t, r.Destroy("b"))
	assert.False(t, r.Destroy("b"))
	assert.False(t, r.Destroy("missing"))

	names := make([]string, 0, r.Len())
	for _, e := range r.List() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)

	// a destroyed name can be reused
	assert.NoError(t, r.Register(New("b")))
}

func TestRegistry_Wipe(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("a")))
	require.NoError(t, r.Register(New("b")))

	r.Wipe()

	assert.Zero(t, r.Len())
	_, ok := r.Find("a")
	assert.False(t, ok)
	assert.NoError(t, r.Register(New("a")))
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("a")))

	list := r.List()
	list[0] = nil

	e, ok := r.Find("a")
	require.True(t, ok)
	assert.Same(t, e, r.List()[0])
}

func circleAt(t *testing.T, name string, x, y, radius float64, tags ...string) *Entity {
	t.Helper()
	c, err := physics.NewCircleCollider(radius)
	require.NoError(t, err)
	e := New(name, tags...)
	e.SetPosition(physics.Vector2D{X: x, Y: y})
	e.AttachCollider(c)
	return e
}

func TestRegistry_CollisionQueries(t *testing.T) {
	r := NewRegistry()
	player := circleAt(t, "player", 0, 0, 5, "player")
	wall := circleAt(t, "wall", 8, 0, 5, "wall")
	coin := circleAt(t, "coin", 0, 6, 2, "pickup")
	far := circleAt(t, "far", 100, 100, 1, "wall")
	ghost := New("ghost", "wall")
	for _, e := range []*Entity{player, wall, coin, far, ghost} {
		require.NoError(t, r.Register(e))
	}

	assert.Equal(t, []*Entity{wall}, r.CollisionsByTag(player, "wall"))
	assert.ElementsMatch(t, []*Entity{wall, coin}, r.CollisionsByTag(player, "wall", "pickup"))
	assert.Empty(t, r.CollisionsByTag(player, "player"), "self is excluded")
	assert.ElementsMatch(t, []*Entity{wall, coin}, r.Collisions(player))

	hit, err := r.Collides("player", "wall")
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = r.Collides("player", "far")
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = r.Collides("player", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Pairs(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(circleAt(t, "c", 0, 0, 5)))
	require.NoError(t, r.Register(circleAt(t, "a", 8, 0, 5)))
	require.NoError(t, r.Register(circleAt(t, "b", 16, 0, 5)))
	require.NoError(t, r.Register(circleAt(t, "z", 500, 0, 5)))
	require.NoError(t, r.Register(New("bare")))

	pairs, err := r.Pairs(context.Background(), 4)
	require.NoError(t, err)

	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		assert.Less(t, p.A.Name, p.B.Name)
		keys = append(keys, p.A.Name+"-"+p.B.Name)
	}
	assert.Equal(t, []string{"a-b", "a-c"}, keys)
}

func TestRegistry_PairsMatchesSequentialScan(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 60; i++ {
		x := float64(i%10) * 3
		y := float64(i/10) * 3
		require.NoError(t, r.Register(circleAt(t, fmt.Sprintf("e%02d", i), x, y, 2)))
	}

	serial, err := r.Pairs(context.Background(), 1)
	require.NoError(t, err)
	parallel, err := r.Pairs(context.Background(), 8)
	require.NoError(t, err)

	require.Equal(t, len(serial), len(parallel))
	for i := range serial {
		assert.Equal(t, serial[i].Key(), parallel[i].Key())
	}

	list := r.List()
	expected := 0
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			if list[i].IsIntersecting(list[j]) {
				expected++
			}
		}
	}
	assert.Equal(t, expected, len(serial))
}

func TestRegistry_PairsHonorsCancellation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(circleAt(t, "a", 0, 0, 5)))
	require.NoError(t, r.Register(circleAt(t, "b", 1, 0, 5)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Pairs(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Spawn("swarm")
			assert.NoError(t, err)
			_ = r.FindAllTagged("swarm")
			_ = r.Len()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.Len())
}

func TestNewPair_OrdersByName(t *testing.T) {
	a, b := New("alpha"), New("beta")
	p := NewPair(b, a)
	assert.Same(t, a, p.A)
	assert.Same(t, b, p.B)
	assert.Equal(t, "alpha\x00beta", p.Key())
}
