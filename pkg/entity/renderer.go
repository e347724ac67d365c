package entity

// Renderer draws entities for debugging. Frames are built by Clear, one
// RenderEntity call per entity, then Present.
type Renderer interface {
	Clear()
	RenderEntity(e *Entity)
	Present() error
}

// RenderFrame draws one frame of entities in order
func RenderFrame(r Renderer, entities []*Entity) error {
	r.Clear()
	for _, e := range entities {
		r.RenderEntity(e)
	}
	return r.Present()
}
