// pkg/physics/quadtree.go
package physics

// AABB represents an axis-aligned rectangular area
type AABB struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the box. The right and bottom
// edges are exclusive so neighbouring quadrants never share a point.
func (r AABB) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two boxes overlap, edges included
func (r AABB) Intersects(other AABB) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// quadEntry is a bounding circle with its payload
type quadEntry struct {
	center Vector2D
	radius float64
	object any
}

// QuadTree indexes bounding circles by center for broad-phase queries.
// Entries whose center falls outside the boundary are kept in an overflow
// list on the root and returned by every query, so nothing is ever lost.
type QuadTree struct {
	Boundary  AABB
	Capacity  int
	entries   []quadEntry
	overflow  []quadEntry
	maxRadius float64
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary AABB, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		entries:  make([]quadEntry, 0, capacity),
	}
}

// Insert adds a bounding circle. It reports false when the center lies outside
// the boundary; such entries are still indexed through the overflow list.
func (qt *QuadTree) Insert(center Vector2D, radius float64, object any) bool {
	e := quadEntry{center: center, radius: radius, object: object}
	if radius > qt.maxRadius {
		qt.maxRadius = radius
	}
	if !qt.insert(e, 0) {
		qt.overflow = append(qt.overflow, e)
		return false
	}
	return true
}

// maxDepth bounds subdivision when many centers coincide
const maxDepth = 16

func (qt *QuadTree) insert(e quadEntry, depth int) bool {
	if !qt.Boundary.Contains(e.center) {
		return false
	}

	if (len(qt.entries) < qt.Capacity && !qt.Divided) || depth >= maxDepth {
		qt.entries = append(qt.entries, e)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.insert(e, depth+1) ||
		qt.NorthEast.insert(e, depth+1) ||
		qt.SouthWest.insert(e, depth+1) ||
		qt.SouthEast.insert(e, depth+1)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := AABB{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	ne := AABB{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}
	sw := AABB{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	se := AABB{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree(nw, qt.Capacity)
	qt.NorthEast = NewQuadTree(ne, qt.Capacity)
	qt.SouthWest = NewQuadTree(sw, qt.Capacity)
	qt.SouthEast = NewQuadTree(se, qt.Capacity)
	qt.Divided = true
}

// QueryCircle returns every object whose bounding circle may touch the given
// circle. Results pass the same test as CanSkipBroadPhase.
func (qt *QuadTree) QueryCircle(center Vector2D, radius float64) []any {
	found := make([]any, 0)
	reach := radius + qt.maxRadius
	area := AABB{Center: center, Width: reach * 2, Height: reach * 2}

	keep := func(e quadEntry) bool {
		r := radius + e.radius
		return center.DistanceSquared(e.center) < r*r
	}

	qt.query(area, keep, &found)
	for _, e := range qt.overflow {
		if keep(e) {
			found = append(found, e.object)
		}
	}
	return found
}

func (qt *QuadTree) query(area AABB, keep func(quadEntry) bool, found *[]any) {
	if !qt.Boundary.Intersects(area) {
		return
	}

	for _, e := range qt.entries {
		if keep(e) {
			*found = append(*found, e.object)
		}
	}

	if !qt.Divided {
		return
	}

	qt.NorthWest.query(area, keep, found)
	qt.NorthEast.query(area, keep, found)
	qt.SouthWest.query(area, keep, found)
	qt.SouthEast.query(area, keep, found)
}

// Len returns the number of indexed entries, overflow included
func (qt *QuadTree) Len() int {
	n := len(qt.entries) + len(qt.overflow)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}

// Clear empties the tree for reuse on the next frame
func (qt *QuadTree) Clear() {
	qt.entries = qt.entries[:0]
	qt.overflow = qt.overflow[:0]
	qt.maxRadius = 0
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}
