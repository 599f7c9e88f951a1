// pkg/physics/collision.go
package physics

import "math"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// RayCircle casts a ray from origin along dir (unit vector) and reports
// whether it hits the circle within maxRange. On a hit it returns the
// distance from origin to the first intersection. Used by hitscan weapons.
func RayCircle(origin, dir Vector2D, target Circle, maxRange float64) (float64, bool) {
	toCenter := target.Center.Sub(origin)
	proj := toCenter.Dot(dir)

	// Circle is behind the ray origin, or entirely out of reach.
	if proj < -target.Radius || proj > maxRange+target.Radius {
		return 0, false
	}

	perpSq := toCenter.LengthSquared() - proj*proj
	radSq := target.Radius * target.Radius
	if perpSq > radSq {
		return 0, false
	}

	hit := proj - math.Sqrt(radSq-perpSq)
	if hit < 0 {
		hit = 0 // origin is inside the circle
	}
	if hit > maxRange {
		return 0, false
	}
	return hit, true
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the rectangle. All four
// edges are inclusive, the same convention as InBounds, so a round sitting
// exactly on the arena boundary still indexes.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X <= r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y <= r.Center.Y+r.Height/2
}

func (r Rect) intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// QuadTree is the broad-phase spatial index for collision queries. Entities
// are inserted by position each tick; Query narrows the candidate set before
// the exact circle tests run.
type QuadTree struct {
	Boundary Rect
	Capacity int

	points  []Vector2D
	objects []any
	divided bool

	nw, ne, sw, se *QuadTree
}

// NewQuadTree creates a quad tree covering boundary, subdividing once a node
// holds more than capacity entries.
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		points:   make([]Vector2D, 0, capacity),
		objects:  make([]any, 0, capacity),
	}
}

// Insert adds an object at the given position. Positions outside the
// boundary are rejected.
func (qt *QuadTree) Insert(point Vector2D, object any) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.points) < qt.Capacity && !qt.divided {
		qt.points = append(qt.points, point)
		qt.objects = append(qt.objects, object)
		return true
	}

	if !qt.divided {
		qt.subdivide()
	}

	return qt.nw.Insert(point, object) ||
		qt.ne.Insert(point, object) ||
		qt.sw.Insert(point, object) ||
		qt.se.Insert(point, object)
}

func (qt *QuadTree) subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.nw = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.ne = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.sw = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.se = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.divided = true

	// A point on a split line is contained by more than one child; the
	// short circuit keeps it in exactly one.
	points := qt.points
	objects := qt.objects
	qt.points = nil
	qt.objects = nil
	for i, p := range points {
		_ = qt.nw.Insert(p, objects[i]) ||
			qt.ne.Insert(p, objects[i]) ||
			qt.sw.Insert(p, objects[i]) ||
			qt.se.Insert(p, objects[i])
	}
}

// Query returns all objects whose insertion point lies within area.
func (qt *QuadTree) Query(area Rect) []any {
	var found []any
	qt.query(area, &found)
	return found
}

func (qt *QuadTree) query(area Rect, found *[]any) {
	if !qt.Boundary.intersects(area) {
		return
	}

	for i, point := range qt.points {
		if area.Contains(point) {
			*found = append(*found, qt.objects[i])
		}
	}

	if !qt.divided {
		return
	}
	qt.nw.query(area, found)
	qt.ne.query(area, found)
	qt.sw.query(area, found)
	qt.se.query(area, found)
}

// Clear resets the tree for reuse on the next tick.
func (qt *QuadTree) Clear() {
	qt.points = qt.points[:0]
	qt.objects = qt.objects[:0]
	qt.divided = false
	qt.nw, qt.ne, qt.sw, qt.se = nil, nil, nil, nil
}
