// Package collision detects overlap between convex 2D polygons with the
// separating axis theorem and reports the minimum translation that separates them.
package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinVertices is the smallest polygon Build accepts.
const MinVertices = 3

// Vertex is a point in the plane.
type Vertex = mgl64.Vec2

// BoundingBox is an axis-aligned box over a set of vertices.
type BoundingBox struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// Overlaps reports whether the two boxes share at least one point.
// Boxes that only touch along an edge or corner overlap.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	if b.Max.X() < other.Min.X() || other.Max.X() < b.Min.X() {
		return false
	}
	if b.Max.Y() < other.Min.Y() || other.Max.Y() < b.Min.Y() {
		return false
	}
	return true
}

// Contains reports whether v lies inside or on the border of the box.
func (b BoundingBox) Contains(v Vertex) bool {
	return v.X() >= b.Min.X() && v.X() <= b.Max.X() &&
		v.Y() >= b.Min.Y() && v.Y() <= b.Max.Y()
}

// Model is an immutable collidable polygon. normals[i] is the outward unit
// normal of the edge from vertices[i] to vertices[(i+1)%n].
type Model struct {
	vertices []Vertex
	normals  []mgl64.Vec2
	bounds   BoundingBox
}

// Build creates a Model from vertices given in counter-clockwise order.
// The slice is copied, so the caller may reuse it.
func Build(vertices []Vertex) (*Model, error) {
	owned := make([]Vertex, len(vertices))
	copy(owned, vertices)
	return newModel(owned)
}

// newModel takes ownership of vertices.
func newModel(vertices []Vertex) (*Model, error) {
	if len(vertices) < MinVertices {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewVertices, len(vertices))
	}
	for i, v := range vertices {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: vertex %d is %v", ErrNonFiniteVertex, i, v)
		}
	}

	normals, err := calculateNormals(vertices)
	if err != nil {
		return nil, err
	}

	return &Model{
		vertices: vertices,
		normals:  normals,
		bounds:   calculateBoundingBox(vertices),
	}, nil
}

func calculateNormals(vertices []Vertex) ([]mgl64.Vec2, error) {
	normals := make([]mgl64.Vec2, len(vertices))
	for i, current := range vertices {
		next := vertices[(i+1)%len(vertices)]
		edge := next.Sub(current)
		if edge.X() == 0 && edge.Y() == 0 {
			return nil, fmt.Errorf("%w: vertices %d and %d coincide", ErrDegenerateEdge, i, (i+1)%len(vertices))
		}
		normals[i] = mgl64.Vec2{edge.Y(), -edge.X()}.Normalize()
	}
	return normals, nil
}

func calculateBoundingBox(vertices []Vertex) BoundingBox {
	box := BoundingBox{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		box.Min = mgl64.Vec2{math.Min(box.Min.X(), v.X()), math.Min(box.Min.Y(), v.Y())}
		box.Max = mgl64.Vec2{math.Max(box.Max.X(), v.X()), math.Max(box.Max.Y(), v.Y())}
	}
	return box
}

func isFinite(v Vertex) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Len returns the number of vertices (and edges).
func (m *Model) Len() int { return len(m.vertices) }

// Vertex returns the i-th vertex.
func (m *Model) Vertex(i int) Vertex { return m.vertices[i] }

// Normal returns the outward normal of edge i.
func (m *Model) Normal(i int) mgl64.Vec2 { return m.normals[i] }

// BoundingBox returns the axis-aligned bounds of the model.
func (m *Model) BoundingBox() BoundingBox { return m.bounds }

// Vertices returns a copy of the vertex list.
func (m *Model) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Normals returns a copy of the edge normals.
func (m *Model) Normals() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(m.normals))
	copy(out, m.normals)
	return out
}
