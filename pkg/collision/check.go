package collision

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/collision/pkg/sequence"
)

// Contact describes the overlap of two models along their axis of least
// penetration. Normal is a unit vector pointing from the first model toward
// the second; Depth is strictly positive.
type Contact struct {
	Depth  float64
	Normal mgl64.Vec2
}

// Vector returns the full separation vector, Normal scaled by Depth.
func (c Contact) Vector() mgl64.Vec2 {
	return c.Normal.Mul(c.Depth)
}

// axis is one edge normal of a polygon with the penetration measured against it.
type axis struct {
	depth  float64
	normal mgl64.Vec2
}

// Overlaps is the broad phase of Check: it compares bounding boxes only.
func Overlaps(first, second *Model) bool {
	return first.bounds.Overlaps(second.bounds)
}

// Check reports whether first and second overlap. When they do, the returned
// Contact holds the minimum penetration and ok is true; otherwise the Contact
// is the zero value and ok is false.
func Check(first, second *Model) (contact Contact, ok bool) {
	if !Overlaps(first, second) {
		return Contact{}, false
	}

	firstAxis, ok := bestAxis(first, second)
	if !ok {
		return Contact{}, false
	}
	secondAxis, ok := bestAxis(second, first)
	if !ok {
		return Contact{}, false
	}

	if secondAxis.depth < firstAxis.depth {
		return Contact{Depth: secondAxis.depth, Normal: secondAxis.normal.Mul(-1)}, true
	}
	return Contact{Depth: firstAxis.depth, Normal: firstAxis.normal}, true
}

// bestAxis returns the edge normal of p along which other penetrates the
// least. It returns false as soon as an edge of p separates the two.
func bestAxis(p, other *Model) (axis, bool) {
	best := axis{depth: math.Inf(1)}
	_, separated := sequence.FromSeq(edgeAxes(p, other)).Find(func(a axis) bool {
		if a.depth == 0 {
			return true
		}
		if a.depth < best.depth {
			best = a
		}
		return false
	})
	return best, !separated
}

// edgeAxes lazily measures other against each edge of p in vertex order.
func edgeAxes(p, other *Model) iter.Seq[axis] {
	return func(yield func(axis) bool) {
		for i, v := range p.vertices {
			n := p.normals[i]
			if !yield(axis{depth: penetration(v, n, other), normal: n}) {
				return
			}
		}
	}
}

// penetration is how far the deepest vertex of other lies behind the edge
// through v with outward normal n, or 0 if none does.
func penetration(v Vertex, n mgl64.Vec2, other *Model) float64 {
	depth := 0.0
	for _, target := range other.vertices {
		projected := n.Dot(target.Sub(v))
		if projected < 0 {
			depth = math.Max(depth, -projected)
		}
	}
	return depth
}
