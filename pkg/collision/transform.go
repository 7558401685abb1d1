package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const rigidTolerance = 1e-9

// Affine is a 2D affine transform in the 6-parameter form
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// stored as a homogeneous 3x3 matrix.
type Affine struct {
	m mgl64.Mat3
}

// NewAffine builds a transform from its linear part (a, b, c, d) and translation.
func NewAffine(a, b, c, d, tx, ty float64) Affine {
	// mgl64 matrices are column-major.
	return Affine{m: mgl64.Mat3{
		a, b, 0,
		c, d, 0,
		tx, ty, 1,
	}}
}

func Identity() Affine { return Affine{m: mgl64.Ident3()} }

func Translation(tx, ty float64) Affine { return Affine{m: mgl64.Translate2D(tx, ty)} }

// Rotation rotates counter-clockwise by angle radians around the origin.
func Rotation(angle float64) Affine { return Affine{m: mgl64.HomogRotate2D(angle)} }

func Scaling(sx, sy float64) Affine { return Affine{m: mgl64.Scale2D(sx, sy)} }

// Then returns the transform that applies t first and next second.
func (t Affine) Then(next Affine) Affine {
	return Affine{m: next.m.Mul3(t.m)}
}

// Apply transforms a single vertex.
func (t Affine) Apply(v Vertex) Vertex {
	return t.m.Mul3x1(v.Vec3(1)).Vec2()
}

// Params returns the six matrix parameters in (a, b, c, d, tx, ty) order.
func (t Affine) Params() [6]float64 {
	return [6]float64{t.m[0], t.m[1], t.m[3], t.m[4], t.m[6], t.m[7]}
}

// IsRigid reports whether t is a rotation plus translation. Transform
// recomputes normals from the transformed edges and applies no correction
// for any other linear part; a reflection flips the winding and leaves every
// normal pointing inward.
func (t Affine) IsRigid() bool {
	col0 := mgl64.Vec2{t.m[0], t.m[1]}
	col1 := mgl64.Vec2{t.m[3], t.m[4]}
	return math.Abs(col0.Len()-1) <= rigidTolerance &&
		math.Abs(col1.Len()-1) <= rigidTolerance &&
		math.Abs(col0.Dot(col1)) <= rigidTolerance &&
		col0.X()*col1.Y()-col1.X()*col0.Y() > 0
}

// Transform applies t to every vertex of m and returns a new Model with
// normals and bounds recomputed from the result. m is not modified.
func Transform(m *Model, t Affine) (*Model, error) {
	vertices := make([]Vertex, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = t.Apply(v)
	}
	return newModel(vertices)
}
