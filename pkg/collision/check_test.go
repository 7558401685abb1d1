package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scenario struct {
	target, near, far, nearTarget, farTarget *Model
}

func newScenario(t *testing.T) scenario {
	t.Helper()
	target := mustModel(t, diamond())
	return scenario{
		target:     target,
		near:       mustModel(t, []Vertex{{1, 3}, {1, -3}, {4, -3}, {4, 3}}),
		far:        mustModel(t, []Vertex{{3, 3}, {3, -3}, {6, -3}, {6, 3}}),
		nearTarget: mustTransform(t, target, Translation(-1, -5)),
		farTarget:  mustTransform(t, target, Translation(3, 4)),
	}
}

func assertContact(t *testing.T, expected, actual Contact) {
	t.Helper()
	assert.InDelta(t, expected.Depth, actual.Depth, tolerance, "depth")
	assert.InDelta(t, expected.Normal.X(), actual.Normal.X(), tolerance, "normal x")
	assert.InDelta(t, expected.Normal.Y(), actual.Normal.Y(), tolerance, "normal y")
}

func TestCheckScenarios(t *testing.T) {
	s := newScenario(t)
	sqrt29 := math.Sqrt(29)

	t.Run("near overlaps target", func(t *testing.T) {
		contact, ok := Check(s.target, s.near)
		require.True(t, ok)
		// The box's left edge at x=1 is the shallowest axis: the diamond's
		// right corner at x=2 lies 1 unit behind it.
		assertContact(t, Contact{Depth: 1, Normal: mgl64.Vec2{1, 0}}, contact)
	})

	t.Run("far is rejected by bounding boxes", func(t *testing.T) {
		assert.False(t, Overlaps(s.target, s.far))
		contact, ok := Check(s.target, s.far)
		assert.False(t, ok)
		assert.Equal(t, Contact{}, contact)
	})

	t.Run("near target needs edge tests", func(t *testing.T) {
		require.True(t, Overlaps(s.target, s.nearTarget))
		contact, ok := Check(s.target, s.nearTarget)
		require.True(t, ok)
		assertContact(t, Contact{Depth: 5 / sqrt29, Normal: mgl64.Vec2{-5 / sqrt29, -2 / sqrt29}}, contact)
	})

	t.Run("far target is separated by an edge", func(t *testing.T) {
		require.True(t, Overlaps(s.target, s.farTarget))
		contact, ok := Check(s.target, s.farTarget)
		assert.False(t, ok)
		assert.Equal(t, Contact{}, contact)
	})
}

func TestCheckAntiSymmetric(t *testing.T) {
	s := newScenario(t)

	pairs := map[string][2]*Model{
		"target/near":       {s.target, s.near},
		"near/target":       {s.near, s.target},
		"target/rotated":    {s.target, mustTransform(t, s.near, Rotation(0.3))},
		"hexagon/triangle":  {mustModel(t, regularPolygon(6, 2)), mustModel(t, []Vertex{{1, -1}, {4, 0}, {1.5, 2}})},
		"target/far":        {s.target, s.far},
		"target/farTarget":  {s.target, s.farTarget},
		"nearTarget/target": {s.nearTarget, s.target},
	}

	for name, pair := range pairs {
		t.Run(name, func(t *testing.T) {
			ab, okAB := Check(pair[0], pair[1])
			ba, okBA := Check(pair[1], pair[0])
			require.Equal(t, okAB, okBA)
			if !okAB {
				return
			}
			assert.InDelta(t, ab.Depth, ba.Depth, tolerance)
			// Equal depths on both polygons may resolve to different axes, so
			// only the strictly ordered cases are compared normal for normal.
			if ab.Normal.Dot(ba.Normal) < 0 {
				assert.InDelta(t, ab.Normal.X(), -ba.Normal.X(), tolerance)
				assert.InDelta(t, ab.Normal.Y(), -ba.Normal.Y(), tolerance)
			}
		})
	}

	// A strict case where the normals must mirror exactly.
	ab, ok := Check(s.target, s.near)
	require.True(t, ok)
	ba, ok := Check(s.near, s.target)
	require.True(t, ok)
	assertContact(t, Contact{Depth: ab.Depth, Normal: ab.Normal.Mul(-1)}, ba)
}

func TestCheckTranslationInvariant(t *testing.T) {
	s := newScenario(t)
	shift := Translation(12.5, -7.25)

	pairs := map[string][2]*Model{
		"near":       {s.target, s.near},
		"nearTarget": {s.target, s.nearTarget},
		"farTarget":  {s.target, s.farTarget},
		"far":        {s.target, s.far},
	}

	for name, pair := range pairs {
		t.Run(name, func(t *testing.T) {
			before, okBefore := Check(pair[0], pair[1])

			first, err := Transform(pair[0], shift)
			require.NoError(t, err)
			second, err := Transform(pair[1], shift)
			require.NoError(t, err)
			after, okAfter := Check(first, second)

			require.Equal(t, okBefore, okAfter)
			if okBefore {
				assert.InDelta(t, before.Depth, after.Depth, 1e-6)
				assert.InDelta(t, before.Normal.X(), after.Normal.X(), 1e-6)
				assert.InDelta(t, before.Normal.Y(), after.Normal.Y(), 1e-6)
			}
		})
	}
}

func TestCheckBroadPhaseSkipsEdges(t *testing.T) {
	// Models without normals would panic in the narrow phase.
	first := &Model{
		vertices: diamond(),
		bounds:   BoundingBox{Min: mgl64.Vec2{-2, -5}, Max: mgl64.Vec2{2, 5}},
	}
	second := &Model{
		vertices: diamond(),
		bounds:   BoundingBox{Min: mgl64.Vec2{2.5, -5}, Max: mgl64.Vec2{6.5, 5}},
	}

	assert.NotPanics(t, func() {
		_, ok := Check(first, second)
		assert.False(t, ok)
	})
}

func TestCheckTieFavorsFirst(t *testing.T) {
	// Two 2x2 squares offset diagonally by (1, 1).
	a := mustModel(t, []Vertex{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	b := mustModel(t, []Vertex{{1, 1}, {3, 1}, {3, 3}, {1, 3}})

	contact, ok := Check(a, b)
	require.True(t, ok)
	// a's right edge (normal (1,0)) has depth 1, tying with b's bottom edge
	// (normal (0,-1)); a's axis is kept.
	assertContact(t, Contact{Depth: 1, Normal: mgl64.Vec2{1, 0}}, contact)
}

func TestCheckContainment(t *testing.T) {
	outer := mustModel(t, regularPolygon(8, 10))
	inner := mustModel(t, []Vertex{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}})

	contact, ok := Check(outer, inner)
	require.True(t, ok)
	assert.Greater(t, contact.Depth, 0.0)
	assert.InDelta(t, 1, contact.Normal.Len(), tolerance)
}

func TestCheckTouchingEdgesDoNotCollide(t *testing.T) {
	a := mustModel(t, []Vertex{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	b := mustModel(t, []Vertex{{1, 0}, {2, 0}, {2, 1}, {1, 1}})

	require.True(t, Overlaps(a, b))
	_, ok := Check(a, b)
	assert.False(t, ok)
}

func TestContactVector(t *testing.T) {
	c := Contact{Depth: 2.5, Normal: mgl64.Vec2{0, -1}}
	assert.Equal(t, mgl64.Vec2{0, -2.5}, c.Vector())
}

func mustModel(t *testing.T, vertices []Vertex) *Model {
	t.Helper()
	m, err := Build(vertices)
	require.NoError(t, err)
	return m
}

func mustTransform(t *testing.T, m *Model, affine Affine) *Model {
	t.Helper()
	out, err := Transform(m, affine)
	require.NoError(t, err)
	return out
}

func BenchmarkCheck(b *testing.B) {
	first, _ := Build(regularPolygon(16, 3))
	second, _ := Build(regularPolygon(16, 2))
	second, _ = Transform(second, Translation(3, 1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Check(first, second)
	}
}
