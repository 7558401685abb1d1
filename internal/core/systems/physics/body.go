package physics

import "github.com/zeusync/collision/pkg/collision"

var _ Collider = (*Body)(nil)

// Body is a polygon placed in the world by a transform.
type Body struct {
	id        string
	local     *collision.Model
	transform collision.Affine
	shape     *collision.Model
}

// NewBody builds the local model from vertices and places it with t.
func NewBody(id string, vertices []collision.Vertex, t collision.Affine) (*Body, error) {
	local, err := collision.Build(vertices)
	if err != nil {
		return nil, err
	}

	shape, err := collision.Transform(local, t)
	if err != nil {
		return nil, err
	}

	return &Body{
		id:        id,
		local:     local,
		transform: t,
		shape:     shape,
	}, nil
}

func (b *Body) ID() string { return b.id }

func (b *Body) Shape() *collision.Model { return b.shape }

// Local returns the model before the body transform is applied.
func (b *Body) Local() *collision.Model { return b.local }

func (b *Body) Transform() collision.Affine { return b.transform }

// Moved returns a copy of the body with t applied after its current transform.
func (b *Body) Moved(t collision.Affine) (*Body, error) {
	combined := b.transform.Then(t)
	shape, err := collision.Transform(b.local, combined)
	if err != nil {
		return nil, err
	}
	return &Body{id: b.id, local: b.local, transform: combined, shape: shape}, nil
}
