package physics

import "github.com/zeusync/collision/pkg/collision"

// Collider is anything that occupies a convex region of world space.
type Collider interface {
	ID() string
	// Shape returns the world-space model.
	Shape() *collision.Model
}
