package physics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/pkg/collision"
	"github.com/zeusync/collision/pkg/concurrent"
	"github.com/zeusync/collision/pkg/sequence"
)

// Collision is an overlapping pair. Contact.Normal points from First toward Second.
type Collision struct {
	First   string
	Second  string
	Contact collision.Contact
}

// World holds bodies in insertion order and answers overlap queries.
// It is safe for concurrent use.
type World struct {
	mu      sync.RWMutex
	bodies  []*Body
	index   map[string]int
	logger  log.Log
	workers int
}

func NewWorld(logger log.Log) *World {
	return &World{
		index:  make(map[string]int),
		logger: logger,
	}
}

// SetConcurrency bounds the number of pair checks run in parallel.
// Zero or a negative value removes the bound.
func (w *World) SetConcurrency(workers int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workers = workers
}

// Add builds a body from vertices placed by t.
func (w *World) Add(id string, vertices []collision.Vertex, t collision.Affine) (*Body, error) {
	body, err := NewBody(id, vertices, t)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", id, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.index[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBody, id)
	}
	w.index[id] = len(w.bodies)
	w.bodies = append(w.bodies, body)

	if !t.IsRigid() {
		w.logger.Warn("Body transform is not rigid, normals are recomputed from distorted edges",
			log.String("body", id),
			log.Any("transform", t.Params()),
		)
	}
	w.logger.Debug("Body added", log.String("body", id), log.Int("vertices", len(vertices)))

	return body, nil
}

// Move applies t on top of the current transform of the body.
func (w *World) Move(id string, t collision.Affine) (*Body, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, exists := w.index[id]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrBodyNotFound, id)
	}

	moved, err := w.bodies[idx].Moved(t)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", id, err)
	}
	w.bodies[idx] = moved
	return moved, nil
}

func (w *World) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, exists := w.index[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrBodyNotFound, id)
	}

	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	delete(w.index, id)
	for i := idx; i < len(w.bodies); i++ {
		w.index[w.bodies[i].ID()] = i
	}
	return nil
}

func (w *World) Body(id string) (*Body, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	idx, exists := w.index[id]
	if !exists {
		return nil, false
	}
	return w.bodies[idx], true
}

// Bodies returns a snapshot in insertion order.
func (w *World) Bodies() []*Body {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// Collisions checks every pair of bodies. Pairs are reported in insertion
// order, and within a pair the earlier body is First.
func (w *World) Collisions(ctx context.Context) ([]Collision, error) {
	bodies := w.Bodies()
	colliders := make([]Collider, len(bodies))
	for i, b := range bodies {
		colliders[i] = b
	}

	started := time.Now()
	found, err := w.check(ctx, sequence.Pairs(colliders))
	if err != nil {
		return nil, err
	}

	w.logger.Debug("Collision pass finished",
		log.Int("bodies", len(bodies)),
		log.Int("collisions", len(found)),
		log.Duration("took", time.Since(started)),
	)
	return found, nil
}

// Query reports the bodies that probe overlaps, in insertion order, with the
// probe as First. A body sharing the probe's id is skipped.
func (w *World) Query(ctx context.Context, probe Collider) ([]Collision, error) {
	pairs := sequence.Map(sequence.From(w.Bodies()).Filter(func(b *Body) bool {
		return b.ID() != probe.ID()
	}), func(b *Body) sequence.Pair[Collider] {
		return sequence.Pair[Collider]{First: probe, Second: b}
	})
	return w.check(ctx, pairs)
}

type pairResult struct {
	collision Collision
	collided  bool
}

func (w *World) check(ctx context.Context, pairs *sequence.Iterator[sequence.Pair[Collider]]) ([]Collision, error) {
	w.mu.RLock()
	workers := w.workers
	w.mu.RUnlock()

	results, err := concurrent.Map(ctx, pairs, workers, func(ctx context.Context, p sequence.Pair[Collider]) (pairResult, error) {
		if err := ctx.Err(); err != nil {
			return pairResult{}, err
		}
		contact, ok := collision.Check(p.First.Shape(), p.Second.Shape())
		return pairResult{
			collision: Collision{First: p.First.ID(), Second: p.Second.ID(), Contact: contact},
			collided:  ok,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	found := make([]Collision, 0)
	for _, r := range results {
		if r.collided {
			found = append(found, r.collision)
		}
	}
	return found, nil
}
