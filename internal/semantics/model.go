// Package semantics serves operation trees on demand. A Model asks a Binder
// for the bound tree of a region, lowers it once and caches the published
// tree until the host invalidates it.
package semantics

//go:generate mockgen -source=model.go -destination=binder_mock_test.go -package=semantics Binder

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/cli"
	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/lowering"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
)

// Region identifies a bound region: a file and the span of the construct
// that was bound as a unit, usually a member body. Name labels regions whose
// binder reports no span.
type Region struct {
	File string
	Name string
	Span position.Span
}

func (r Region) String() string {
	if r.Name != "" {
		return r.File + ":" + r.Name
	}
	return fmt.Sprintf("%s@%d:%d", r.File, r.Span.Start.Offset, r.Span.End.Offset)
}

func (r Region) key() string {
	return fmt.Sprintf("%s\x00%s\x00%d:%d", r.File, r.Name, r.Span.Start.Offset, r.Span.End.Offset)
}

// Binder produces the bound tree of a region.
type Binder interface {
	Bind(ctx context.Context, region Region) (bound.Node, error)
}

// Model caches one published operation tree per region. It is safe for
// concurrent use; concurrent first requests for a region bind and lower it
// once.
type Model struct {
	binder  Binder
	lowerer *lowering.Lowerer
	log     *cli.Logger

	mu         sync.RWMutex
	trees      map[Region]operations.Operation
	generation uint64
	// flights deduplicates concurrent lowerings; Reset replaces it so that
	// no later request joins a lowering started before the reset.
	flights *singleflight.Group
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger reports cache activity at debug level.
func WithLogger(l *cli.Logger) ModelOption {
	return func(m *Model) { m.log = l }
}

// WithLowerer replaces the default lowerer.
func WithLowerer(l *lowering.Lowerer) ModelOption {
	return func(m *Model) { m.lowerer = l }
}

// NewModel returns an empty model over binder.
func NewModel(binder Binder, opts ...ModelOption) *Model {
	m := &Model{
		binder:  binder,
		lowerer: lowering.New(),
		trees:   make(map[Region]operations.Operation),
		flights: new(singleflight.Group),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Operation returns the operation tree of region, binding and lowering it on
// first use.
func (m *Model) Operation(ctx context.Context, region Region) (operations.Operation, error) {
	if op, ok := m.cached(region); ok {
		m.log.Debug("operation cache hit: %s", region)
		return op, nil
	}

	m.mu.RLock()
	flights := m.flights
	m.mu.RUnlock()

	v, err, shared := flights.Do(region.key(), func() (any, error) {
		// a flight that finished between the lookup above and Do has
		// already stored the tree.
		if op, ok := m.cached(region); ok {
			return op, nil
		}

		m.mu.RLock()
		gen := m.generation
		m.mu.RUnlock()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.log.Debug("operation cache miss: %s", region)

		root, err := m.binder.Bind(ctx, region)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", region, err)
		}
		if bound.IsNil(root) {
			return nil, errors.MalformedBoundTree("region", fmt.Sprintf("binder returned no tree for %s", region))
		}
		op, err := m.lowerer.Lower(root)
		if err != nil {
			return nil, fmt.Errorf("lower %s: %w", region, err)
		}

		m.mu.Lock()
		if m.generation == gen {
			m.trees[region] = op
		}
		m.mu.Unlock()

		return op, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.log.Debug("operation request for %s joined an in-flight lowering", region)
	}
	return v.(operations.Operation), nil
}

func (m *Model) cached(region Region) (operations.Operation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	op, ok := m.trees[region]
	return op, ok
}

// Enclosing returns the innermost explicit operation of region whose syntax
// encloses span. Among operations with the same extent the outermost wins.
func (m *Model) Enclosing(ctx context.Context, region Region, span position.Span) (operations.Operation, error) {
	root, err := m.Operation(ctx, region)
	if err != nil {
		return nil, err
	}

	var best operations.Operation
	for op := range operations.DescendantsAndSelf(root) {
		s := op.Syntax().Span
		if op.IsImplicit() || !s.IsValid() || !s.Encloses(span) {
			continue
		}
		if best == nil || s.Length() < best.Syntax().Span.Length() {
			best = op
		}
	}
	return best, nil
}

// Invalidate drops the tree of region. Lowerings already in flight are not
// cached.
func (m *Model) Invalidate(region Region) {
	m.mu.Lock()
	delete(m.trees, region)
	m.generation++
	flights := m.flights
	m.mu.Unlock()
	flights.Forget(region.key())
	m.log.Debug("invalidated %s", region)
}

// InvalidateFile drops every tree of file and returns how many were cached.
func (m *Model) InvalidateFile(file string) int {
	m.mu.Lock()
	var dropped []Region
	for r := range m.trees {
		if r.File == file {
			dropped = append(dropped, r)
			delete(m.trees, r)
		}
	}
	m.generation++
	flights := m.flights
	m.mu.Unlock()

	for _, r := range dropped {
		flights.Forget(r.key())
	}
	m.log.Debug("invalidated %d regions of %s", len(dropped), file)
	return len(dropped)
}

// Reset drops every cached tree. Lowerings in flight finish for the
// callers already waiting on them but are neither cached nor shared with
// later requests.
func (m *Model) Reset() {
	m.mu.Lock()
	m.trees = make(map[Region]operations.Operation)
	m.flights = new(singleflight.Group)
	m.generation++
	m.mu.Unlock()
	m.log.Debug("operation cache reset")
}

// Len returns the number of cached trees.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trees)
}
