package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingConvex wraps a leaf class and counts support calls.
type countingConvex struct {
	Convex
	calls *int
}

func (c countingConvex) Support(n Vector) Vector {
	*c.calls++
	return c.Convex.Support(n)
}

func leafParts(t *testing.T) (*Compound, []Convex) {
	t.Helper()
	compound := twoBoxCompound(t)
	return compound, compound.Parts()
}

func TestDispatch_CompoundMatchesParts(t *testing.T) {
	s := newSolver(DefaultConfig(), nil)
	compound, parts := leafParts(t)
	mover := NewBoxClass(0.5, 0.5, 0)
	tc := NewTransformRigid(Vector{0.1, 0.2}, 0.1)

	for _, p := range []Vector{{0, 0}, {1, 0.3}, {-0.9, -0.5}, {0.6, 0.1}, {3, 0}, {1.2, 0.9}} {
		tp := NewTransformTranslate(p)

		for _, flipped := range []bool{false, true} {
			ctx := pairContext{a: mover, b: compound, ta: tp, tb: tc}
			if flipped {
				ctx = pairContext{a: compound, b: mover, ta: tc, tb: tp}
			}

			var want []PairPushout
			wantOverlap := false
			for _, part := range parts {
				leaf := ctx
				if flipped {
					leaf.a = part
				} else {
					leaf.b = part
				}
				if overlaps(leaf.a.(Convex), leaf.b.(Convex), leaf.ta, leaf.tb) {
					wantOverlap = true
				}
				want = append(want, s.pushoutPairs(leaf)...)
			}

			assert.Equal(t, wantOverlap, len(s.overlapPairs(ctx)) > 0, "at %v flipped=%v", p, flipped)
			assert.Equal(t, wantOverlap, s.anyOverlap(ctx), "at %v flipped=%v", p, flipped)

			got := s.pushoutPairs(ctx)
			require.Len(t, got, len(want), "at %v flipped=%v", p, flipped)
			for i := range want {
				assert.Equal(t, want[i].ColliderPair, got[i].ColliderPair)
				assertVectorNear(t, want[i].Vector, got[i].Vector, 1e-9)
			}
		}
	}
}

func TestDispatch_ReversedOrder(t *testing.T) {
	s := newSolver(DefaultConfig(), nil)
	compound, parts := leafParts(t)
	mover := NewBoxClass(1, 1, 0)
	ctx := pairContext{
		a: mover, b: compound,
		ta: NewTransformTranslate(Vector{1.5, 0}), tb: NewTransformIdentity(),
	}

	pairs := s.pushoutPairs(ctx)
	require.Len(t, pairs, 1)
	assert.Equal(t, ColliderPair{mover, parts[1]}, pairs[0].ColliderPair)
	// The mover sits half inside the right part and is pushed further right.
	assertVectorNear(t, Vector{0.5, 0}, pairs[0].Vector, 1e-4)
	assertVectorNear(t, Vector{1, 0}, pairs[0].Normal, 1e-9)

	sweeps := s.sweepPairs(pairContext{
		a: mover, b: compound,
		ta: NewTransformTranslate(Vector{4.5, 0}), tb: NewTransformIdentity(),
		va: Vector{-4, 0},
	})
	require.Len(t, sweeps, 1)
	assert.Equal(t, ColliderPair{mover, parts[1]}, sweeps[0].ColliderPair)
	assert.InDelta(t, 0.625, sweeps[0].Fraction[0], 1e-5)
	assertVectorNear(t, Vector{1, 0}, sweeps[0].Normal, 1e-9)
}

func TestDispatch_BoundsReject(t *testing.T) {
	s := newSolver(DefaultConfig(), nil)
	var calls int
	mover := countingConvex{NewBoxClass(1, 1, 0), &calls}
	target := NewBoxClass(1, 1, 0)

	ctx := pairContext{a: mover, b: target, ta: NewTransformIdentity(), tb: NewTransformTranslate(Vector{5, 0})}
	assert.Empty(t, s.overlapPairs(ctx))
	assert.Zero(t, calls)

	// Moving far enough brings the boxes into range, so the solvers run.
	ctx.va = Vector{5, 0}
	sweeps := s.sweepPairs(ctx)
	assert.NotZero(t, calls)
	require.Len(t, sweeps, 1)
	assert.InDelta(t, 0.8, sweeps[0].Fraction[0], 1e-5)
}

// bareClass is a class with no support function.
type bareClass struct{}

func (bareClass) BB() BB         { return NewBB(-1, -1, 1, 1) }
func (bareClass) Center() Vector { return Vector{} }
func (bareClass) shapeClass()    {}

func TestDispatch_UnknownClass(t *testing.T) {
	s := newSolver(DefaultConfig(), nil)
	box := NewBoxClass(1, 1, 0)
	identity := NewTransformIdentity()

	assert.Panics(t, func() { s.overlapPairs(pairContext{a: bareClass{}, b: box, ta: identity, tb: identity}) })
	assert.Panics(t, func() { s.overlapPairs(pairContext{a: box, b: bareClass{}, ta: identity, tb: identity}) })
}
