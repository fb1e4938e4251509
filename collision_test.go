package collide

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlaps(a, b Convex, ta, tb Transform) bool {
	return GJK(a, b, ta, tb, DefaultConfig()).Collided
}

func TestGJK_Scenario(t *testing.T) {
	box := NewBoxClass(1, 1, 0)
	origin := NewTransformIdentity()

	assert.False(t, overlaps(box, box, origin, NewTransformTranslate(Vector{1.5, 0})))

	tb := NewTransformTranslate(Vector{0.5, 0})
	simplex := GJK(box, box, origin, tb, DefaultConfig())
	require.True(t, simplex.Collided)

	pen := EPA(box, box, origin, tb, simplex, DefaultConfig())
	assert.InDelta(t, 0.5, pen.Depth, 1e-4)
	assertVectorNear(t, Vector{-0.5, 0}, pen.Vector, 1e-4)
	assertVectorNear(t, Vector{-1, 0}, pen.Normal, 1e-9)
	assert.False(t, pen.Approximate)
}

// Axis aligned boxes overlap exactly when their intervals overlap on both axes, edges included.
func TestGJK_AxisAlignedBoxes(t *testing.T) {
	a := NewBoxClass(1, 1, 0)
	b := NewBoxClass(2, 1, 0)
	steps := []float64{-2, -1.5, -1, -0.75, -0.5, 0, 0.25, 0.5, 0.75, 1, 1.5, 2}

	for _, x := range steps {
		for _, y := range steps {
			x, y := x, y
			t.Run(fmt.Sprintf("%v,%v", x, y), func(t *testing.T) {
				want := math.Abs(x) <= 1.5 && math.Abs(y) <= 1
				ta := NewTransformIdentity()
				tb := NewTransformTranslate(Vector{x, y})

				assert.Equal(t, want, overlaps(a, b, ta, tb))
				assert.Equal(t, want, overlaps(b, a, tb, ta))
			})
		}
	}
}

func TestGJK_Circles(t *testing.T) {
	a := NewCircleClass(1, Vector{})
	b := NewCircleClass(0.5, Vector{})

	for _, tc := range []struct {
		p    Vector
		want bool
	}{
		{Vector{1.4, 0}, true},
		{Vector{1.6, 0}, false},
		{Vector{1, 1}, true},
		{Vector{1.1, 1.1}, false},
		{Vector{0, 0}, true},
	} {
		tb := NewTransformTranslate(tc.p)
		assert.Equal(t, tc.want, overlaps(a, b, NewTransformIdentity(), tb), "at %v", tc.p)
		assert.Equal(t, tc.want, overlaps(b, a, tb, NewTransformIdentity()), "reversed at %v", tc.p)
	}
}

func TestGJK_Mixed(t *testing.T) {
	box := NewBoxClass(2, 2, 0)
	seg := NewSegmentClass(Vector{-1, 0}, Vector{1, 0}, 0)
	point := NewPointClass(Vector{})
	rotated := NewTransformRigid(Vector{2.2, 0}, math.Pi/4)

	// The rotated box reaches sqrt(2) from its center.
	assert.True(t, overlaps(box, box, NewTransformIdentity(), rotated))
	assert.False(t, overlaps(box, box, NewTransformIdentity(), NewTransformRigid(Vector{2.5, 0}, math.Pi/4)))

	assert.True(t, overlaps(seg, box, NewTransformTranslate(Vector{1.5, 0.5}), NewTransformIdentity()))
	assert.False(t, overlaps(seg, box, NewTransformTranslate(Vector{0, 1.5}), NewTransformIdentity()))

	assert.True(t, overlaps(point, box, NewTransformTranslate(Vector{1, 1}), NewTransformIdentity()))
	assert.False(t, overlaps(point, box, NewTransformTranslate(Vector{1.01, 0}), NewTransformIdentity()))
}

func TestEPA_Symmetry(t *testing.T) {
	a := NewBoxClass(1, 1, 0)
	b := NewBoxClass(2, 0.5, 0)
	cfg := DefaultConfig()

	// Each offset has a single closest face, so both orders must find the same one.
	for _, p := range []Vector{{1.2, 0.1}, {0.25, 0.5}, {-1.2, 0.1}, {0.1, -0.6}} {
		ta := NewTransformIdentity()
		tb := NewTransformTranslate(p)

		ab := GJK(a, b, ta, tb, cfg)
		ba := GJK(b, a, tb, ta, cfg)
		require.True(t, ab.Collided, "at %v", p)
		require.True(t, ba.Collided, "at %v", p)

		penAB := EPA(a, b, ta, tb, ab, cfg)
		penBA := EPA(b, a, tb, ta, ba, cfg)
		assertVectorNear(t, neg(penAB.Vector), penBA.Vector, 1e-9)
	}
}

// Moving A by its pushout always leaves the pair apart.
func TestEPA_Resolves(t *testing.T) {
	cfg := DefaultConfig()
	box := NewBoxClass(1, 1, 0)
	circle := NewCircleClass(0.75, Vector{})
	capsule := NewSegmentClass(Vector{-1, 0}, Vector{1, 0}, 0.25)

	for _, tc := range []struct {
		name   string
		a, b   Convex
		ta, tb Transform
	}{
		{"boxes", box, box, NewTransformIdentity(), NewTransformTranslate(Vector{0.5, 0.2})},
		{"rotated boxes", box, box, NewTransformRigid(Vector{0.1, 0}, 0.3), NewTransformRigid(Vector{0.6, 0.4}, -0.5)},
		{"circle and box", circle, box, NewTransformTranslate(Vector{0.3, 0.9}), NewTransformIdentity()},
		{"circles", circle, circle, NewTransformIdentity(), NewTransformTranslate(Vector{0.5, -0.5})},
		{"capsule and box", capsule, box, NewTransformRigid(Vector{0, 0.6}, 0.2), NewTransformIdentity()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			simplex := GJK(tc.a, tc.b, tc.ta, tc.tb, cfg)
			require.True(t, simplex.Collided)

			pen := EPA(tc.a, tc.b, tc.ta, tc.tb, simplex, cfg)
			assert.Greater(t, pen.Depth, 0.0)

			moved := tc.ta.Translate(pen.Vector)
			assert.False(t, overlaps(tc.a, tc.b, moved, tc.tb), "still overlapping after %v", pen.Vector)
		})
	}
}

func TestEPA_Touching(t *testing.T) {
	box := NewBoxClass(1, 1, 0)
	ta := NewTransformIdentity()
	tb := NewTransformTranslate(Vector{1, 0})
	cfg := DefaultConfig()

	simplex := GJK(box, box, ta, tb, cfg)
	require.True(t, simplex.Collided)

	pen := EPA(box, box, ta, tb, simplex, cfg)
	assert.InDelta(t, 0, pen.Depth, 1e-9)
	assert.False(t, overlaps(box, box, ta.Translate(pen.Vector), tb))
}

func TestEPA_IterationLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EPAMaxIterations = 1
	circle := NewCircleClass(1, Vector{})
	ta := NewTransformIdentity()
	tb := NewTransformTranslate(Vector{0.3, 0.7})

	simplex := GJK(circle, circle, ta, tb, cfg)
	require.True(t, simplex.Collided)

	pen := EPA(circle, circle, ta, tb, simplex, cfg)
	assert.True(t, pen.Approximate)
	assert.Equal(t, 1, pen.Iterations)
	// The estimate is taken from a support point, so it still separates the pair.
	assert.False(t, overlaps(circle, circle, ta.Translate(pen.Vector), tb))
}

func TestSimplex_Distance(t *testing.T) {
	var s Simplex
	s.push(Vector{3, 4})
	assert.Equal(t, 5.0, s.Distance())

	s.push(Vector{-3, 4})
	assert.Equal(t, 4.0, s.Distance())

	s.push(Vector{0, -1})
	assert.Equal(t, 0.0, s.Distance())
}

// A circle just clear of a box corner must not overlap it, whichever way the corner faces it.
func TestGJK_NearTouch(t *testing.T) {
	box := NewBoxClass(1, 1, 0)
	circle := NewCircleClass(0.5, Vector{})
	origin := NewTransformIdentity()

	clear := NewTransformTranslate(Vector{0.9999121092341088, 0.5094806669124317})
	assert.False(t, overlaps(circle, box, clear, origin))
	assert.False(t, overlaps(box, circle, origin, clear))

	corner := Vector{0.5, 0.5}
	for _, angle := range []float64{0.01, 0.019, 0.3, 0.785, 1.2, 1.56} {
		for _, gap := range []float64{2e-6, 1e-7, -2e-6} {
			center := corner.Add(ForAngle(angle).Mul(0.5 + gap))
			tc := NewTransformTranslate(center)
			want := gap < 0
			assert.Equal(t, want, overlaps(circle, box, tc, origin), "angle %v gap %v", angle, gap)
			assert.Equal(t, want, overlaps(box, circle, origin, tc), "reversed angle %v gap %v", angle, gap)
		}
	}

	// Flat faces a skin apart.
	assert.False(t, overlaps(box, box, origin, NewTransformTranslate(Vector{1 + 1e-6, 0.3})))
	assert.True(t, overlaps(box, box, origin, NewTransformTranslate(Vector{1 - 1e-6, 0.3})))
}
