package collide

import (
	"fmt"
	"math"
)

// pairContext is one pairwise test: two classes with their poses and the
// displacement each makes during the query.
type pairContext struct {
	a, b     ShapeClass
	ta, tb   Transform
	va, vb   Vector
	reversed bool
}

// flip swaps the two sides. reversed records that results must be swapped back.
func (ctx pairContext) flip() pairContext {
	return pairContext{
		a: ctx.b, b: ctx.a,
		ta: ctx.tb, tb: ctx.ta,
		va: ctx.vb, vb: ctx.va,
		reversed: !ctx.reversed,
	}
}

func (ctx pairContext) minkowski() *minkowski {
	return &minkowski{ctx.a.(Convex), ctx.b.(Convex), ctx.ta, ctx.tb}
}

// pair returns the leaf classes in the caller's order.
func (ctx pairContext) pair() ColliderPair {
	if ctx.reversed {
		return ColliderPair{ctx.b.(Convex), ctx.a.(Convex)}
	}
	return ColliderPair{ctx.a.(Convex), ctx.b.(Convex)}
}

// eachLeaf calls f for every pair of leaf parts whose world boxes can meet during the motion.
// At most one side of a context is ever a compound; a compound B is flipped to the A side first.
func (ctx pairContext) eachLeaf(f func(leaf pairContext)) {
	bbA := ctx.ta.BB(ctx.a.BB())
	bbB := ctx.tb.BB(ctx.b.BB())
	delta := ctx.va.Sub(ctx.vb)
	if !bbA.Sweep(delta).Intersects(bbB) {
		return
	}

	switch a := ctx.a.(type) {
	case *Compound:
		// B's box as seen from A, covering its motion relative to A.
		region := ctx.ta.InvBB(bbB.Sweep(neg(delta)))
		for _, part := range a.Query(region) {
			sub := ctx
			sub.a = part
			sub.eachLeaf(f)
		}
	case Convex:
		switch ctx.b.(type) {
		case *Compound:
			ctx.flip().eachLeaf(f)
		case Convex:
			f(ctx)
		default:
			panic(fmt.Sprintf("collide: unknown shape class %T", ctx.b))
		}
	default:
		panic(fmt.Sprintf("collide: unknown shape class %T", ctx.a))
	}
}

// overlapPairs returns every overlapping leaf pair.
func (s *solver) overlapPairs(ctx pairContext) []ColliderPair {
	var pairs []ColliderPair
	ctx.eachLeaf(func(leaf pairContext) {
		if s.gjk(leaf.minkowski()).Collided {
			pairs = append(pairs, leaf.pair())
		}
	})
	return pairs
}

// anyOverlap stops at the first overlapping leaf pair.
func (s *solver) anyOverlap(ctx pairContext) bool {
	found := false
	ctx.eachLeaf(func(leaf pairContext) {
		if !found && s.gjk(leaf.minkowski()).Collided {
			found = true
		}
	})
	return found
}

// pushoutPairs returns the penetration of every overlapping leaf pair, as a push for the caller's A.
func (s *solver) pushoutPairs(ctx pairContext) []PairPushout {
	var pairs []PairPushout
	ctx.eachLeaf(func(leaf pairContext) {
		m := leaf.minkowski()
		simplex := s.gjk(m)
		if !simplex.Collided {
			return
		}
		pen := s.epa(m, simplex)
		if leaf.reversed {
			pen.Vector = neg(pen.Vector)
			pen.Normal = neg(pen.Normal)
		}
		pairs = append(pairs, PairPushout{
			ColliderPair: leaf.pair(),
			Vector:       pen.Vector,
			Normal:       pen.Normal,
			Depth:        pen.Depth,
			Approximate:  pen.Approximate,
		})
	})
	return pairs
}

// sweepPairs returns the time of impact of every leaf pair that meets during the motion.
func (s *solver) sweepPairs(ctx pairContext) []PairSweep {
	var pairs []PairSweep
	ctx.eachLeaf(func(leaf pairContext) {
		m := leaf.minkowski()
		r := leaf.vb.Sub(leaf.va)
		toi := s.sweep(m, r)
		fraction, normal, hit := s.resolveSweep(toi, r, func() bool {
			return s.gjk(m).Collided
		})
		if !hit {
			return
		}
		if leaf.reversed {
			normal = neg(normal)
		}
		pairs = append(pairs, PairSweep{
			ColliderPair: leaf.pair(),
			Fraction:     fraction,
			Normal:       normal,
			Approximate:  toi.Approximate,
		})
	})
	return pairs
}

// pushoutAlong sweeps every overlapping leaf pair backwards along dir. It returns the pairs
// and the largest multiple of dir that separates any of them.
func (s *solver) pushoutAlong(ctx pairContext, dir Vector) ([]PairPushout, float64) {
	var pairs []PairPushout
	best := 0.0
	ctx.eachLeaf(func(leaf pairContext) {
		m := leaf.minkowski()
		if !s.gjk(m).Collided {
			return
		}
		r := dir
		if leaf.reversed {
			r = neg(dir)
		}
		toi := s.sweep(m, r)
		if !toi.Hit {
			return
		}
		scale := math.Max(0, -toi.T)
		best = math.Max(best, scale)
		pairs = append(pairs, PairPushout{
			ColliderPair: leaf.pair(),
			Vector:       s.directionalPush(dir, scale),
			Normal:       normalize(dir),
			Depth:        scale * dir.Len(),
			Approximate:  toi.Approximate,
		})
	})
	return pairs, best
}

func (s *solver) directionalPush(dir Vector, scale float64) Vector {
	return dir.Mul(scale).Add(normalize(dir).Mul(s.cfg.Skin))
}
