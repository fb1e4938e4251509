package collide

import "math"

// Every query takes the pose t of the query shape, which need not be registered.
// Use shape.Transform() for its body's pose, body.TransformAt for the body moved to
// another position, or NewTransformFromInverse when only the world-to-local matrix is at hand.
// Registered shapes are tested at their own body's pose. Swept queries also move them by
// their body's velocity over the same step, so a sweep sees the motion of both sides.

func (space *Space) context(shape *Shape, t Transform, other *Shape) pairContext {
	return pairContext{
		a:  shape.class,
		b:  other.class,
		ta: t,
		tb: other.Transform(),
	}
}

// ShapeQuery calls f for every registered shape that overlaps shape at pose t.
// The space is locked while f runs, so f may add or remove shapes.
func (space *Space) ShapeQuery(shape *Shape, t Transform, f func(info CollisionInfo)) bool {
	space.Lock()
	defer space.Unlock(true)

	anyCollision := false
	for _, other := range space.shapes {
		if !space.eligible(shape, other) {
			continue
		}
		pairs := space.solver.overlapPairs(space.context(shape, t, other))
		if len(pairs) == 0 {
			continue
		}
		anyCollision = true
		if f != nil {
			f(CollisionInfo{Collided: true, Shape: other, Pairs: pairs})
		}
	}
	return anyCollision
}

// AllCollisions returns every registered shape overlapping shape at pose t.
func (space *Space) AllCollisions(shape *Shape, t Transform) CollisionsInfo {
	var info CollisionsInfo
	info.Collided = space.ShapeQuery(shape, t, func(hit CollisionInfo) {
		info.Hits = append(info.Hits, hit)
	})
	return info
}

// FirstCollision returns the first registered shape, in registration order, overlapping shape at pose t.
func (space *Space) FirstCollision(shape *Shape, t Transform) CollisionInfo {
	space.Lock()
	defer space.Unlock(true)

	for _, other := range space.shapes {
		if !space.eligible(shape, other) {
			continue
		}
		if pairs := space.solver.overlapPairs(space.context(shape, t, other)); len(pairs) > 0 {
			return CollisionInfo{Collided: true, Shape: other, Pairs: pairs}
		}
	}
	return CollisionInfo{}
}

// overlapsAny is FirstCollision without building a result.
func (space *Space) overlapsAny(shape *Shape, t Transform) (*Shape, bool) {
	return space.overlapsAnyAt(shape, t, Vector{})
}

// overlapsAnyAt is overlapsAny with every registered shape moved by fraction of its velocity.
func (space *Space) overlapsAnyAt(shape *Shape, t Transform, fraction Vector) (*Shape, bool) {
	for _, other := range space.shapes {
		if !space.eligible(shape, other) {
			continue
		}
		ctx := space.context(shape, t, other)
		ctx.tb = ctx.tb.Translate(mulElem(bodyVelocity(other), fraction))
		if space.solver.anyOverlap(ctx) {
			return other, true
		}
	}
	return nil, false
}

// envelope accumulates pushouts per axis: the largest push in each direction wins,
// and opposing pushes on one axis are summed.
type envelope struct {
	pos, neg Vector
}

func (e *envelope) add(v Vector) {
	for i := 0; i < 2; i++ {
		e.pos[i] = math.Max(e.pos[i], v[i])
		e.neg[i] = math.Min(e.neg[i], v[i])
	}
}

func (e *envelope) vector() Vector {
	return e.pos.Add(e.neg)
}

// CollisionPushout returns the translation that moves shape at pose t out of everything it overlaps.
func (space *Space) CollisionPushout(shape *Shape, t Transform) PushoutInfo {
	space.Lock()
	defer space.Unlock(true)

	var info PushoutInfo
	var total envelope
	for _, other := range space.shapes {
		if !space.eligible(shape, other) {
			continue
		}
		pairs := space.solver.pushoutPairs(space.context(shape, t, other))
		if len(pairs) == 0 {
			continue
		}

		hit := ShapePushout{Shape: other, Pairs: pairs}
		var env envelope
		for _, pair := range pairs {
			env.add(pair.Vector)
			total.add(pair.Vector)
			hit.Approximate = hit.Approximate || pair.Approximate
		}
		hit.Vector = env.vector()

		info.Collided = true
		info.Approximate = info.Approximate || hit.Approximate
		info.Hits = append(info.Hits, hit)
	}
	info.Vector = total.vector()
	return info
}

// CollisionPushoutInDirection returns how far shape at pose t must move along dir to stop
// overlapping, as a multiple of dir plus the configured skin. Each overlapping pair is swept
// backwards along dir and the largest push is kept. A zero dir falls back to CollisionPushout.
func (space *Space) CollisionPushoutInDirection(shape *Shape, t Transform, dir Vector) PushoutInfo {
	if nearZero(dir, space.cfg.Epsilon) {
		space.log.Warn("collide: pushout requested along a zero direction")
		return space.CollisionPushout(shape, t)
	}

	space.Lock()
	defer space.Unlock(true)

	var info PushoutInfo
	var best float64
	for _, other := range space.shapes {
		if !space.eligible(shape, other) {
			continue
		}
		pairs, scale := space.solver.pushoutAlong(space.context(shape, t, other), dir)
		if len(pairs) == 0 {
			continue
		}

		hit := ShapePushout{Shape: other, Pairs: pairs, Vector: space.solver.directionalPush(dir, scale)}
		for _, pair := range pairs {
			hit.Approximate = hit.Approximate || pair.Approximate
		}
		best = math.Max(best, scale)

		info.Collided = true
		info.Approximate = info.Approximate || hit.Approximate
		info.Hits = append(info.Hits, hit)
	}
	if info.Collided {
		info.Vector = space.solver.directionalPush(dir, best)
	}
	return info
}

// bodyVelocity is the displacement of a registered shape over one sweep.
func bodyVelocity(other *Shape) Vector {
	if other.body == nil {
		return Vector{}
	}
	return other.body.Velocity()
}

// sweepFirst reports whether fraction a stops earlier than b on both axes.
func sweepFirst(a, b Vector) bool {
	return a[0] < b[0] && a[1] < b[1]
}

// sweep moves shape from pose t by motion and returns the earliest hit. filter can skip
// candidates before any narrow phase work. When targetsMove is set each registered shape
// moves by its body's velocity during the sweep.
func (space *Space) sweep(shape *Shape, t Transform, motion Vector, targetsMove bool, filter func(*Shape) bool) SweepInfo {
	info := SweepInfo{Fraction: fullMotion()}
	for _, other := range space.shapes {
		if !space.eligible(shape, other) || (filter != nil && !filter(other)) {
			continue
		}
		ctx := space.context(shape, t, other)
		ctx.va = motion
		if targetsMove {
			ctx.vb = bodyVelocity(other)
		}
		pairs := space.solver.sweepPairs(ctx)
		if len(pairs) == 0 {
			continue
		}

		hit := ShapeSweep{Shape: other, Fraction: pairs[0].Fraction, Normal: pairs[0].Normal, Pairs: pairs}
		for _, pair := range pairs {
			if sweepFirst(pair.Fraction, hit.Fraction) {
				hit.Fraction = pair.Fraction
				hit.Normal = pair.Normal
			}
			hit.Approximate = hit.Approximate || pair.Approximate
		}
		info.Hits = append(info.Hits, hit)

		if !info.Collided || sweepFirst(hit.Fraction, info.Fraction) {
			info.Collided = true
			info.Fraction = hit.Fraction
			info.Normal = hit.Normal
			info.Shape = other
		}
		info.Approximate = info.Approximate || hit.Approximate
	}
	return info
}

// SweptCollision moves shape from pose t by motion and returns the safe fraction of that motion.
// Registered shapes move by their body's velocity over the same step. The result is checked with
// a static overlap test with every shape advanced by the same fraction; if that test fails the
// motion is cancelled and Fraction is zero.
func (space *Space) SweptCollision(shape *Shape, t Transform, motion Vector) SweepInfo {
	space.Lock()
	defer space.Unlock(true)

	if nearZero(motion, space.cfg.Epsilon) {
		space.log.Warn("collide: sweep with zero velocity, only moving shapes are swept")
	}

	info := space.sweep(shape, t, motion, true, nil)
	if info.Fraction[0] == 0 && info.Fraction[1] == 0 {
		return info
	}

	advanced := t.Translate(mulElem(motion, info.Fraction))
	if other, ok := space.overlapsAnyAt(shape, advanced, info.Fraction); ok {
		space.log.Debug("collide: swept shape overlaps at its advanced pose, cancelling motion",
			"fraction", info.Fraction, "shape", other.Body())
		info.Collided = true
		info.Fraction = Vector{}
		if info.Shape == nil {
			info.Shape = other
		}
	}
	return info
}

// RayCollision casts a ray from start to end and returns the first shape it hits.
// Shapes are tested with filter as the ray's own filter.
func (space *Space) RayCollision(start, end Vector, filter ShapeFilter) RayInfo {
	space.Lock()
	defer space.Unlock(true)

	ray := &Shape{class: NewPointClass(Vector{}), Filter: filter}
	t := NewTransformTranslate(start)
	delta := end.Sub(start)

	if nearZero(delta, space.cfg.Epsilon) {
		if other, ok := space.overlapsAny(ray, t); ok {
			return RayInfo{SweepInfo: SweepInfo{Collided: true, Shape: other}, Point: start}
		}
		return RayInfo{SweepInfo: SweepInfo{Fraction: fullMotion()}, Point: end}
	}

	info := space.sweep(ray, t, delta, false, func(other *Shape) bool {
		return other.BB().IntersectsSegment(start, end)
	})
	return RayInfo{
		SweepInfo: info,
		Point:     start.Add(mulElem(delta, info.Fraction)),
	}
}

// ShapeCollisions is AllCollisions at the shape's own body pose.
func (space *Space) ShapeCollisions(shape *Shape) CollisionsInfo {
	return space.AllCollisions(shape, shape.Transform())
}

// ShapePushout is CollisionPushout at the shape's own body pose.
func (space *Space) ShapePushout(shape *Shape) PushoutInfo {
	return space.CollisionPushout(shape, shape.Transform())
}

// ShapeSweep sweeps the shape from its body's pose by motion.
func (space *Space) ShapeSweep(shape *Shape, motion Vector) SweepInfo {
	return space.SweptCollision(shape, shape.Transform(), motion)
}
