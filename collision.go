package collide

import (
	"log/slog"
	"math"
)

// minkowski is the difference A - B of two posed convex shapes.
type minkowski struct {
	a, b   Convex
	ta, tb Transform
}

// Support returns the point of A - B furthest along d, in world space.
// d is mapped into each shape's local space before the support call.
func (m *minkowski) Support(d Vector) Vector {
	pa := m.ta.Point(m.a.Support(m.ta.ToLocalDirection(d)))
	pb := m.tb.Point(m.b.Support(m.tb.ToLocalDirection(neg(d))))
	return pa.Sub(pb)
}

// Center is a point inside A - B.
func (m *minkowski) Center() Vector {
	return m.ta.Point(m.a.Center()).Sub(m.tb.Point(m.b.Center()))
}

// solver runs the narrow phase with a fixed configuration.
type solver struct {
	cfg Config
	log *slog.Logger
}

func newSolver(cfg Config, log *slog.Logger) *solver {
	if log == nil {
		log = slog.Default()
	}
	return &solver{cfg: cfg, log: log}
}

// Simplex is the working set GJK leaves behind: up to three points of A - B,
// newest last.
type Simplex struct {
	Points     [3]Vector
	Count      int
	Collided   bool
	Iterations int
}

func (s *Simplex) push(p Vector) {
	s.Points[s.Count] = p
	s.Count++
}

func (s *Simplex) contains(p Vector, eps float64) bool {
	for i := 0; i < s.Count; i++ {
		if nearZero(s.Points[i].Sub(p), eps) {
			return true
		}
	}
	return false
}

// extent is the furthest any simplex point reaches along d.
func (s *Simplex) extent(d Vector) float64 {
	best := -INFINITY
	for i := 0; i < s.Count; i++ {
		best = math.Max(best, s.Points[i].Dot(d))
	}
	return best
}

// Distance returns how far the origin is from the hull of the simplex points.
func (s *Simplex) Distance() float64 {
	switch s.Count {
	case 0:
		return INFINITY
	case 1:
		return s.Points[0].Len()
	case 2:
		return ClosestPointOnSegment(Vector{}, s.Points[0], s.Points[1]).Len()
	}

	a, b, c := s.Points[0], s.Points[1], s.Points[2]
	d1, d2, d3 := cross(b.Sub(a), neg(a)), cross(c.Sub(b), neg(b)), cross(a.Sub(c), neg(c))
	if (d1 >= 0 && d2 >= 0 && d3 >= 0) || (d1 <= 0 && d2 <= 0 && d3 <= 0) {
		return 0
	}
	return math.Min(
		ClosestPointOnSegment(Vector{}, a, b).Len(),
		math.Min(ClosestPointOnSegment(Vector{}, b, c).Len(), ClosestPointOnSegment(Vector{}, c, a).Len()),
	)
}

// GJK reports whether two posed convex shapes overlap. Touching shapes overlap.
func GJK(a, b Convex, ta, tb Transform, cfg Config) Simplex {
	return newSolver(cfg, nil).gjk(&minkowski{a, b, ta, tb})
}

func (s *solver) gjk(m *minkowski) Simplex {
	var simplex Simplex

	d := m.Center()
	if nearZero(d, s.cfg.Epsilon) {
		d = Vector{1, 0}
	}
	p := m.Support(d)
	simplex.push(p)
	d = neg(p)

	for simplex.Iterations < s.cfg.GJKMaxIterations {
		simplex.Iterations++

		// d shrinks with the square of a short edge, so only its direction is trusted.
		dn := normalize(d)
		if nearZero(dn, 0) {
			return s.gjkSettle(simplex)
		}

		p = m.Support(dn)
		if p.Dot(dn) < 0 {
			return simplex
		}
		if simplex.contains(p, s.cfg.Epsilon) || p.Dot(dn)-simplex.extent(dn) <= s.cfg.Epsilon {
			// No progress toward the origin.
			return s.gjkSettle(simplex)
		}
		simplex.push(p)

		var done bool
		if done, d = s.evolve(&simplex); done {
			return simplex
		}
	}

	if s.cfg.WarnIterations > 0 {
		s.log.Warn("collide: GJK iteration limit reached", "iterations", simplex.Iterations)
	}
	return s.gjkSettle(simplex)
}

// gjkSettle decides a simplex that can make no more progress by its distance to the origin.
func (s *solver) gjkSettle(simplex Simplex) Simplex {
	simplex.Collided = simplex.Distance() <= s.cfg.Epsilon
	return simplex
}

// evolve updates the simplex after a point was added and returns the next search direction.
// done is true once the answer is known and stored in the simplex.
func (s *solver) evolve(simplex *Simplex) (done bool, d Vector) {
	switch simplex.Count {
	case 2:
		a, b := simplex.Points[1], simplex.Points[0]
		ab := b.Sub(a)
		ao := neg(a)
		if simplex.Distance() <= s.cfg.Epsilon {
			simplex.Collided = true
			return true, Vector{}
		}
		d := tripleProduct(ab, ao, ab)
		if nearZero(d, 0) {
			// The origin is on the line through the edge but off the edge itself.
			*simplex = s.gjkSettle(*simplex)
			return true, Vector{}
		}
		return false, d

	case 3:
		a, b, c := simplex.Points[2], simplex.Points[1], simplex.Points[0]
		ab := b.Sub(a)
		ac := c.Sub(a)
		ao := neg(a)

		if math.Abs(cross(ab, ac)) <= s.cfg.Epsilon*ab.Len()*ac.Len() {
			// Collinear points enclose nothing. Keep the newest edge and decide by distance.
			simplex.Points[0], simplex.Points[1] = b, a
			simplex.Count = 2
			*simplex = s.gjkSettle(*simplex)
			return true, Vector{}
		}

		abPerp := tripleProduct(ac, ab, ab)
		acPerp := tripleProduct(ab, ac, ac)

		if abPerp.Dot(ao) > 0 {
			simplex.Points[0], simplex.Points[1] = b, a
			simplex.Count = 2
			return false, abPerp
		}
		if acPerp.Dot(ao) > 0 {
			simplex.Points[0], simplex.Points[1] = c, a
			simplex.Count = 2
			return false, acPerp
		}
		simplex.Collided = true
		return true, Vector{}
	}

	panic("collide: simplex with no points")
}

// Penetration is the minimum translation separating two overlapping shapes.
type Penetration struct {
	// Translation to apply to A. It includes the configured skin.
	Vector Vector
	// Unit direction of Vector.
	Normal Vector
	Depth  float64

	Iterations  int
	Approximate bool
}

// EPA expands a colliding simplex into the penetration vector that moves A out of B.
func EPA(a, b Convex, ta, tb Transform, simplex Simplex, cfg Config) Penetration {
	return newSolver(cfg, nil).epa(&minkowski{a, b, ta, tb}, simplex)
}

func (s *solver) epa(m *minkowski, simplex Simplex) Penetration {
	polytope := make([]Vector, 0, simplex.Count+s.cfg.EPAMaxIterations)
	polytope = append(polytope, simplex.Points[:simplex.Count]...)

	polytope, ok := s.expandSimplex(m, polytope)
	if !ok {
		// A - B is flat; any push across it separates the pair.
		var n Vector
		if len(polytope) > 1 {
			n = normalize(perp(polytope[1].Sub(polytope[0])))
		}
		if nearZero(n, 0) {
			n = Vector{1, 0}
		}
		return s.penetration(n, 0, 0, false)
	}

	winding := rperp
	if signedArea(polytope) < 0 {
		winding = perp
	}

	var (
		normal   Vector
		estimate float64
	)
	for iteration := 1; ; iteration++ {
		index := 0
		dist := INFINITY
		for i := range polytope {
			j := (i + 1) % len(polytope)
			n := normalize(winding(polytope[j].Sub(polytope[i])))
			if nearZero(n, 0) {
				continue
			}
			if d := n.Dot(polytope[i]); d < dist {
				dist = d
				normal = n
				index = j
			}
		}

		p := m.Support(normal)
		estimate = p.Dot(normal)
		if estimate-dist < s.cfg.EPATolerance {
			if s.cfg.WarnIterations > 0 && iteration > s.cfg.WarnIterations {
				s.log.Warn("collide: high EPA iterations", "iterations", iteration)
			}
			return s.penetration(normal, estimate, iteration, false)
		}
		if iteration >= s.cfg.EPAMaxIterations {
			s.log.Warn("collide: EPA iteration limit reached, using best estimate",
				"iterations", iteration, "estimate", estimate, "edge", dist)
			return s.penetration(normal, estimate, iteration, true)
		}

		polytope = append(polytope, Vector{})
		copy(polytope[index+1:], polytope[index:])
		polytope[index] = p
	}
}

// penetration builds the result for the outward normal n of A - B at the given depth.
func (s *solver) penetration(n Vector, depth float64, iterations int, approximate bool) Penetration {
	return Penetration{
		Vector:      n.Mul(-(math.Max(depth, 0) + s.cfg.Skin)),
		Normal:      neg(n),
		Depth:       depth,
		Iterations:  iterations,
		Approximate: approximate,
	}
}

// expandSimplex grows a one or two point simplex, left behind by shapes that only touch,
// into a triangle. It reports false if A - B has no area.
func (s *solver) expandSimplex(m *minkowski, polytope []Vector) ([]Vector, bool) {
	if len(polytope) == 1 {
		for _, d := range []Vector{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if p := m.Support(d); !nearZero(p.Sub(polytope[0]), s.cfg.Epsilon) {
				polytope = append(polytope, p)
				break
			}
		}
		if len(polytope) == 1 {
			return polytope, false
		}
	}

	if len(polytope) == 2 {
		d := perp(polytope[1].Sub(polytope[0]))
		base := polytope[0].Dot(d)
		p := m.Support(d)
		if p.Dot(d)-base <= s.cfg.Epsilon*d.Len() {
			d = neg(d)
			p = m.Support(d)
			if p.Dot(d)+base <= s.cfg.Epsilon*d.Len() {
				return polytope, false
			}
		}
		polytope = append(polytope, p)
	}

	return polytope, true
}
