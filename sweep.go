package collide

import (
	"math"
)

// TOI is the raw result of a sweep: where the ray t*r, r = vB - vA, first meets A - B.
type TOI struct {
	Hit bool
	// Time of impact as a multiple of the relative motion. Negative when the
	// shapes already overlap along the ray, greater than 1 when they meet too late.
	T float64
	// Surface normal of B at the contact, facing A.
	Normal Vector

	Iterations  int
	Approximate bool
	// The relative motion was zero and nothing was swept.
	Degenerate bool
}

// Sweep moves A by va and B by vb and finds when they first touch.
// Shapes that already overlap report a negative T; no static test is run here.
func Sweep(a, b Convex, ta, tb Transform, va, vb Vector, cfg Config) TOI {
	return newSolver(cfg, nil).sweep(&minkowski{a, b, ta, tb}, vb.Sub(va))
}

func (s *solver) sweep(m *minkowski, r Vector) TOI {
	eps := s.cfg.Epsilon
	if nearZero(r, eps) {
		s.log.Debug("collide: sweep with zero relative velocity, falling back to a static test")
		return TOI{Degenerate: true}
	}
	rr := r.LenSqr()

	// Find two support points on either side of the line through r.
	side := perp(r)
	pa := m.Support(side)
	pb := m.Support(neg(side))
	sa := cross(r, pa)
	sb := cross(r, pb)
	tol := eps * math.Sqrt(rr)

	switch {
	case math.Abs(sa) <= tol && math.Abs(sb) <= tol:
		// A - B is flat and lies along the ray.
		ta, tb := pa.Dot(r)/rr, pb.Dot(r)/rr
		if math.Max(ta, tb) < 0 {
			return TOI{}
		}
		return TOI{Hit: true, T: math.Min(ta, tb), Normal: normalize(r)}
	case sa < -tol || sb > tol:
		return TOI{}
	}

	var (
		n           Vector
		iterations  int
		approximate = true
	)
	for iterations < s.cfg.SweepMaxIterations {
		iterations++

		n = perp(pb.Sub(pa))
		if n.Dot(r) > 0 {
			n = neg(n)
		}
		if nearZero(n, eps) {
			approximate = false
			break
		}

		// Stop once the boundary beyond the edge can move the impact by less than SweepTolerance.
		p := m.Support(n)
		gap := p.Dot(n) - math.Max(pa.Dot(n), pb.Dot(n))
		if nearZero(p.Sub(pa), eps) || nearZero(p.Sub(pb), eps) ||
			gap <= eps*n.Len() || gap < s.cfg.SweepTolerance*math.Abs(r.Dot(n)) {
			approximate = false
			break
		}

		sp := cross(r, p)
		if math.Abs(sp) <= tol {
			// The new point is on the ray; it is the contact.
			return TOI{
				Hit:        true,
				T:          p.Dot(r) / rr,
				Normal:     neg(normalize(n)),
				Iterations: iterations,
			}
		}
		if sp > 0 {
			pa = p
		} else {
			pb = p
		}
	}

	if approximate {
		s.log.Warn("collide: sweep iteration limit reached, using best estimate", "iterations", iterations)
	} else if s.cfg.WarnIterations > 0 && iterations > s.cfg.WarnIterations {
		s.log.Warn("collide: high sweep iterations", "iterations", iterations)
	}

	t, clamped, ok := s.edgeImpact(m, r, pa, pb, n)
	if !ok {
		return TOI{Iterations: iterations}
	}
	if clamped {
		approximate = true
	}
	normal := neg(normalize(n))
	if nearZero(normal, 0) {
		normal = normalize(r)
	}
	return TOI{
		Hit:         true,
		T:           t,
		Normal:      normal,
		Iterations:  iterations,
		Approximate: approximate,
	}
}

// edgeImpact intersects the ray t*r with the edge ab of A - B. n is the edge normal
// facing against r. The result never lies past the support plane along n, so curved
// boundaries between a and b are not tunneled through. The true contact lies between
// the plane and the edge; clamped reports that they are further apart than SweepTolerance.
func (s *solver) edgeImpact(m *minkowski, r, a, b, n Vector) (t float64, clamped, ok bool) {
	t, _, ok = segmentLineIntersection(r, a, b)
	if !ok {
		// The edge runs along the ray.
		rr := r.LenSqr()
		if math.Abs(cross(r, a)) > s.cfg.Epsilon*math.Sqrt(rr) {
			return 0, false, false
		}
		return math.Min(a.Dot(r), b.Dot(r)) / rr, false, true
	}

	if rn := r.Dot(n); rn < 0 {
		if plane := m.Support(n).Dot(n) / rn; plane < t {
			clamped = t-plane > s.cfg.SweepTolerance
			t = plane
		}
	}
	return t, clamped, true
}

// resolveSweep turns a raw time of impact into a safe fraction of the motion r.
// overlap runs a static test of the pair at its starting pose and is only called when needed.
func (s *solver) resolveSweep(toi TOI, r Vector, overlap func() bool) (fraction Vector, normal Vector, hit bool) {
	switch {
	case toi.Degenerate:
		if overlap() {
			return Vector{}, Vector{}, true
		}
		return fullMotion(), Vector{}, false
	case !toi.Hit || toi.T > 1:
		return fullMotion(), Vector{}, false
	case toi.T < 0:
		// Negative impact times come from a pair that overlaps along the ray line.
		// Without a static overlap at the start there is nothing to stop, even though
		// the shapes may be close enough that precision loss put t below zero.
		if overlap() {
			return Vector{}, toi.Normal, true
		}
		return fullMotion(), Vector{}, false
	}

	// Back off far enough that the pair is Skin apart along the contact normal.
	approach := math.Abs(r.Dot(toi.Normal))
	if approach <= s.cfg.Epsilon {
		approach = r.Len()
	}
	t := math.Max(0, toi.T-s.cfg.Skin/approach)
	hitPoint := r.Mul(t)
	return Vector{axisFraction(hitPoint[0], r[0], t), axisFraction(hitPoint[1], r[1], t)}, toi.Normal, true
}

// axisFraction is the hit position over the motion on one axis, or t when that axis does not move.
func axisFraction(hit, motion, t float64) float64 {
	if math.Abs(motion) <= 1e-12 {
		return t
	}
	return hit / motion
}
