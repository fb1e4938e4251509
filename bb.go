package collide

import "math"

// BB is an axis-aligned bounding box.
type BB struct {
	L, B, R, T float64
}

func NewBB(l, b, r, t float64) BB {
	return BB{l, b, r, t}
}

// EmptyBB returns an inverted box that any Expand or Merge will replace.
func EmptyBB() BB {
	return BB{INFINITY, INFINITY, -INFINITY, -INFINITY}
}

func NewBBForExtents(c Vector, hw, hh float64) BB {
	return BB{
		L: c[0] - hw,
		B: c[1] - hh,
		R: c[0] + hw,
		T: c[1] + hh,
	}
}

func NewBBForCircle(p Vector, r float64) BB {
	return NewBBForExtents(p, r, r)
}

func (bb BB) IsEmpty() bool {
	return bb.R < bb.L || bb.T < bb.B
}

// Intersects treats both boxes as closed, so boxes sharing an edge intersect.
func (a BB) Intersects(b BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}

func (bb BB) Contains(other BB) bool {
	return bb.L <= other.L && bb.R >= other.R && bb.B <= other.B && bb.T >= other.T
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.L <= v[0] && bb.R >= v[0] && bb.B <= v[1] && bb.T >= v[1]
}

func (a BB) Merge(b BB) BB {
	return BB{
		math.Min(a.L, b.L),
		math.Min(a.B, b.B),
		math.Max(a.R, b.R),
		math.Max(a.T, b.T),
	}
}

func (bb BB) Expand(v Vector) BB {
	return BB{
		math.Min(bb.L, v[0]),
		math.Min(bb.B, v[1]),
		math.Max(bb.R, v[0]),
		math.Max(bb.T, v[1]),
	}
}

func (bb BB) Center() Vector {
	return lerpVector(Vector{bb.L, bb.B}, Vector{bb.R, bb.T}, 0.5)
}

func (bb BB) Area() float64 {
	return (bb.R - bb.L) * (bb.T - bb.B)
}

func (bb BB) Offset(v Vector) BB {
	return BB{
		bb.L + v[0],
		bb.B + v[1],
		bb.R + v[0],
		bb.T + v[1],
	}
}

// Sweep returns the box covering bb at rest and bb moved by delta.
func (bb BB) Sweep(delta Vector) BB {
	return bb.Merge(bb.Offset(delta))
}

// Corners lists the corners counter-clockwise starting at the bottom left.
func (bb BB) Corners() [4]Vector {
	return [4]Vector{
		{bb.L, bb.B},
		{bb.R, bb.B},
		{bb.R, bb.T},
		{bb.L, bb.T},
	}
}

// SegmentQuery returns the fraction along a->b where the segment enters the box, or INFINITY.
func (bb BB) SegmentQuery(a, b Vector) float64 {
	delta := b.Sub(a)
	tmin := -INFINITY
	tmax := INFINITY

	if delta[0] == 0 {
		if a[0] < bb.L || bb.R < a[0] {
			return INFINITY
		}
	} else {
		t1 := (bb.L - a[0]) / delta[0]
		t2 := (bb.R - a[0]) / delta[0]
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if delta[1] == 0 {
		if a[1] < bb.B || bb.T < a[1] {
			return INFINITY
		}
	} else {
		t1 := (bb.B - a[1]) / delta[1]
		t2 := (bb.T - a[1]) / delta[1]
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if tmin <= tmax && 0 <= tmax && tmin <= 1.0 {
		return math.Max(tmin, 0.0)
	}
	return INFINITY
}

func (bb BB) IntersectsSegment(a, b Vector) bool {
	return bb.SegmentQuery(a, b) != INFINITY
}

func (bb BB) ClampVect(v Vector) Vector {
	return Vector{Clamp(v[0], bb.L, bb.R), Clamp(v[1], bb.B, bb.T)}
}
