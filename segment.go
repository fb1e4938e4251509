package collide

import "math"

// Segment is a line segment, optionally thickened by a radius into a capsule.
type Segment struct {
	A, B Vector
	r    float64
}

func NewSegmentClass(a, b Vector, r float64) *Segment {
	return &Segment{A: a, B: b, r: r}
}

func NewSegment(body *Body, a, b Vector, r float64) *Shape {
	return NewShape(NewSegmentClass(a, b, r), body)
}

func (*Segment) shapeClass() {}

func (seg *Segment) Radius() float64 {
	return seg.r
}

// Normal is the unit normal on the clockwise side of A->B.
func (seg *Segment) Normal() Vector {
	return rperp(normalize(seg.B.Sub(seg.A)))
}

func (seg *Segment) BB() BB {
	rad := seg.r
	return BB{
		math.Min(seg.A[0], seg.B[0]) - rad,
		math.Min(seg.A[1], seg.B[1]) - rad,
		math.Max(seg.A[0], seg.B[0]) + rad,
		math.Max(seg.A[1], seg.B[1]) + rad,
	}
}

func (seg *Segment) Center() Vector {
	return lerpVector(seg.A, seg.B, 0.5)
}

func (seg *Segment) Support(n Vector) Vector {
	p := seg.B
	if seg.A.Dot(n) > seg.B.Dot(n) {
		p = seg.A
	}
	if seg.r == 0 {
		return p
	}
	return p.Add(normalize(n).Mul(seg.r))
}
