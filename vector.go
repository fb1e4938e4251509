package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a 2D point or direction in float64.
type Vector = mgl64.Vec2

const INFINITY = math.MaxFloat64

func VectorZero() Vector {
	return Vector{}
}

// ForAngle returns the unit length vector for the given angle (in radians).
func ForAngle(a float64) Vector {
	return Vector{math.Cos(a), math.Sin(a)}
}

/// 2D vector cross product analog.
/// The cross product of 2D vectors results in a 3D vector with only a z component.
/// This function returns the magnitude of the z value.
func cross(a, b Vector) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// perp rotates v by 90 degrees counter-clockwise.
func perp(v Vector) Vector {
	return Vector{-v[1], v[0]}
}

// rperp rotates v by 90 degrees clockwise.
func rperp(v Vector) Vector {
	return Vector{v[1], -v[0]}
}

// tripleProduct returns (a x b) x c expanded for the plane: b(a.c) - a(b.c).
// tripleProduct(ab, ao, ab) is the perpendicular of ab facing ao.
func tripleProduct(a, b, c Vector) Vector {
	ac := a.Dot(c)
	bc := b.Dot(c)
	return Vector{b[0]*ac - a[0]*bc, b[1]*ac - a[1]*bc}
}

// normalize returns the unit vector for v, or the zero vector when v has no length.
func normalize(v Vector) Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return v.Mul(1 / l)
}

func nearZero(v Vector, eps float64) bool {
	return v.LenSqr() <= eps*eps
}

func neg(v Vector) Vector {
	return Vector{-v[0], -v[1]}
}

// mulElem multiplies two vectors component-wise.
func mulElem(a, b Vector) Vector {
	return Vector{a[0] * b[0], a[1] * b[1]}
}

func lerpVector(a, b Vector, t float64) Vector {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}

func Clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func Lerp(f1, f2, t float64) float64 {
	return f1*(1.0-t) + f2*t
}

// ClosestPointOnSegment returns the point of segment ab closest to p.
func ClosestPointOnSegment(p, a, b Vector) Vector {
	delta := a.Sub(b)
	lsq := delta.LenSqr()
	if lsq == 0 {
		return a
	}
	t := Clamp01(delta.Dot(p.Sub(b)) / lsq)
	return b.Add(delta.Mul(t))
}

// signedArea returns twice the signed area of the polygon; positive when the winding is counter-clockwise.
func signedArea(verts []Vector) float64 {
	area := 0.0
	n := len(verts)
	for i := 0; i < n; i++ {
		area += cross(verts[i], verts[(i+1)%n])
	}
	return area
}

// segmentLineIntersection intersects the line through the origin along dir with the segment ab.
// It returns t such that dir*t lies on the line through a and b, and s, the position of that point along ab.
// ok is false when the two are parallel.
func segmentLineIntersection(dir, a, b Vector) (t, s float64, ok bool) {
	e := b.Sub(a)
	denom := cross(dir, e)
	if denom == 0 {
		return 0, 0, false
	}
	t = cross(a, e) / denom
	s = cross(a, dir) / denom
	return t, s, true
}
