package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine 2D pose with its inverse cached alongside.
// Collision queries only need rotation and translation, but any invertible matrix is accepted.
type Transform struct {
	m, inv mgl64.Mat3
}

func NewTransformIdentity() Transform {
	return Transform{mgl64.Ident3(), mgl64.Ident3()}
}

func NewTransformTranslate(translate Vector) Transform {
	return Transform{
		m:   mgl64.Translate2D(translate[0], translate[1]),
		inv: mgl64.Translate2D(-translate[0], -translate[1]),
	}
}

// NewTransformRigid returns a rotation by radians followed by a translation.
func NewTransformRigid(translate Vector, radians float64) Transform {
	m := mgl64.Translate2D(translate[0], translate[1]).Mul3(mgl64.HomogRotate2D(radians))
	inv := mgl64.HomogRotate2D(-radians).Mul3(mgl64.Translate2D(-translate[0], -translate[1]))
	return Transform{m, inv}
}

// NewTransformFromMatrix wraps an affine matrix and computes its inverse.
func NewTransformFromMatrix(m mgl64.Mat3) Transform {
	return Transform{m, m.Inv()}
}

// NewTransformFromInverse builds a transform from a precomputed world-to-local matrix.
func NewTransformFromInverse(inv mgl64.Mat3) Transform {
	return Transform{inv.Inv(), inv}
}

func (t Transform) Matrix() mgl64.Mat3 {
	return t.m
}

func (t Transform) InverseMatrix() mgl64.Mat3 {
	return t.inv
}

func (t Transform) Inverse() Transform {
	return Transform{t.inv, t.m}
}

// Mult composes t with t2, applying t2 first.
func (t Transform) Mult(t2 Transform) Transform {
	return Transform{t.m.Mul3(t2.m), t2.inv.Mul3(t.inv)}
}

// Translate moves the transform by offset in world space.
func (t Transform) Translate(offset Vector) Transform {
	if offset[0] == 0 && offset[1] == 0 {
		return t
	}
	return NewTransformTranslate(offset).Mult(t)
}

func (t Transform) Position() Vector {
	return Vector{t.m[6], t.m[7]}
}

// Angle returns the rotation of the linear part in radians.
func (t Transform) Angle() float64 {
	return math.Atan2(t.m[1], t.m[0])
}

// Point transforms a local point into world space.
func (t Transform) Point(p Vector) Vector {
	return t.m.Mul3x1(p.Vec3(1)).Vec2()
}

// Vect transforms a direction, ignoring translation.
func (t Transform) Vect(v Vector) Vector {
	return t.m.Mul3x1(v.Vec3(0)).Vec2()
}

// InvPoint transforms a world point into local space.
func (t Transform) InvPoint(p Vector) Vector {
	return t.inv.Mul3x1(p.Vec3(1)).Vec2()
}

// ToLocalDirection maps a world search direction into local space for a support query.
// It applies the transpose of the linear part so it stays correct under non-uniform scale.
func (t Transform) ToLocalDirection(d Vector) Vector {
	return Vector{
		t.m[0]*d[0] + t.m[1]*d[1],
		t.m[3]*d[0] + t.m[4]*d[1],
	}
}

// BB transforms the four corners of a local box and returns the world box around them.
func (t Transform) BB(bb BB) BB {
	return transformCorners(t.m, bb)
}

// InvBB maps a world box into local space.
func (t Transform) InvBB(bb BB) BB {
	return transformCorners(t.inv, bb)
}

func transformCorners(m mgl64.Mat3, bb BB) BB {
	out := EmptyBB()
	for _, c := range bb.Corners() {
		out = out.Expand(m.Mul3x1(c.Vec3(1)).Vec2())
	}
	return out
}
