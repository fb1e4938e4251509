package collide

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVectorNear(t *testing.T, want, got Vector, delta float64) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], delta, "x of %v", got)
	assert.InDelta(t, want[1], got[1], delta, "y of %v", got)
}

func TestTransform_Rigid(t *testing.T) {
	tr := NewTransformRigid(Vector{1, 2}, math.Pi/2)

	assertVectorNear(t, Vector{1, 3}, tr.Point(Vector{1, 0}), 1e-12)
	assertVectorNear(t, Vector{0, 1}, tr.Vect(Vector{1, 0}), 1e-12)
	assertVectorNear(t, Vector{1, 0}, tr.InvPoint(Vector{1, 3}), 1e-12)
	assertVectorNear(t, Vector{1, 2}, tr.Position(), 1e-12)
	assert.InDelta(t, math.Pi/2, tr.Angle(), 1e-12)
}

func TestTransform_ToLocalDirection(t *testing.T) {
	tr := NewTransformRigid(Vector{5, 5}, math.Pi/2)

	// A world direction maps to the local direction that a support function must answer.
	assertVectorNear(t, Vector{1, 0}, tr.ToLocalDirection(Vector{0, 1}), 1e-12)
	assertVectorNear(t, Vector{0, 1}, tr.ToLocalDirection(Vector{-1, 0}), 1e-12)
}

func TestTransform_Inverse(t *testing.T) {
	tr := NewTransformRigid(Vector{3, -1}, 0.7)
	p := Vector{0.25, 4}

	assertVectorNear(t, p, tr.Inverse().Point(tr.Point(p)), 1e-12)
	assertVectorNear(t, p, tr.Mult(tr.Inverse()).Point(p), 1e-12)

	fromInv := NewTransformFromInverse(tr.InverseMatrix())
	assertVectorNear(t, tr.Point(p), fromInv.Point(p), 1e-9)

	fromMat := NewTransformFromMatrix(tr.Matrix())
	assertVectorNear(t, p, fromMat.InvPoint(tr.Point(p)), 1e-9)
}

func TestTransform_Translate(t *testing.T) {
	tr := NewTransformRigid(Vector{1, 1}, math.Pi).Translate(Vector{2, 0})
	assertVectorNear(t, Vector{3, 1}, tr.Position(), 1e-12)
	assertVectorNear(t, Vector{2, 1}, tr.Point(Vector{1, 0}), 1e-12)
}

func TestTransform_BB(t *testing.T) {
	tr := NewTransformRigid(Vector{10, 0}, math.Pi/4)
	bb := tr.BB(NewBB(-1, -1, 1, 1))

	h := math.Sqrt2
	assert.InDelta(t, 10-h, bb.L, 1e-12)
	assert.InDelta(t, 10+h, bb.R, 1e-12)
	assert.InDelta(t, -h, bb.B, 1e-12)
	assert.InDelta(t, h, bb.T, 1e-12)

	local := NewTransformTranslate(Vector{10, 0}).InvBB(NewBB(9, -1, 11, 1))
	assert.Equal(t, NewBB(-1, -1, 1, 1), local)
}

func TestTransform_Scaled(t *testing.T) {
	// Directions go through the transpose, so a stretched box still answers supports correctly.
	tr := NewTransformFromMatrix(mgl64.Scale2D(2, 1))
	box := NewBoxClass(1, 1, 0)

	d := Vector{1, 1}
	p := tr.Point(box.Support(tr.ToLocalDirection(d)))
	assertVectorNear(t, Vector{1, 0.5}, p, 1e-12)
}
