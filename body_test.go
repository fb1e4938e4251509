package collide

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const size = 32

func TestBodyTransform(t *testing.T) {
	body := NewBody()
	body.SetPosition(Vector{10, 10})
	body.SetAngle(math.Pi / 2)

	assert.Equal(t, Vector{10, 10}, body.Position())
	assertVectorNear(t, Vector{10, 10 + size}, body.LocalToWorld(Vector{size, 0}), 1e-9)
	assertVectorNear(t, Vector{size, 0}, body.WorldToLocal(Vector{10, 10 + size}), 1e-9)

	moved := body.TransformAt(Vector{0, 0})
	assertVectorNear(t, Vector{0, size}, moved.Point(Vector{size, 0}), 1e-9)
	// TransformAt leaves the body where it was.
	assert.Equal(t, Vector{10, 10}, body.Position())
}

func TestBodyVelocity(t *testing.T) {
	body := NewBody()
	body.SetVelocity(1, 2)
	assert.Equal(t, Vector{1, 2}, body.Velocity())

	static := NewStaticBody()
	static.SetVelocity(1, 2)
	assert.True(t, static.IsStatic())
	assert.Equal(t, Vector{}, static.Velocity())
}

func TestBodyShapes(t *testing.T) {
	body := NewBody()
	a := NewBox(body, size, size, 0)
	b := NewCircle(body, size, Vector{})
	c := NewSegment(body, Vector{}, Vector{size, 0}, 1)
	assert.Equal(t, []*Shape{a, b, c}, body.Shapes())

	body.RemoveShape(a)
	assert.ElementsMatch(t, []*Shape{b, c}, body.Shapes())

	var seen int
	body.EachShape(func(shape *Shape) {
		assert.Same(t, body, shape.Body())
		seen++
	})
	assert.Equal(t, 2, seen)
}

func TestBodyString(t *testing.T) {
	a, b := NewBody(), NewBody()
	assert.NotEqual(t, a.String(), b.String())
}
