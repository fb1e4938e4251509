package collide

import (
	"fmt"
)

// Body is the owner of a set of shapes. It supplies their pose and velocity at query time.
type Body struct {
	id int

	// position, velocity, angle (radians)
	p Vector
	v Vector
	a float64

	transform Transform

	static   bool
	disabled bool

	UserData interface{}

	shapeList []*Shape
}

func (b Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

var bodyCur int = 0

func NewBody() *Body {
	body := &Body{
		id:        bodyCur,
		transform: NewTransformIdentity(),
	}
	bodyCur++
	return body
}

// NewStaticBody returns a body that never moves on its own; its velocity stays zero.
func NewStaticBody() *Body {
	body := NewBody()
	body.static = true
	return body
}

func (body *Body) IsStatic() bool {
	return body.static
}

func (body *Body) Position() Vector {
	return body.p
}

func (body *Body) SetPosition(position Vector) {
	body.SetTransform(position, body.a)
}

func (body *Body) Angle() float64 {
	return body.a
}

func (body *Body) SetAngle(angle float64) {
	body.SetTransform(body.p, angle)
}

func (body *Body) SetTransform(p Vector, a float64) {
	body.p = p
	body.a = a
	body.transform = NewTransformRigid(p, a)
}

func (body *Body) Transform() Transform {
	return body.transform
}

// TransformAt returns the body's pose moved to position, keeping its rotation.
func (body *Body) TransformAt(position Vector) Transform {
	return NewTransformRigid(position, body.a)
}

// Velocity is how far the body's shapes move during a swept query made by another shape.
func (body *Body) Velocity() Vector {
	return body.v
}

func (body *Body) SetVelocity(x, y float64) {
	body.SetVelocityVector(Vector{x, y})
}

func (body *Body) SetVelocityVector(v Vector) {
	if body.static {
		return
	}
	body.v = v
}

func (body *Body) Enabled() bool {
	return !body.disabled
}

// SetEnabled controls whether the body's shapes take part in queries.
func (body *Body) SetEnabled(enabled bool) {
	body.disabled = !enabled
}

func (body *Body) WorldToLocal(point Vector) Vector {
	return body.transform.InvPoint(point)
}

func (body *Body) LocalToWorld(point Vector) Vector {
	return body.transform.Point(point)
}

func (body *Body) AddShape(shape *Shape) *Shape {
	body.shapeList = append(body.shapeList, shape)
	return shape
}

func (body *Body) RemoveShape(shape *Shape) {
	for i, s := range body.shapeList {
		if s == shape {
			// leak-free delete from slice
			last := len(body.shapeList) - 1
			body.shapeList[i] = body.shapeList[last]
			body.shapeList[last] = nil
			body.shapeList = body.shapeList[:last]
			break
		}
	}
}

func (body *Body) Shapes() []*Shape {
	return body.shapeList
}

func (body *Body) EachShape(f func(*Shape)) {
	for i := 0; i < len(body.shapeList); i++ {
		f(body.shapeList[i])
	}
}
