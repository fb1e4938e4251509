package collide

type Circle struct {
	c Vector
	r float64
}

// NewCircleClass returns a circle of the given radius centered at offset in local space.
func NewCircleClass(radius float64, offset Vector) *Circle {
	return &Circle{
		c: offset,
		r: radius,
	}
}

func NewCircle(body *Body, radius float64, offset Vector) *Shape {
	return NewShape(NewCircleClass(radius, offset), body)
}

func (*Circle) shapeClass() {}

func (circle *Circle) Radius() float64 {
	return circle.r
}

func (circle *Circle) Offset() Vector {
	return circle.c
}

func (circle *Circle) BB() BB {
	return NewBBForCircle(circle.c, circle.r)
}

func (circle *Circle) Center() Vector {
	return circle.c
}

func (circle *Circle) Support(n Vector) Vector {
	return circle.c.Add(normalize(n).Mul(circle.r))
}
