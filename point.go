package collide

// Point is a single location. Rays are swept points.
type Point struct {
	p Vector
}

func NewPointClass(p Vector) *Point {
	return &Point{p}
}

func NewPoint(body *Body, p Vector) *Shape {
	return NewShape(NewPointClass(p), body)
}

func (*Point) shapeClass() {}

func (point *Point) BB() BB {
	return BB{point.p[0], point.p[1], point.p[0], point.p[1]}
}

func (point *Point) Center() Vector {
	return point.p
}

func (point *Point) Support(Vector) Vector {
	return point.p
}
