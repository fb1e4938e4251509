package collide

import (
	"cmp"
	"fmt"
	"slices"
)

type PolyShape struct {
	// Hull vertices in counter-clockwise order, local space.
	verts []Vector
	r     float64

	bb       BB
	centroid Vector
}

// NewPolyShapeClass builds the convex hull of verts after applying transform to them.
// A non-zero radius rounds the corners.
func NewPolyShapeClass(verts []Vector, transform Transform, radius float64) (*PolyShape, error) {
	if len(verts) == 0 {
		return nil, fmt.Errorf("polygon: %w", ErrEmptyShape)
	}

	hullVerts := make([]Vector, 0, len(verts))
	for _, vert := range verts {
		hullVerts = append(hullVerts, transform.Point(vert))
	}

	return NewPolyShapeRaw(ConvexHull(hullVerts, 0), radius), nil
}

// NewPolyShapeRaw uses verts as they are. They must already describe a convex,
// counter-clockwise polygon.
func NewPolyShapeRaw(verts []Vector, radius float64) *PolyShape {
	poly := &PolyShape{
		verts: slices.Clone(verts),
		r:     radius,
	}

	bb := EmptyBB()
	sum := Vector{}
	for _, v := range poly.verts {
		bb = bb.Expand(v)
		sum = sum.Add(v)
	}
	poly.bb = BB{bb.L - radius, bb.B - radius, bb.R + radius, bb.T + radius}
	poly.centroid = sum.Mul(1.0 / float64(len(poly.verts)))
	return poly
}

func NewPolyShape(body *Body, verts []Vector, transform Transform, radius float64) (*Shape, error) {
	poly, err := NewPolyShapeClass(verts, transform, radius)
	if err != nil {
		return nil, err
	}
	return NewShape(poly, body), nil
}

// NewBoxClass returns a w by h box centered on the local origin.
func NewBoxClass(w, h, r float64) *PolyShape {
	hw := w / 2.0
	hh := h / 2.0
	bb := BB{-hw, -hh, hw, hh}
	verts := []Vector{
		{bb.R, bb.B},
		{bb.R, bb.T},
		{bb.L, bb.T},
		{bb.L, bb.B},
	}
	return NewPolyShapeRaw(verts, r)
}

func NewBox(body *Body, w, h, r float64) *Shape {
	return NewShape(NewBoxClass(w, h, r), body)
}

// NewBoxClassForBB returns a box covering bb in local space.
func NewBoxClassForBB(bb BB, r float64) *PolyShape {
	verts := []Vector{
		{bb.R, bb.B},
		{bb.R, bb.T},
		{bb.L, bb.T},
		{bb.L, bb.B},
	}
	return NewPolyShapeRaw(verts, r)
}

func (*PolyShape) shapeClass() {}

func (poly *PolyShape) Count() int {
	return len(poly.verts)
}

func (poly *PolyShape) Vert(i int) Vector {
	return poly.verts[i]
}

// Verts returns a copy of the hull.
func (poly *PolyShape) Verts() []Vector {
	return slices.Clone(poly.verts)
}

func (poly *PolyShape) Radius() float64 {
	return poly.r
}

func (poly *PolyShape) BB() BB {
	return poly.bb
}

func (poly *PolyShape) Center() Vector {
	return poly.centroid
}

func (poly *PolyShape) Support(n Vector) Vector {
	p := poly.verts[PolySupportPointIndex(poly.verts, n)]
	if poly.r == 0 {
		return p
	}
	return p.Add(normalize(n).Mul(poly.r))
}

// PolySupportPointIndex returns the index of the vertex furthest along n.
// Ties keep the first vertex found.
func PolySupportPointIndex(verts []Vector, n Vector) int {
	max := -INFINITY
	var index int
	for i, v := range verts {
		d := v.Dot(n)
		if d > max {
			max = d
			index = i
		}
	}
	return index
}

// ConvexHull returns the counter-clockwise convex hull of verts.
// Points closer than tol (relative to the edge length) to a hull edge are dropped.
func ConvexHull(verts []Vector, tol float64) []Vector {
	pts := slices.Clone(verts)
	slices.SortFunc(pts, func(a, b Vector) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	pts = slices.Compact(pts)
	if len(pts) <= 2 {
		return pts
	}

	keep := func(hull []Vector, p Vector) bool {
		a := hull[len(hull)-2]
		b := hull[len(hull)-1]
		delta := b.Sub(a)
		return cross(delta, p.Sub(a)) > tol*delta.Len()
	}

	hull := make([]Vector, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && !keep(hull, p) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && !keep(hull, p) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
