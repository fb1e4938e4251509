package collide

import (
	"fmt"
	"math"
)

// PolyLine is an open or closed chain of vertices. A closed line repeats its first vertex at the end.
type PolyLine struct {
	Verts []Vector
}

func next(i, count int) int {
	return (i + 1) % count
}

// Sharpness is the cosine of the angle at b; -1 when a, b and c are in a straight line.
func Sharpness(a, b, c Vector) float64 {
	return normalize(a.Sub(b)).Dot(normalize(c.Sub(b)))
}

func (pl *PolyLine) Push(v Vector) *PolyLine {
	pl.Verts = append(pl.Verts, v)
	return pl
}

func (pl *PolyLine) IsClosed() bool {
	return len(pl.Verts) > 1 && pl.Verts[0] == pl.Verts[len(pl.Verts)-1]
}

func isShort(verts []Vector, count, start, end int, min float64) bool {
	var length float64
	for i := start; i != end; i = next(i, count) {
		length += verts[next(i, count)].Sub(verts[i]).Len()
		if length > min {
			return false
		}
	}
	return true
}

// loopIndexes finds the lowest-leftmost and highest-rightmost vertices of a loop.
func loopIndexes(verts []Vector, count int) (start, end int) {
	min, max := verts[0], verts[0]
	for i := 1; i < count; i++ {
		v := verts[i]
		if v[0] < min[0] || (v[0] == min[0] && v[1] < min[1]) {
			min = v
			start = i
		} else if v[0] > max[0] || (v[0] == max[0] && v[1] > max[1]) {
			max = v
			end = i
		}
	}
	return start, end
}

// SimplifyVertexes joins adjacent segments that are nearly straight. Works well for hard edged shapes.
// tol is the smallest angle, in radians, a kept vertex turns by.
func (pl *PolyLine) SimplifyVertexes(tol float64) *PolyLine {
	if len(pl.Verts) < 3 {
		return &PolyLine{Verts: append([]Vector(nil), pl.Verts...)}
	}
	reduced := &PolyLine{Verts: []Vector{pl.Verts[0], pl.Verts[1]}}
	minSharp := -math.Cos(tol)

	for i := 2; i < len(pl.Verts); i++ {
		vert := pl.Verts[i]
		last := len(reduced.Verts) - 1
		if Sharpness(reduced.Verts[last-1], reduced.Verts[last], vert) <= minSharp {
			reduced.Verts[last] = vert
		} else {
			reduced.Push(vert)
		}
	}

	n := len(reduced.Verts)
	if pl.IsClosed() && n > 3 && Sharpness(reduced.Verts[n-2], reduced.Verts[0], reduced.Verts[1]) < minSharp {
		reduced.Verts[0] = reduced.Verts[n-2]
		reduced.Verts = reduced.Verts[:n-1]
	}
	return reduced
}

func douglasPeucker(verts []Vector, reduced *PolyLine, length, start, end int, min, tol float64) *PolyLine {
	// Adjacent points have nothing between them.
	if (end-start+length)%length < 2 {
		return reduced
	}

	a := verts[start]
	b := verts[end]
	if a.Sub(b).Len() < min && isShort(verts, length, start, end, min) {
		return reduced
	}

	var max float64
	maxi := start

	n := normalize(perp(b.Sub(a)))
	d := n.Dot(a)
	for i := next(start, length); i != end; i = next(i, length) {
		if dist := math.Abs(n.Dot(verts[i]) - d); dist > max {
			max = dist
			maxi = i
		}
	}

	if max > tol {
		reduced = douglasPeucker(verts, reduced, length, start, maxi, min, tol)
		reduced.Push(verts[maxi])
		reduced = douglasPeucker(verts, reduced, length, maxi, end, min, tol)
	}
	return reduced
}

// SimplifyCurves drops vertices that lie within tol of the line between their neighbours.
// Works best for smooth shapes. The result never strays further than tol from pl.
func (pl *PolyLine) SimplifyCurves(tol float64) *PolyLine {
	reduced := &PolyLine{}
	if len(pl.Verts) < 3 {
		reduced.Verts = append(reduced.Verts, pl.Verts...)
		return reduced
	}
	min := tol / 2.0

	if pl.IsClosed() {
		count := len(pl.Verts) - 1
		start, end := loopIndexes(pl.Verts, count)

		reduced.Push(pl.Verts[start])
		reduced = douglasPeucker(pl.Verts, reduced, count, start, end, min, tol)
		reduced.Push(pl.Verts[end])
		reduced = douglasPeucker(pl.Verts, reduced, count, end, start, min, tol)
		reduced.Push(pl.Verts[start])
	} else {
		last := len(pl.Verts) - 1
		reduced.Push(pl.Verts[0])
		reduced = douglasPeucker(pl.Verts, reduced, len(pl.Verts), 0, last, min, tol)
		reduced.Push(pl.Verts[last])
	}
	return reduced
}

// NewPolyLineCompoundClass turns each segment of pl into a capsule of the given radius.
// Zero length segments are skipped.
func NewPolyLineCompoundClass(pl *PolyLine, radius float64) (*Compound, error) {
	var parts []ShapeClass
	for i := 0; i+1 < len(pl.Verts); i++ {
		a, b := pl.Verts[i], pl.Verts[i+1]
		if a == b {
			continue
		}
		parts = append(parts, NewSegmentClass(a, b, radius))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("polyline: %w", ErrEmptyShape)
	}
	return NewCompoundClass(parts...)
}

// NewPolyLineCompound attaches a capsule chain following pl to body, for terrain and walls.
func NewPolyLineCompound(body *Body, pl *PolyLine, radius float64) (*Shape, error) {
	compound, err := NewPolyLineCompoundClass(pl, radius)
	if err != nil {
		return nil, err
	}
	return NewShape(compound, body), nil
}
