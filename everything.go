package collide

import "errors"

var (
	ErrInvalidConfig = errors.New("collide: invalid config")
	ErrEmptyShape    = errors.New("collide: shape has no geometry")
)

// ColliderPair names the two leaf parts that produced a result, in the caller's order:
// A belongs to the query shape, B to the shape it was tested against.
type ColliderPair struct {
	A, B Convex
}

// CollisionInfo describes the overlap of the query shape with one registered shape.
type CollisionInfo struct {
	Collided bool
	// The shape that was hit, nil if nothing was.
	Shape *Shape
	// Every overlapping pair of leaf parts.
	Pairs []ColliderPair
}

type CollisionsInfo struct {
	Collided bool
	Hits     []CollisionInfo
}

// PairPushout is the minimum translation that moves leaf A out of leaf B.
type PairPushout struct {
	ColliderPair

	Vector Vector
	// Unit direction of Vector.
	Normal Vector
	Depth  float64
	// The solver ran out of iterations and Vector is a best effort.
	Approximate bool
}

type ShapePushout struct {
	Shape       *Shape
	Vector      Vector
	Approximate bool
	Pairs       []PairPushout
}

type PushoutInfo struct {
	Collided bool
	// Translation to apply to the query shape. Each axis carries the largest push
	// in either direction requested by any hit.
	Vector      Vector
	Approximate bool
	Hits        []ShapePushout
}

// PairSweep is the time of impact of two moving leaf parts.
type PairSweep struct {
	ColliderPair

	// Fraction of the requested motion that is safe, per axis.
	Fraction Vector
	// Surface normal of B at the contact, facing A.
	Normal      Vector
	Approximate bool
}

type ShapeSweep struct {
	Shape       *Shape
	Fraction    Vector
	Normal      Vector
	Approximate bool
	Pairs       []PairSweep
}

type SweepInfo struct {
	Collided bool
	// 1 on both axes when the full motion is safe.
	Fraction    Vector
	Normal      Vector
	Shape       *Shape
	Approximate bool
	Hits        []ShapeSweep
}

type RayInfo struct {
	SweepInfo

	// Where the ray stopped, in world space.
	Point Vector
}

// fullMotion is the fraction reported when nothing is hit.
func fullMotion() Vector {
	return Vector{1, 1}
}
