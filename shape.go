package collide

// ShapeClass is the geometry behind a Shape. The set of kinds is closed:
// the leaf kinds (*Circle, *PolyShape, *Segment, *Point) and *Compound.
type ShapeClass interface {
	// BB is the bounding box in the class's local space.
	BB() BB
	// Center is a representative interior point in local space.
	Center() Vector

	shapeClass()
}

// Convex is implemented by every leaf kind.
type Convex interface {
	ShapeClass

	// Support returns the point of the shape furthest along n, in local space.
	Support(n Vector) Vector
}

// ShapeFilter decides which pairs of shapes are allowed to collide.
type ShapeFilter struct {
	// Two objects with the same non-zero group value do not collide.
	// This is generally used to group objects in a composite object together to disable self collisions.
	Group uint
	// A bitmask of user definable categories (tags) that this object belongs to.
	Categories uint
	// A bitmask of user definable category types that this object collides with.
	Mask uint
}

const ALL_CATEGORIES = ^uint(0)

var (
	// ShapeFilterAll collides with everything.
	ShapeFilterAll = ShapeFilter{Categories: ALL_CATEGORIES, Mask: ALL_CATEGORIES}
	// ShapeFilterNone collides with nothing.
	ShapeFilterNone = ShapeFilter{}
)

func NewShapeFilter(group, categories, mask uint) ShapeFilter {
	return ShapeFilter{group, categories, mask}
}

// Reject reports whether a pair must be skipped. A pair is kept when either side's mask
// names one of the other side's categories, so the test is not symmetric in what it allows
// each side to see.
func (a ShapeFilter) Reject(b ShapeFilter) bool {
	if a.Group != 0 && a.Group == b.Group {
		return true
	}
	return a.Mask&b.Categories == 0 && b.Mask&a.Categories == 0
}

// Shape is a collision component: a piece of geometry attached to a body.
type Shape struct {
	class ShapeClass
	body  *Body

	Filter   ShapeFilter
	UserData interface{}

	disabled bool
}

func NewShape(class ShapeClass, body *Body) *Shape {
	shape := &Shape{
		class:  class,
		body:   body,
		Filter: ShapeFilterAll,
	}
	if body != nil {
		body.AddShape(shape)
	}
	return shape
}

func (s *Shape) Class() ShapeClass {
	return s.class
}

func (s *Shape) Body() *Body {
	return s.body
}

// Transform returns the pose of the owning body, or identity for a shape without one.
func (s *Shape) Transform() Transform {
	if s.body == nil {
		return NewTransformIdentity()
	}
	return s.body.Transform()
}

// BB returns the world bounding box at the owning body's pose.
func (s *Shape) BB() BB {
	return s.Transform().BB(s.class.BB())
}

func (s *Shape) SetFilter(filter ShapeFilter) {
	s.Filter = filter
}

func (s *Shape) Enabled() bool {
	return !s.disabled
}

func (s *Shape) SetEnabled(enabled bool) {
	s.disabled = !enabled
}

// Active reports whether the shape takes part in queries: it and its body are both enabled.
func (s *Shape) Active() bool {
	return !s.disabled && (s.body == nil || s.body.Enabled())
}
