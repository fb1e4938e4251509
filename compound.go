package collide

import (
	"fmt"
	"log/slog"
)

// Compound groups convex parts that share one local space. Queries against a compound
// only reach the parts whose boxes touch the other shape.
type Compound struct {
	parts []Convex
	bb    BB
}

// NewCompoundClass builds a compound from leaf classes. Compound parts are flattened
// into the new compound.
func NewCompoundClass(parts ...ShapeClass) (*Compound, error) {
	compound := &Compound{bb: EmptyBB()}
	for _, part := range parts {
		switch part := part.(type) {
		case *Compound:
			slog.Warn("collide: flattening nested compound", "parts", len(part.parts))
			for _, p := range part.parts {
				compound.add(p)
			}
		case Convex:
			compound.add(part)
		default:
			panic(fmt.Sprintf("collide: unknown shape class %T", part))
		}
	}
	if len(compound.parts) == 0 {
		return nil, fmt.Errorf("compound: %w", ErrEmptyShape)
	}
	return compound, nil
}

func NewCompound(body *Body, parts ...ShapeClass) (*Shape, error) {
	compound, err := NewCompoundClass(parts...)
	if err != nil {
		return nil, err
	}
	return NewShape(compound, body), nil
}

func (compound *Compound) add(part Convex) {
	compound.parts = append(compound.parts, part)
	compound.bb = compound.bb.Merge(part.BB())
}

func (*Compound) shapeClass() {}

func (compound *Compound) BB() BB {
	return compound.bb
}

func (compound *Compound) Center() Vector {
	return compound.bb.Center()
}

func (compound *Compound) Parts() []Convex {
	return compound.parts
}

// Query returns the parts whose local boxes intersect region, given in the compound's local space.
func (compound *Compound) Query(region BB) []Convex {
	var hits []Convex
	for _, part := range compound.parts {
		if part.BB().Intersects(region) {
			hits = append(hits, part)
		}
	}
	return hits
}
