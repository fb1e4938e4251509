package collide

import (
	"log/slog"
	"slices"
)

// Space is the registry of shapes that queries are run against.
//
// A Space is not safe for concurrent use. While it is locked, which every query does for its
// own duration, AddShape, RemoveShape and RemoveAll are queued and applied in order by the
// Unlock call that releases the last lock.
type Space struct {
	cfg    Config
	solver *solver
	log    *slog.Logger

	shapes []*Shape

	locked            int
	pending           []pendingChange
	postStepCallbacks []PostStepCallback

	staticBody *Body
}

type pendingOp int

const (
	pendingAdd pendingOp = iota
	pendingRemove
	pendingRemoveAll
)

type pendingChange struct {
	op    pendingOp
	shape *Shape
}

type PostStepCallbackFunc func(space *Space, key interface{}, data interface{})

type PostStepCallback struct {
	callback PostStepCallbackFunc
	key      interface{}
	data     interface{}
}

func NewSpace() *Space {
	space, err := NewSpaceWithConfig(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return space
}

func NewSpaceWithConfig(cfg Config) (*Space, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	space := &Space{
		cfg:        cfg,
		log:        slog.Default(),
		staticBody: NewStaticBody(),
	}
	space.solver = newSolver(cfg, space.log)
	return space, nil
}

func (space *Space) Config() Config {
	return space.cfg
}

// SetLogger replaces the logger used for solver warnings. nil restores slog.Default().
func (space *Space) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	space.log = log
	space.solver.log = log
}

func (space *Space) Logger() *slog.Logger {
	return space.log
}

// StaticBody is a body owned by the space for level geometry.
func (space *Space) StaticBody() *Body {
	return space.staticBody
}

func (space *Space) IsLocked() bool {
	return space.locked > 0
}

// AddShape registers shape. Adding a registered shape again has no effect.
func (space *Space) AddShape(shape *Shape) *Shape {
	if space.locked > 0 {
		space.pending = append(space.pending, pendingChange{pendingAdd, shape})
		return shape
	}
	if !space.Contains(shape) {
		space.shapes = append(space.shapes, shape)
	}
	return shape
}

func (space *Space) RemoveShape(shape *Shape) {
	if space.locked > 0 {
		space.pending = append(space.pending, pendingChange{pendingRemove, shape})
		return
	}
	i := slices.Index(space.shapes, shape)
	if i < 0 {
		space.log.Warn("collide: removing a shape that is not in the space", "body", shape.Body())
		return
	}
	space.shapes = slices.Delete(space.shapes, i, i+1)
}

func (space *Space) RemoveAll() {
	if space.locked > 0 {
		space.pending = append(space.pending, pendingChange{op: pendingRemoveAll})
		return
	}
	clear(space.shapes)
	space.shapes = space.shapes[:0]
}

func (space *Space) Contains(shape *Shape) bool {
	return slices.Contains(space.shapes, shape)
}

// Count returns the number of registered shapes. Changes queued while locked are not counted.
func (space *Space) Count() int {
	return len(space.shapes)
}

// Shapes returns a copy of the registry in registration order.
func (space *Space) Shapes() []*Shape {
	return slices.Clone(space.shapes)
}

func (space *Space) EachShape(f func(*Shape)) {
	space.Lock()
	defer space.Unlock(true)

	for _, shape := range space.shapes {
		f(shape)
	}
}

// AddPostStepCallback schedules f to run once the space is unlocked. Only one callback
// is kept per key; it returns false if key was already scheduled.
// When the space is not locked f runs immediately.
func (space *Space) AddPostStepCallback(f PostStepCallbackFunc, key, data interface{}) bool {
	if space.locked == 0 {
		f(space, key, data)
		return true
	}
	for _, cb := range space.postStepCallbacks {
		if cb.key == key {
			return false
		}
	}
	space.postStepCallbacks = append(space.postStepCallbacks, PostStepCallback{f, key, data})
	return true
}

func (space *Space) Lock() {
	space.locked++
}

// Unlock releases a lock. Releasing the last one applies queued registry changes and,
// when runPostStep is set, runs the post-step callbacks.
func (space *Space) Unlock(runPostStep bool) {
	space.locked--
	if space.locked < 0 {
		panic("collide: space lock underflow")
	}
	if space.locked != 0 {
		return
	}

	pending := space.pending
	space.pending = nil
	for _, change := range pending {
		switch change.op {
		case pendingAdd:
			space.AddShape(change.shape)
		case pendingRemove:
			space.RemoveShape(change.shape)
		case pendingRemoveAll:
			space.RemoveAll()
		}
	}

	if !runPostStep {
		return
	}
	// Callbacks may lock the space again and queue more callbacks.
	for len(space.postStepCallbacks) > 0 && space.locked == 0 {
		callbacks := space.postStepCallbacks
		space.postStepCallbacks = nil
		for _, cb := range callbacks {
			cb.callback(space, cb.key, cb.data)
		}
	}
}

// eligible reports whether other takes part in a query made by shape.
func (space *Space) eligible(shape, other *Shape) bool {
	if other == shape || !other.Active() {
		return false
	}
	if shape.body != nil && shape.body == other.body {
		return false
	}
	return !shape.Filter.Reject(other.Filter)
}
