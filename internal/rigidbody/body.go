package rigidbody

import "fmt"

// StaticMassThreshold is the mass (or moment of inertia) above which a
// body is treated as immovable: its inverse appears as 0 in all dynamics.
const StaticMassThreshold = 1e12

// BodyState pairs a displacement and a velocity of the same type T,
// instantiated as Vector for linear motion and float64 for angular motion.
type BodyState[T any] struct {
	Displacement T
	Velocity     T
}

// Properties holds a body's mass and moment of inertia. Both are strictly
// positive and finite by construction; a value at or above
// StaticMassThreshold encodes "immovable".
type Properties struct {
	Mass float64
	MOI  float64
}

// InvMass returns the inverse mass used throughout impulse dynamics, 0 for
// an effectively-static body.
func (p Properties) InvMass() float64 {
	if p.Mass >= StaticMassThreshold || p.Mass <= 0 {
		return 0
	}
	return 1 / p.Mass
}

// InvMOI returns the inverse moment of inertia, 0 for an effectively-static
// body.
func (p Properties) InvMOI() float64 {
	if p.MOI >= StaticMassThreshold || p.MOI <= 0 {
		return 0
	}
	return 1 / p.MOI
}

// Polygon is an ordered list of vertices in local (body) coordinates; it
// must have at least 3 vertices and may be concave.
type Polygon []Vector

// Rectangle returns an axis-aligned rectangle of the given width and
// height, centered on the local origin, vertices in CCW order.
func Rectangle(width, height float64) Polygon {
	w, h := width/2, height/2
	return Polygon{
		{X: w, Y: h},
		{X: -w, Y: h},
		{X: -w, Y: -h},
		{X: w, Y: -h},
	}
}

// Body is a uniquely-named rigid body: a shape in local coordinates, linear
// and angular state, mass/inertia, and an opaque display color.
type Body struct {
	Name    string
	Shape   Polygon
	Linear  BodyState[Vector]
	Angular BodyState[float64]
	Props   Properties
	Color   string
}

// NewRectangleBody constructs a body with a centered rectangular shape,
// linear velocity (vx, vy) and zero angular velocity, matching the
// width/height/x/y/vx/vy/theta construction inputs of the engine's
// external interface.
func NewRectangleBody(name string, mass, width, height, x, y, vx, vy, theta float64) (Body, error) {
	if name == "" {
		return Body{}, fmt.Errorf("rigidbody: body name must not be empty")
	}
	if mass <= 0 {
		return Body{}, fmt.Errorf("rigidbody: body %q mass must be positive, got %g", name, mass)
	}
	moi := mass / 12.0 * (width*width + height*height)
	return Body{
		Name:  name,
		Shape: Rectangle(width, height),
		Linear: BodyState[Vector]{
			Displacement: Vector{X: x, Y: y},
			Velocity:     Vector{X: vx, Y: vy},
		},
		Angular: BodyState[float64]{
			Displacement: theta,
			Velocity:     0,
		},
		Props: Properties{Mass: mass, MOI: moi},
	}, nil
}

// WorldVertices transforms the body's local polygon into world space using
// its current displacement and rotation.
func (b Body) WorldVertices() []Vector {
	out := make([]Vector, len(b.Shape))
	for i, v := range b.Shape {
		out[i] = v.Rotate(b.Angular.Displacement).Add(b.Linear.Displacement)
	}
	return out
}
