package integrators

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// VelocityFunc returns the flow velocity at (x, y). Returning a non-finite
// component tells a tracer that the point has left the field.
type VelocityFunc func(x, y float64) (u, v float64)

// Integrator advances a point along a velocity field by one step of size ds.
type Integrator interface {
	Step(f VelocityFunc, p Point, ds float64) Point
}
