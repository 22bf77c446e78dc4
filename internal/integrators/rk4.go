package integrators

import "math"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f VelocityFunc, p Point, ds float64) Point {
	u1, v1 := f(p.X, p.Y)
	u2, v2 := f(p.X+0.5*ds*u1, p.Y+0.5*ds*v1)
	u3, v3 := f(p.X+0.5*ds*u2, p.Y+0.5*ds*v2)
	u4, v4 := f(p.X+ds*u3, p.Y+ds*v3)

	ds6 := ds / 6.0
	return Point{
		X: p.X + ds6*(u1+2*u2+2*u3+u4),
		Y: p.Y + ds6*(v1+2*v2+2*v3+v4),
	}
}

// Unit wraps f so that it returns the unit direction of the flow. Tracing
// with a unit field advances by arc length rather than time.
func Unit(f VelocityFunc) VelocityFunc {
	return func(x, y float64) (float64, float64) {
		u, v := f(x, y)
		s := u*u + v*v
		if s == 0 {
			return 0, 0
		}
		n := 1 / math.Sqrt(s)
		return u * n, v * n
	}
}
