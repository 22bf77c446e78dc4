package integrators

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f VelocityFunc, p Point, ds float64) Point {
	u, v := f(p.X, p.Y)
	return Point{X: p.X + ds*u, Y: p.Y + ds*v}
}
