// Package flow evaluates closed-form 2D potential-flow fields on a sampling grid.
//
// Two kernels are provided:
//
//   - [VortexField]: velocity and streamfunction of a single point vortex
//   - [VortexRowField]: velocity of an infinite row of vortices spaced along x
//
// Both are pure element-wise evaluations over a [Grid]. Outputs are freshly
// allocated and the grid is only read. Singular samples (a vortex center, or a
// zero row spacing) are not guarded and follow IEEE-754 arithmetic, so callers
// that need finite output should check [Field.NonFinite].
//
// # Example
//
//	g := flow.MeshGrid(-2, 2, 50, -1, 1, 25)
//	u, v, psi := flow.VortexField(5, 0, 0, g.X, g.Y)
//
// Several sources can be combined with [Superpose]:
//
//	f := flow.Superpose(g, flow.Vortex{Strength: 5, Y: 0.5}, flow.Vortex{Strength: -5, Y: -0.5})
package flow
