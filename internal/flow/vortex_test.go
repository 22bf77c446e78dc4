package flow_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ezflow/internal/flow"
)

const tol = 1e-12

func single(x, y float64) (*mat.Dense, *mat.Dense) {
	return mat.NewDense(1, 1, []float64{x}), mat.NewDense(1, 1, []float64{y})
}

var _ = Describe("VortexField", func() {
	It("matches the closed form to the right of a unit vortex", func() {
		X, Y := single(1, 0)
		u, v, psi := flow.VortexField(1, 0, 0, X, Y)
		Expect(u.At(0, 0)).To(BeNumerically("~", 0, tol))
		Expect(v.At(0, 0)).To(BeNumerically("~", -1/(2*math.Pi), tol))
		Expect(v.At(0, 0)).To(BeNumerically("~", -0.159155, 1e-6))
		Expect(psi.At(0, 0)).To(BeNumerically("~", 0, tol))
	})

	It("keeps the speed constant on a circle around the vortex", func() {
		const r = 0.7
		xs := make([]float64, 16)
		ys := make([]float64, 16)
		for k := range xs {
			th := 2 * math.Pi * float64(k) / float64(len(xs))
			xs[k] = 1.5 + r*math.Cos(th)
			ys[k] = -0.5 + r*math.Sin(th)
		}
		X := mat.NewDense(4, 4, xs)
		Y := mat.NewDense(4, 4, ys)
		u, v, _ := flow.VortexField(3, 1.5, -0.5, X, Y)

		want := 3 / (2 * math.Pi * r)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				Expect(math.Hypot(u.At(i, j), v.At(i, j))).To(BeNumerically("~", want, 1e-9))
			}
		}
	})

	It("decays as 1/r", func() {
		X := mat.NewDense(1, 4, []float64{1, 2, 4, 8})
		Y := mat.NewDense(1, 4, []float64{0, 0, 0, 0})
		u, v, _ := flow.VortexField(2, 0, 0, X, Y)
		for j := 0; j < 4; j++ {
			r := X.At(0, j)
			speed := math.Hypot(u.At(0, j), v.At(0, j))
			Expect(speed * r).To(BeNumerically("~", 2/(2*math.Pi), 1e-12))
		}
	})

	It("changes sign with the strength", func() {
		g := flow.MeshGrid(-1.05, 1.05, 11, -0.95, 0.95, 7)
		u1, v1, p1 := flow.VortexField(2.5, 0.1, 0.2, g.X, g.Y)
		u2, v2, p2 := flow.VortexField(-2.5, 0.1, 0.2, g.X, g.Y)
		rows, cols := g.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				Expect(u2.At(i, j)).To(Equal(-u1.At(i, j)))
				Expect(v2.At(i, j)).To(Equal(-v1.At(i, j)))
				Expect(p2.At(i, j)).To(Equal(-p1.At(i, j)))
			}
		}
	})

	It("grows psi with distance for positive strength", func() {
		X := mat.NewDense(1, 5, []float64{0.1, 0.5, 1, 3, 10})
		Y := mat.NewDense(1, 5, nil)
		_, _, psi := flow.VortexField(1, 0, 0, X, Y)
		for j := 1; j < 5; j++ {
			Expect(psi.At(0, j)).To(BeNumerically(">", psi.At(0, j-1)))
		}
	})

	It("does not guard the vortex center", func() {
		X, Y := single(0.3, -0.2)
		u, v, psi := flow.VortexField(1, 0.3, -0.2, X, Y)
		Expect(math.IsNaN(u.At(0, 0))).To(BeTrue())
		Expect(math.IsNaN(v.At(0, 0))).To(BeTrue())
		Expect(math.IsInf(psi.At(0, 0), -1)).To(BeTrue())
	})

	It("returns outputs shaped like the grid", func() {
		g := flow.MeshGrid(-1, 1, 9, -1, 1, 4)
		u, v, psi := flow.VortexField(1, 5, 5, g.X, g.Y)
		for _, m := range []*mat.Dense{u, v, psi} {
			r, c := m.Dims()
			Expect([]int{r, c}).To(Equal([]int{4, 9}))
		}
	})

	It("leaves the grid untouched", func() {
		g := flow.MeshGrid(-1, 1, 3, -1, 1, 3)
		X := mat.DenseCopyOf(g.X)
		Y := mat.DenseCopyOf(g.Y)
		flow.VortexField(1, 0, 0, g.X, g.Y)
		Expect(mat.Equal(X, g.X)).To(BeTrue())
		Expect(mat.Equal(Y, g.Y)).To(BeTrue())
	})

	It("panics on mismatched grids", func() {
		X := mat.NewDense(2, 2, nil)
		Y := mat.NewDense(2, 3, nil)
		Expect(func() { flow.VortexField(1, 0, 0, X, Y) }).To(PanicWith(mat.ErrShape))
	})
})
