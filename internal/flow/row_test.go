package flow_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ezflow/internal/flow"
)

var _ = Describe("VortexRowField", func() {
	It("matches the closed form a quarter spacing from a vortex", func() {
		X, Y := single(0.25, 0)
		u, v := flow.VortexRowField(1, 1, X, Y)
		Expect(u.At(0, 0)).To(BeNumerically("~", 0, tol))
		Expect(v.At(0, 0)).To(BeNumerically("~", -0.5, tol))
	})

	It("is periodic in x with the spacing", func() {
		const a = 1.3
		g := flow.MeshGrid(-0.47, 0.61, 9, -0.83, 0.79, 7)
		shifted := mat.NewDense(7, 9, nil)
		shifted.Apply(func(_, _ int, x float64) float64 { return x + a }, g.X)

		u1, v1 := flow.VortexRowField(2, a, g.X, g.Y)
		u2, v2 := flow.VortexRowField(2, a, shifted, g.Y)
		for i := 0; i < 7; i++ {
			for j := 0; j < 9; j++ {
				Expect(u2.At(i, j)).To(BeNumerically("~", u1.At(i, j), 1e-9))
				Expect(v2.At(i, j)).To(BeNumerically("~", v1.At(i, j), 1e-9))
			}
		}
	})

	It("is odd in x for v", func() {
		g := flow.MeshGrid(0.05, 0.95, 10, -0.9, 0.9, 6)
		neg := mat.NewDense(6, 10, nil)
		neg.Scale(-1, g.X)

		_, v1 := flow.VortexRowField(1.5, 2, g.X, g.Y)
		_, v2 := flow.VortexRowField(1.5, 2, neg, g.Y)
		for i := 0; i < 6; i++ {
			for j := 0; j < 10; j++ {
				Expect(v2.At(i, j)).To(BeNumerically("~", -v1.At(i, j), tol))
			}
		}
	})

	It("is odd in y for u", func() {
		g := flow.MeshGrid(0.1, 0.9, 5, 0.1, 0.9, 5)
		neg := mat.NewDense(5, 5, nil)
		neg.Scale(-1, g.Y)

		u1, _ := flow.VortexRowField(1, 1, g.X, g.Y)
		u2, _ := flow.VortexRowField(1, 1, g.X, neg)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				Expect(u2.At(i, j)).To(BeNumerically("~", -u1.At(i, j), tol))
			}
		}
	})

	It("has no cross-flow on the axis through a vortex", func() {
		ys := []float64{-2, -0.75, -0.1, 0.1, 0.75, 2}
		X := mat.NewDense(1, len(ys), nil)
		Y := mat.NewDense(1, len(ys), ys)
		_, v := flow.VortexRowField(3, 1, X, Y)
		for j := range ys {
			Expect(v.At(0, j)).To(BeNumerically("~", 0, tol))
		}
	})

	It("does not guard the vortex centers", func() {
		X := mat.NewDense(1, 3, []float64{-1, 0, 2})
		Y := mat.NewDense(1, 3, nil)
		u, v := flow.VortexRowField(1, 1, X, Y)
		f := flow.Field{U: u, V: v}
		Expect(f.NonFinite()).To(Equal(3))
	})

	It("does not reject a zero spacing", func() {
		X, Y := single(0.5, 0.5)
		u, v := flow.VortexRowField(1, 0, X, Y)
		Expect(math.IsNaN(u.At(0, 0)) || math.IsInf(u.At(0, 0), 0)).To(BeTrue())
		Expect(math.IsNaN(v.At(0, 0)) || math.IsInf(v.At(0, 0), 0)).To(BeTrue())
	})

	It("returns outputs shaped like the grid", func() {
		g := flow.MeshGrid(-1, 1, 6, 0.2, 1, 3)
		u, v := flow.VortexRowField(1, 1, g.X, g.Y)
		for _, m := range []*mat.Dense{u, v} {
			r, c := m.Dims()
			Expect([]int{r, c}).To(Equal([]int{3, 6}))
		}
	})
})
