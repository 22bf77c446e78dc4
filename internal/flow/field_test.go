package flow_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ezflow/internal/flow"
)

var _ = Describe("Superpose", func() {
	g := flow.MeshGrid(-2.05, 2.05, 12, -1.05, 1.05, 8)

	It("sums the sources sample by sample", func() {
		a := flow.Vortex{Strength: 5, X: 0, Y: 0.5}
		b := flow.Vortex{Strength: -5, X: 0, Y: -0.5}
		fa, fb := a.Field(g), b.Field(g)
		sum := flow.Superpose(g, a, b)

		rows, cols := g.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				Expect(sum.U.At(i, j)).To(BeNumerically("~", fa.U.At(i, j)+fb.U.At(i, j), tol))
				Expect(sum.V.At(i, j)).To(BeNumerically("~", fa.V.At(i, j)+fb.V.At(i, j), tol))
				Expect(sum.Psi.At(i, j)).To(BeNumerically("~", fa.Psi.At(i, j)+fb.Psi.At(i, j), tol))
			}
		}
	})

	It("drops psi when a source has none", func() {
		sum := flow.Superpose(g, flow.Vortex{Strength: 1}, flow.VortexRow{Strength: 1, Spacing: 1})
		Expect(sum.Psi).To(BeNil())
		Expect(sum.U).NotTo(BeNil())
	})

	It("is still without sources", func() {
		sum := flow.Superpose(g)
		Expect(sum.NonFinite()).To(BeZero())
		Expect(sum.U.At(3, 3)).To(BeZero())
		Expect(sum.V.At(3, 3)).To(BeZero())
	})
})

var _ = Describe("Field", func() {
	It("computes the speed", func() {
		g := flow.MeshGrid(1, 2, 2, 0, 0, 1)
		f := flow.Vortex{Strength: 2 * math.Pi}.Field(g)
		s := f.Speed()
		Expect(s.At(0, 0)).To(BeNumerically("~", 1, tol))
		Expect(s.At(0, 1)).To(BeNumerically("~", 0.5, tol))
	})

	It("counts non-finite samples", func() {
		g := flow.MeshGrid(-1, 1, 3, -1, 1, 3)
		f := flow.Vortex{Strength: 1}.Field(g)
		Expect(f.NonFinite()).To(Equal(1))
	})
})
