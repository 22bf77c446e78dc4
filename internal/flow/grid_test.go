package flow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ezflow/internal/flow"
)

var _ = Describe("MeshGrid", func() {
	It("lays x along columns and y along rows", func() {
		g := flow.MeshGrid(-2, 2, 5, -1, 1, 3)
		rows, cols := g.Dims()
		Expect(rows).To(Equal(3))
		Expect(cols).To(Equal(5))

		Expect(g.X.RawRowView(0)).To(Equal([]float64{-2, -1, 0, 1, 2}))
		Expect(g.X.RawRowView(2)).To(Equal([]float64{-2, -1, 0, 1, 2}))
		for j := 0; j < cols; j++ {
			Expect(g.Y.At(0, j)).To(Equal(-1.0))
			Expect(g.Y.At(1, j)).To(Equal(0.0))
			Expect(g.Y.At(2, j)).To(Equal(1.0))
		}
	})

	It("reports its bounds", func() {
		g := flow.MeshGrid(-3, 4, 8, 0.5, 2.5, 5)
		xMin, xMax, yMin, yMax := g.Bounds()
		Expect([]float64{xMin, xMax, yMin, yMax}).To(Equal([]float64{-3, 4, 0.5, 2.5}))
	})

	It("returns the sample coordinates", func() {
		g := flow.MeshGrid(0, 1, 3, 10, 20, 2)
		x, y := g.At(1, 2)
		Expect(x).To(Equal(1.0))
		Expect(y).To(Equal(20.0))
	})
})

var _ = Describe("Linspace", func() {
	It("includes both endpoints", func() {
		Expect(flow.Linspace(0, 1, 5)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})

	It("returns start for a single point", func() {
		Expect(flow.Linspace(3, 7, 1)).To(Equal([]float64{3}))
	})

	It("returns nothing for no points", func() {
		Expect(flow.Linspace(3, 7, 0)).To(BeEmpty())
	})
})

var _ = Describe("NewGrid", func() {
	It("rejects mismatched shapes", func() {
		X := mat.NewDense(2, 3, nil)
		Y := mat.NewDense(3, 2, nil)
		Expect(func() { flow.NewGrid(X, Y) }).To(PanicWith(mat.ErrShape))
	})
})
