package scale_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bubbleplot/internal/scale"
)

var _ = Describe("Radius", func() {
	It("maps the max observed value to the upper range bound", func() {
		r := scale.NewRadius([]string{"3", "10", "7"}, 500)
		Expect(r.Map("10")).To(BeNumerically("~", 25, 1e-9)) // 500/20
	})

	It("maps the domain floor to the lower range bound", func() {
		r := scale.NewRadius([]string{"1", "10"}, 500)
		Expect(r.Map("1")).To(BeNumerically("~", 5, 1e-9)) // 500/100
	})

	It("falls back to height/40 when nothing parses", func() {
		r := scale.NewRadius([]string{"a", "b"}, 400)
		Expect(r.Map("a")).To(Equal(10.0))
		Expect(r.Map("5")).To(Equal(10.0))
	})

	It("falls back to height/40 with no data", func() {
		r := scale.NewRadius(nil, 400)
		Expect(r.Map("3")).To(Equal(r.Fallback()))
	})

	It("uses the fallback for a malformed value on a live scale", func() {
		r := scale.NewRadius([]string{"2", "8"}, 400)
		Expect(r.Map("not-a-number")).To(Equal(r.Fallback()))
	})
})

var _ = Describe("Color", func() {
	Context("with a declared domain", func() {
		c := scale.NewColor(
			[]string{"red", "green", "blue"},
			[]string{"#ff0000", "#00ff00", "#0000ff"},
			nil,
		)

		It("returns the declared range entry for every domain value", func() {
			Expect(c.Map("red")).To(Equal("#ff0000"))
			Expect(c.Map("green")).To(Equal("#00ff00"))
			Expect(c.Map("blue")).To(Equal("#0000ff"))
		})

		It("returns the fallback fill for values outside the domain", func() {
			Expect(c.Map("magenta")).To(Equal(scale.FallbackFill))
			Expect(c.Map("")).To(Equal(scale.FallbackFill))
		})
	})

	Context("with an empty domain and a two-color range", func() {
		c := scale.NewColor(nil, []string{"#000000", "#ffffff"}, []string{"0", "100"})

		It("maps the extremes to the range endpoints", func() {
			Expect(c.Map("0")).To(Equal("#000000"))
			Expect(c.Map("100")).To(Equal("#ffffff"))
		})

		It("blends in between", func() {
			mid := c.Map("50")
			Expect(mid).NotTo(Equal("#000000"))
			Expect(mid).NotTo(Equal("#ffffff"))
			Expect(mid).NotTo(Equal(scale.FallbackFill))
		})

		It("uses the fallback fill for malformed values", func() {
			Expect(c.Map("fifty")).To(Equal(scale.FallbackFill))
		})
	})

	It("degrades to the fallback fill with no usable range", func() {
		c := scale.NewColor(nil, []string{"#abc"}, []string{"1"})
		Expect(c.Map("1")).To(Equal(scale.FallbackFill))
	})
})

var _ = Describe("Axis", func() {
	Context("ordinal", func() {
		a := scale.NewAxis([]string{"a", "b", "c", "d"}, nil, 800)

		It("maps the k-th category to the center of the k-th band", func() {
			Expect(a.Map("a")).To(BeNumerically("~", 100, 1e-9))
			Expect(a.Map("b")).To(BeNumerically("~", 300, 1e-9))
			Expect(a.Map("c")).To(BeNumerically("~", 500, 1e-9))
			Expect(a.Map("d")).To(BeNumerically("~", 700, 1e-9))
		})

		It("maps unknown categories to the span center", func() {
			Expect(a.Map("z")).To(Equal(400.0))
		})

		It("reports itself ordinal", func() {
			Expect(a.Ordinal()).To(BeTrue())
		})
	})

	Context("continuous", func() {
		a := scale.NewAxis(nil, []string{"10", "80"}, 500)

		It("maps zero to the lower inset bound", func() {
			Expect(a.Map("0")).To(BeNumerically("~", 40, 1e-9))
		})

		It("maps the max to the upper inset bound", func() {
			Expect(a.Map("80")).To(BeNumerically("~", 460, 1e-9))
		})

		It("maps interior values linearly", func() {
			// 40 + 10/80*(460-40)
			Expect(a.Map("10")).To(BeNumerically("~", 92.5, 1e-9))
		})

		It("maps malformed values to the span center", func() {
			Expect(a.Map("eighty")).To(Equal(250.0))
		})
	})

	It("maps everything to the center when no value parses", func() {
		a := scale.NewAxis(nil, []string{"x", "y"}, 600)
		Expect(a.Map("x")).To(Equal(300.0))
		Expect(a.Map("5")).To(Equal(300.0))
	})
})

var _ = Describe("Linear", func() {
	It("interpolates and extrapolates", func() {
		l := scale.NewLinear(0, 10, 0, 100)
		Expect(l.Map(5)).To(Equal(50.0))
		Expect(l.Map(12)).To(Equal(120.0))
	})

	It("collapses to the range midpoint on a degenerate domain", func() {
		l := scale.NewLinear(3, 3, 0, 10)
		Expect(l.Map(3)).To(Equal(5.0))
	})
})
