package ratio_test

import (
	"math"
	"testing"

	"github.com/okian/xpdash/internal/domain/ratio"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeAuditRatio(t *testing.T) {
	Convey("Given audit totals", t, func() {
		Convey("When nothing was given or received", func() {
			So(ratio.ComputeAuditRatio(0, 0).Ratio, ShouldEqual, "0.00")
		})

		Convey("When points were only given", func() {
			So(ratio.ComputeAuditRatio(5, 0).Ratio, ShouldEqual, "∞")
		})

		Convey("When both sides have points", func() {
			So(ratio.ComputeAuditRatio(10, 5).Ratio, ShouldEqual, "2.00")
			So(ratio.ComputeAuditRatio(3, 10).Ratio, ShouldEqual, "0.30")
			So(ratio.ComputeAuditRatio(2, 3).Ratio, ShouldEqual, "0.67")
		})

		Convey("When the quotient sits just below a rounding boundary", func() {
			So(ratio.ComputeAuditRatio(1.0049999999, 1).Ratio, ShouldEqual, "1.00")
			So(ratio.ComputeAuditRatio(2.0049999996, 2).Ratio, ShouldEqual, "1.00")
		})

		Convey("When a side is NaN", func() {
			So(func() { ratio.ComputeAuditRatio(math.NaN(), 5) }, ShouldNotPanic)
			So(ratio.ComputeAuditRatio(math.NaN(), 5).Ratio, ShouldEqual, "0.00")
			So(ratio.ComputeAuditRatio(5, math.NaN()).Ratio, ShouldEqual, "∞")
			So(ratio.ComputeAuditRatio(math.NaN(), math.NaN()).Ratio, ShouldEqual, "0.00")
			So(ratio.ComputeAuditRatio(math.NaN(), 5).Up, ShouldEqual, 0)
		})

		Convey("When a side is infinite", func() {
			So(func() { ratio.ComputeAuditRatio(math.Inf(1), 5) }, ShouldNotPanic)
			So(ratio.ComputeAuditRatio(math.Inf(1), 5).Ratio, ShouldEqual, "∞")
			So(ratio.ComputeAuditRatio(math.Inf(1), 0).Ratio, ShouldEqual, "∞")
			So(ratio.ComputeAuditRatio(3, math.Inf(1)).Ratio, ShouldEqual, "0.00")
			So(ratio.ComputeAuditRatio(math.Inf(1), math.Inf(1)).Ratio, ShouldEqual, "0.00")
			So(ratio.ComputeAuditRatio(math.Inf(-1), 5).Ratio, ShouldEqual, "0.00")
		})

		Convey("When the quotient overflows", func() {
			So(ratio.ComputeAuditRatio(math.MaxFloat64, 1e-300).Ratio, ShouldEqual, "∞")
		})

		Convey("Then totals are carried through", func() {
			agg := ratio.ComputeAuditRatio(1200, 800)
			So(agg.Up, ShouldEqual, 1200)
			So(agg.Down, ShouldEqual, 800)
			So(agg.Ratio, ShouldEqual, "1.50")
		})
	})
}

func TestComputeGaugeFill(t *testing.T) {
	Convey("Given ratios across the gauge domain", t, func() {
		Convey("Then infinity fills the gauge in the good band", func() {
			g := ratio.ComputeGaugeFill(math.Inf(1))
			So(g.Fraction, ShouldEqual, 1)
			So(g.Band, ShouldEqual, ratio.BandGood)

			s := ratio.GaugeFillFromString("∞")
			So(s.Fraction, ShouldEqual, 1)
			So(s.Band, ShouldEqual, ratio.BandGood)

			So(ratio.GaugeFillFromString("Infinity").Fraction, ShouldEqual, 1)
		})

		Convey("And ratios at or above 2 saturate", func() {
			So(ratio.ComputeGaugeFill(2).Fraction, ShouldEqual, 1)
			So(ratio.ComputeGaugeFill(7.5).Fraction, ShouldEqual, 1)
		})

		Convey("And the fraction is half the ratio below 2", func() {
			So(ratio.ComputeGaugeFill(1).Fraction, ShouldEqual, 0.5)
			So(ratio.ComputeGaugeFill(0.3).Fraction, ShouldAlmostEqual, 0.15, 1e-12)
		})

		Convey("And bands use the unclamped ratio", func() {
			So(ratio.ComputeGaugeFill(1.01).Band, ShouldEqual, ratio.BandGood)
			So(ratio.ComputeGaugeFill(1.0).Band, ShouldEqual, ratio.BandOK)
			So(ratio.ComputeGaugeFill(0.51).Band, ShouldEqual, ratio.BandOK)
			So(ratio.ComputeGaugeFill(0.5).Band, ShouldEqual, ratio.BandPoor)
			So(ratio.ComputeGaugeFill(0).Band, ShouldEqual, ratio.BandPoor)
		})

		Convey("And the fill is monotonic non-decreasing", func() {
			prev := -1.0
			for r := 0.0; r <= 5; r += 0.05 {
				f := ratio.ComputeGaugeFill(r).Fraction
				So(f, ShouldBeGreaterThanOrEqualTo, prev)
				So(f, ShouldBeBetweenOrEqual, 0, 1)
				prev = f
			}
			So(ratio.ComputeGaugeFill(math.Inf(1)).Fraction, ShouldBeGreaterThanOrEqualTo, prev)
		})

		Convey("And unparsable or negative input is empty", func() {
			So(ratio.GaugeFillFromString("n/a").Fraction, ShouldEqual, 0)
			So(ratio.ComputeGaugeFill(-3).Fraction, ShouldEqual, 0)
			So(ratio.ComputeGaugeFill(math.NaN()).Fraction, ShouldEqual, 0)
		})

		Convey("And bands map to display colours", func() {
			So(ratio.BandGood.Color(), ShouldEqual, "#10b981")
			So(ratio.BandOK.Color(), ShouldEqual, "#f59e0b")
			So(ratio.BandPoor.Color(), ShouldEqual, "#ef4444")
		})
	})
}
