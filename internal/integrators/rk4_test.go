package integrators

import (
	"context"
	"errors"

	"github.com/cockroachdb/apd/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/decsim/internal/dynamo"
)

var _ = Describe("RK4", func() {
	var (
		ctx   context.Context
		integ *RK4
	)

	BeforeEach(func() {
		ctx = context.Background()
		integ = NewRK4()
	})

	It("returns n+1 points on an exact grid", func() {
		cfg := runConfig("0", "1", "0.05", 40)
		traj, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(41))

		x := new(apd.Decimal)
		for i, p := range traj {
			Expect(p.X.Cmp(x)).To(Equal(0), "point %d", i)
			_, err := apd.BaseContext.Add(x, x, cfg.H)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(traj.Last().X.Text('f')).To(Equal("2.00"))
	})

	It("returns just the origin for zero steps", func() {
		traj, err := integ.Integrate(ctx, growth{}, runConfig("0", "1", "0.05", 0))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(1))
		Expect(traj[0].Y.Text('f')).To(Equal("1"))
	})

	It("matches the hand-computed first step of y' = 2y", func() {
		p, err := integ.Step(dynamo.NewContext(50, apd.RoundHalfEven), growth{},
			dynamo.Point{X: apd.New(0, 0), Y: apd.New(1, 0)}, mustDecimal("0.05"))
		Expect(err).NotTo(HaveOccurred())
		// 1 + z + z^2/2 + z^3/6 + z^4/24 with z = 0.1
		Expect(p.Y.Cmp(mustDecimal("1.1051708333333333333333333333333333333333333333333"))).To(Equal(0))
		Expect(p.X.Text('f')).To(Equal("0.05"))
	})

	It("evaluates the derivative four times per step", func() {
		sys := &counting{System: growth{}}
		_, err := integ.Integrate(ctx, sys, runConfig("0", "1", "0.1", 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.calls).To(Equal(40))
	})

	It("is deterministic digit for digit", func() {
		cfg := runConfig("0", "1", "0.01", 50)
		a, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		for i := range a {
			Expect(a[i].String()).To(Equal(b[i].String()))
		}
	})

	It("does not touch the caller's initial values", func() {
		cfg := runConfig("0", "1", "0.1", 5)
		traj, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		traj[0].Y.SetInt64(7)
		Expect(cfg.Y0.Text('f')).To(Equal("1"))
	})

	It("shows fourth-order convergence on y' = 2y", func() {
		coarseCfg := runConfig("0", "1", "0.02", 100)
		fineCfg := runConfig("0", "1", "0.01", 200)

		coarse, err := integ.Integrate(ctx, growth{}, coarseCfg)
		Expect(err).NotTo(HaveOccurred())
		fine, err := integ.Integrate(ctx, growth{}, fineCfg)
		Expect(err).NotTo(HaveOccurred())

		coarseExact, err := dynamo.Sample(ctx, growth{}, coarseCfg)
		Expect(err).NotTo(HaveOccurred())
		fineExact, err := dynamo.Sample(ctx, growth{}, fineCfg)
		Expect(err).NotTo(HaveOccurred())

		eCoarse, _ := finalDeviation(coarse, coarseExact).Float64()
		eFine, _ := finalDeviation(fine, fineExact).Float64()
		Expect(eFine).To(BeNumerically("<", 1e-5))
		Expect(eCoarse / eFine).To(BeNumerically("~", 16, 4))

		first := new(apd.Decimal)
		_, err = apd.BaseContext.Sub(first, fine[1].Y, fineExact[1].Y)
		Expect(err).NotTo(HaveOccurred())
		eFirst, _ := first.Abs(first).Float64()
		Expect(eFine).To(BeNumerically(">", eFirst))
	})

	It("rejects a zero step size", func() {
		_, err := integ.Integrate(ctx, growth{}, runConfig("0", "1", "0", 10))
		Expect(err).To(MatchError(dynamo.ErrZeroStep))
	})

	It("rejects a negative step count", func() {
		_, err := integ.Integrate(ctx, growth{}, runConfig("0", "1", "0.1", -1))
		Expect(errors.Is(err, dynamo.ErrNegativeSteps)).To(BeTrue())
	})

	It("propagates derivative failures with the prefix produced so far", func() {
		boom := errors.New("boom")
		calls := 0
		sys := dynamo.SystemFunc(func(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
			calls++
			if calls > 8 {
				return nil, boom
			}
			return growth{}.Derive(math, x, y)
		})

		traj, err := integ.Integrate(ctx, sys, runConfig("0", "1", "0.1", 10))
		Expect(err).To(MatchError(boom))
		var stepErr *dynamo.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(2))
		Expect(traj).To(HaveLen(3))
	})

	It("propagates trapped arithmetic conditions", func() {
		cfg := runConfig("0", "1", "0.1", 3)
		cfg.Math.MaxExponent = 2
		sys := dynamo.SystemFunc(func(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
			a := dynamo.NewArith(math)
			d := a.Mul(a.Int(1000), y)
			return d, a.Err()
		})

		_, err := integ.Integrate(ctx, sys, cfg)
		Expect(errors.Is(err, dynamo.ErrArithmetic)).To(BeTrue())
	})

	It("stops when the context is canceled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		traj, err := integ.Integrate(cctx, growth{}, runConfig("0", "1", "0.1", 10))
		Expect(err).To(MatchError(context.Canceled))
		Expect(traj).To(HaveLen(1))
	})
})
