package integrators

import (
	"context"
	"errors"

	"github.com/cockroachdb/apd/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/decsim/internal/dynamo"
)

var _ = Describe("AdamsBashforth4", func() {
	var (
		ctx   context.Context
		integ *AdamsBashforth4
	)

	BeforeEach(func() {
		ctx = context.Background()
		integ = NewAdamsBashforth4()
	})

	It("bootstraps with RK4", func() {
		cfg := runConfig("0", "1", "0.05", 40)
		ab, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		rk, err := NewRK4().Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i <= 3; i++ {
			Expect(ab[i].String()).To(Equal(rk[i].String()), "point %d", i)
		}
		Expect(ab[4].Y.Cmp(rk[4].Y)).NotTo(Equal(0))
	})

	It("shares the grid of RK4 and the exact sampler", func() {
		cfg := runConfig("0.5", "1", "0.125", 24)
		ab, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		rk, err := NewRK4().Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		exact, err := dynamo.Sample(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(ab).To(HaveLen(25))
		Expect(rk).To(HaveLen(25))
		Expect(exact).To(HaveLen(25))
		for i := range ab {
			Expect(ab[i].X.Text('f')).To(Equal(rk[i].X.Text('f')))
			Expect(ab[i].X.Text('f')).To(Equal(exact[i].X.Text('f')))
		}
		Expect(ab.Last().X.Text('f')).To(Equal("3.500"))

		origin, err := growth{}.Exact(cfg.Math, cfg.X0, cfg.Y0)
		Expect(err).NotTo(HaveOccurred())
		Expect(exact[0].Y.Cmp(origin)).To(BeZero())
		Expect(exact[0].Y.Cmp(cfg.Y0)).To(Equal(1))
	})

	It("accepts exactly three steps", func() {
		traj, err := integ.Integrate(ctx, growth{}, runConfig("0", "1", "0.1", 3))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(4))
	})

	It("rejects fewer than three steps", func() {
		for _, n := range []int{0, 1, 2} {
			traj, err := integ.Integrate(ctx, growth{}, runConfig("0", "1", "0.1", n))
			Expect(errors.Is(err, dynamo.ErrTooFewSteps)).To(BeTrue(), "n=%d", n)
			Expect(traj).To(BeNil())
		}
	})

	It("evaluates the derivative once per step after the bootstrap", func() {
		sys := &counting{System: growth{}}
		_, err := integ.Integrate(ctx, sys, runConfig("0", "1", "0.1", 10))
		Expect(err).NotTo(HaveOccurred())
		// 3 RK4 steps, 4 window seeds, then one per new point except the last
		Expect(sys.calls).To(Equal(12 + 4 + 6))
	})

	It("keeps both methods below 1e-6 on y' = 2xy", func() {
		cfg := runConfig("0", "6", "0.001", 2000)

		exact, err := dynamo.Sample(ctx, gaussian{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		rk, err := NewRK4().Integrate(ctx, gaussian{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		ab, err := integ.Integrate(ctx, gaussian{}, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(exact.Last().X.Text('f')).To(Equal("2.000"))
		rkErr, _ := finalDeviation(rk, exact).Float64()
		abErr, _ := finalDeviation(ab, exact).Float64()
		Expect(rkErr).To(BeNumerically("<", 1e-6))
		Expect(abErr).To(BeNumerically("<", 1e-6))
	})

	It("is deterministic digit for digit", func() {
		cfg := runConfig("0", "1", "0.01", 60)
		a, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := integ.Integrate(ctx, growth{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		for i := range a {
			Expect(a[i].String()).To(Equal(b[i].String()))
		}
	})

	It("returns the prefix when the derivative fails past the bootstrap", func() {
		boom := errors.New("boom")
		sys := dynamo.SystemFunc(func(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
			if x.Cmp(mustDecimal("0.5")) >= 0 {
				return nil, boom
			}
			return growth{}.Derive(math, x, y)
		})

		traj, err := integ.Integrate(ctx, sys, runConfig("0", "1", "0.1", 10))
		Expect(err).To(MatchError(boom))
		Expect(traj).To(HaveLen(6))
	})
})
