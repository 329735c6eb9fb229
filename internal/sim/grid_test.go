package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/integrators"
	"github.com/san-kum/dpendulum/internal/sim"
)

var _ = Describe("Linspace", func() {
	It("spans [-π, π] with evenly spaced interior points", func() {
		grid, err := sim.Linspace(9)
		Expect(err).NotTo(HaveOccurred())
		Expect(grid).To(HaveLen(9))

		step := 2 * dynamo.Pi / 8
		for i, v := range grid[:8] {
			Expect(v).To(Equal(float64(i)*step - dynamo.Pi))
		}
		Expect(grid[0]).To(Equal(-dynamo.Pi))
		Expect(grid[8]).To(Equal(dynamo.Pi))
	})

	It("ends exactly on π for every size", func() {
		for _, n := range []int{2, 3, 64, 101, 256, 1000} {
			grid, err := sim.Linspace(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(grid).To(HaveLen(n))
			Expect(grid[0]).To(Equal(-dynamo.Pi), "n=%d", n)
			Expect(grid[n-1]).To(Equal(dynamo.Pi), "n=%d", n)
		}
	})

	It("rejects degenerate sizes", func() {
		for _, n := range []int{-1, 0, 1} {
			_, err := sim.Linspace(n)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		}
	})
})

var _ = Describe("GridScan", func() {
	var (
		c dynamo.Constants
		p dynamo.Params
	)

	BeforeEach(func() {
		c = dynamo.Constants{RodLength: 1, Mass: 1, Gravity: 9.81}
		p = dynamo.Params{StepCount: 400, Dt: 0.005, TotalTime: 2, GridSide: 5, Constants: c}
	})

	It("returns a side×side matrix over the grid angles", func() {
		m, err := sim.RunGridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Side).To(Equal(5))
		Expect(m.Cells).To(HaveLen(25))

		grid, _ := sim.Linspace(5)
		Expect(m.Angles).To(Equal(grid))
	})

	It("matches RunFlip cell by cell", func() {
		m, err := sim.RunGridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < m.Side; i++ {
			for j := 0; j < m.Side; j++ {
				want, err := sim.RunFlip(m.Angles[i], m.Angles[j], c, p)
				Expect(err).NotTo(HaveOccurred())
				Expect(m.At(i, j)).To(Equal(want), "cell (%d,%d)", i, j)
			}
		}
	})

	It("never flips from rest at the grid centre", func() {
		m, err := sim.RunGridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.At(2, 2)).To(Equal(dynamo.NoFlip))
	})

	It("only holds flip times inside the horizon or the sentinel", func() {
		m, err := sim.RunGridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range m.Cells {
			if v != float64(dynamo.NoFlip) {
				Expect(v).To(BeNumerically(">=", 0))
				Expect(v).To(BeNumerically("<", float64(p.StepCount)*p.Dt))
			}
		}
	})

	It("is independent of the worker count", func() {
		serial, err := sim.New(sim.WithWorkers(1)).GridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		parallel, err := sim.New(sim.WithWorkers(8)).GridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel.Cells).To(Equal(serial.Cells))
	})

	It("reports every row once, in increasing order", func() {
		var seen []int
		s := sim.New(sim.WithWorkers(3), sim.WithProgress(func(done, total int) {
			Expect(total).To(Equal(5))
			seen = append(seen, done)
		}))
		_, err := s.GridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{1, 2, 3, 4, 5}))
	})

	It("honours the configured stepper", func() {
		legacy, err := integrators.NewStepper("legacy")
		Expect(err).NotTo(HaveOccurred())

		p.StepCount = 2000
		m, err := sim.New(sim.WithStepper(legacy)).GridScan(context.Background(), c, p)
		Expect(err).NotTo(HaveOccurred())

		want, err := sim.New(sim.WithStepper(legacy)).Flip(m.Angles[1], m.Angles[3], c, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.At(1, 3)).To(Equal(want))
	})

	DescribeTable("rejects invalid parameters before scanning",
		func(mod func(*dynamo.Params)) {
			mod(&p)
			m, err := sim.RunGridScan(context.Background(), c, p)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
			Expect(m).To(BeNil())
		},
		Entry("zero dt", func(p *dynamo.Params) { p.Dt = 0 }),
		Entry("negative dt", func(p *dynamo.Params) { p.Dt = -1 }),
		Entry("one step", func(p *dynamo.Params) { p.StepCount = 1 }),
		Entry("grid side one", func(p *dynamo.Params) { p.GridSide = 1 }),
		Entry("NaN dt", func(p *dynamo.Params) { p.Dt = math.NaN() }),
	)

	It("stops on a cancelled context without returning partial data", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m, err := sim.New(sim.WithWorkers(1)).GridScan(ctx, c, p)
		Expect(err).To(MatchError(context.Canceled))
		Expect(m).To(BeNil())
	})
})
