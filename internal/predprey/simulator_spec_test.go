package predprey_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/predprey"
)

var _ = Describe("Simulate", func() {
	var params predprey.Params

	BeforeEach(func() {
		params = predprey.Params{
			PreyBirthRate:      0.025,
			PredationRate:      0.0015,
			PredatorEfficiency: 0.0025,
			PredatorLossRate:   0.06,
			InitialPrey:        50,
			InitialPredators:   20,
			FinalTime:          365,
			Dt:                 0.25,
		}
	})

	Context("with the reference parameters", func() {
		It("returns 1461 samples starting at (0, 50, 20)", func() {
			traj, err := predprey.Simulate(params)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Time).To(HaveLen(1461))
			Expect(traj.Prey).To(HaveLen(1461))
			Expect(traj.Predators).To(HaveLen(1461))
			Expect(traj.Time[0]).To(BeZero())
			Expect(traj.Prey[0]).To(Equal(50.0))
			Expect(traj.Predators[0]).To(Equal(20.0))
			Expect(traj.Time[1460]).To(BeNumerically("==", 365))
		})

		It("keeps both populations positive and cycling", func() {
			traj, err := predprey.Simulate(params)
			Expect(err).NotTo(HaveOccurred())

			Expect(traj.Prey).To(HaveEach(BeNumerically(">", 0)))
			Expect(traj.Predators).To(HaveEach(BeNumerically(">", 0)))
			Expect(directionChanges(traj.Prey)).To(BeNumerically(">=", 2))
			Expect(directionChanges(traj.Predators)).To(BeNumerically(">=", 2))
		})
	})

	DescribeTable("every integrator is deterministic",
		func(name string) {
			run := func() predprey.Trajectory {
				integ, err := integrators.New(name)
				Expect(err).NotTo(HaveOccurred())
				traj, err := predprey.SimulateWith(params, integ)
				Expect(err).NotTo(HaveOccurred())
				return traj
			}
			Expect(run()).To(Equal(run()))
		},
		Entry("euler", "euler"),
		Entry("heun", "heun"),
		Entry("rk4", "rk4"),
	)

	DescribeTable("rejects malformed numeric input",
		func(mutate func(*predprey.Params)) {
			mutate(&params)
			_, err := predprey.Simulate(params)
			Expect(err).To(MatchError(predprey.ErrInvalidParameter))
		},
		Entry("negative step", func(p *predprey.Params) { p.Dt = -1 }),
		Entry("step beyond horizon", func(p *predprey.Params) { p.Dt = 366 }),
	)
})

var _ = Describe("Model", func() {
	It("serves the named-mapping contract", func(ctx SpecContext) {
		m, err := predprey.NewModel("native")
		Expect(err).NotTo(HaveOccurred())

		out, err := m.Run(ctx, map[string]float64{predprey.PredatorEfficiency: 0.0025})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveKey(predprey.OutcomeTime))
		Expect(out).To(HaveKey(predprey.OutcomePrey))
		Expect(out).To(HaveKey(predprey.OutcomePredators))
		Expect(out[predprey.OutcomePrey]).To(HaveLen(len(out[predprey.OutcomeTime])))
	})

	It("honors cancellation", func() {
		m, err := predprey.NewModel("native")
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = m.Run(ctx, nil)
		Expect(err).To(HaveOccurred())
	})
})

func directionChanges(xs []float64) int {
	changes, dir := 0, 0
	for i := 1; i < len(xs); i++ {
		d := 0
		switch {
		case xs[i] > xs[i-1]:
			d = 1
		case xs[i] < xs[i-1]:
			d = -1
		}
		if d != 0 && dir != 0 && d != dir {
			changes++
		}
		if d != 0 {
			dir = d
		}
	}
	return changes
}
