package analysis_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mverlet/spinlab/internal/analysis"
	"github.com/mverlet/spinlab/internal/lattice"
	"github.com/mverlet/spinlab/internal/sim"
)

var _ = Describe("TemperatureSweep", func() {
	var (
		base   lattice.Config
		simCfg sim.Config
	)

	BeforeEach(func() {
		base = lattice.Config{
			Rows: 8, Cols: 8,
			Dynamics: lattice.Glauber,
		}
		simCfg = sim.Config{Sweeps: 150, Therm: 100, SampleEvery: 1}
	})

	It("measures one point per temperature step", func() {
		points, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 1.5, 3.5, 5, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(5))

		Expect(points[0].Temperature).To(BeNumerically("~", 1.5, 1e-12))
		Expect(points[4].Temperature).To(BeNumerically("~", 3.5, 1e-12))
		for i := 1; i < len(points); i++ {
			Expect(points[i].Temperature).To(BeNumerically(">", points[i-1].Temperature))
		}
	})

	It("shows the order/disorder transition in the magnetization", func() {
		points, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 1.5, 3.5, 5, 7)
		Expect(err).NotTo(HaveOccurred())

		cold := points[0]
		hot := points[len(points)-1]
		Expect(cold.MeanMagnetism).To(BeNumerically(">", 0.6), "ordered phase should be strongly magnetized")
		Expect(cold.MeanMagnetism).To(BeNumerically(">", hot.MeanMagnetism))
		Expect(cold.MeanEnergy).To(BeNumerically("<", hot.MeanEnergy))
	})

	It("is reproducible for a fixed seed", func() {
		first, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 1.8, 3.0, 4, 21)
		Expect(err).NotTo(HaveOccurred())
		second, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 1.8, 3.0, 4, 21)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("rejects invalid ranges", func() {
		_, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 0, 3.0, 4, 1)
		Expect(err).To(HaveOccurred())

		_, err = analysis.TemperatureSweep(context.Background(), base, simCfg, 3.0, 1.0, 4, 1)
		Expect(err).To(HaveOccurred())

		_, err = analysis.TemperatureSweep(context.Background(), base, simCfg, 1.0, 3.0, 0, 1)
		Expect(err).To(HaveOccurred())
	})

	It("handles a single-point sweep", func() {
		points, err := analysis.TemperatureSweep(context.Background(), base, simCfg, 2.0, 2.0, 1, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(1))
		Expect(points[0].Temperature).To(Equal(2.0))
	})
})

var _ = Describe("CriticalEstimate", func() {
	It("returns the susceptibility peak", func() {
		points := []analysis.SweepPoint{
			{Temperature: 1.5, Susceptibility: 0.1},
			{Temperature: 2.3, Susceptibility: 2.4},
			{Temperature: 3.0, Susceptibility: 0.6},
		}
		Expect(analysis.CriticalEstimate(points)).To(Equal(2.3))
	})

	It("returns zero without points", func() {
		Expect(analysis.CriticalEstimate(nil)).To(BeZero())
	})
})
