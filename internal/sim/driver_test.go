package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

type recordingMetric struct {
	times  []float64
	resets int
}

func (r *recordingMetric) Name() string { return "recording" }
func (r *recordingMetric) Observe(s dynamo.Sample) {
	r.times = append(r.times, s.Time)
}
func (r *recordingMetric) Value() float64 { return float64(len(r.times)) }
func (r *recordingMetric) Reset() {
	r.times = nil
	r.resets++
}

// binary returns two equal masses on a circular orbit of separation 1.
func binary() *physics.System {
	const G = 1.0
	m := 0.5
	// each body circles the barycenter at r=0.5: v² = G*m*r/d²
	v := math.Sqrt(G * m * 0.5)
	sys, err := physics.New(
		[]mgl64.Vec3{{-0.5, 0, 0}, {0.5, 0, 0}},
		[]mgl64.Vec3{{0, -v, 0}, {0, v, 0}},
		[]float64{m, m}, G,
	)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var _ = Describe("Driver", func() {
	var (
		sys    *physics.System
		driver *Driver
		metric *recordingMetric
	)

	BeforeEach(func() {
		sys = binary()
		driver = New(sys, integrators.NewSymplecticEuler(), nil)
		metric = &recordingMetric{}
		driver.AddMetric(metric)
	})

	It("starts initialized", func() {
		Expect(driver.Phase()).To(Equal(Initialized))
	})

	Context("with totalTime=20, dt=1, samplingInterval=5", func() {
		var result *dynamo.Result

		BeforeEach(func() {
			var err error
			result, err = driver.Run(dynamo.Config{Dt: 1, Duration: 20, SampleInterval: 5})
			Expect(err).NotTo(HaveOccurred())
		})

		It("records exactly five samples without gaps", func() {
			Expect(result.Times).To(Equal([]float64{0, 5, 10, 15, 20}))
			Expect(result.Samples).To(Equal(5))
			Expect(result.Positions).To(HaveLen(5))
			Expect(result.Energy).To(HaveLen(5))
		})

		It("fills every snapshot", func() {
			for _, snap := range result.Positions {
				Expect(snap).To(HaveLen(2))
				Expect(snap[0]).NotTo(Equal(mgl64.Vec3{}))
			}
		})

		It("feeds each sample to the metrics", func() {
			Expect(metric.resets).To(Equal(1))
			Expect(metric.times).To(Equal(result.Times))
			Expect(result.Metrics).To(HaveKeyWithValue("recording", 5.0))
		})

		It("completes and refuses a second run", func() {
			Expect(driver.Phase()).To(Equal(Completed))
			_, err := driver.Run(dynamo.Config{Dt: 1, Duration: 20, SampleInterval: 5})
			Expect(err).To(MatchError(dynamo.ErrAlreadyRun))
		})
	})

	It("centers the system before the first sample", func() {
		off, err := physics.New(
			[]mgl64.Vec3{{10, 0, 0}, {11, 0, 0}},
			[]mgl64.Vec3{{1, 1, 0}, {1, 2, 0}},
			[]float64{1, 3}, 1,
		)
		Expect(err).NotTo(HaveOccurred())

		result, err := New(off, integrators.NewSymplecticEuler(), nil).
			Run(dynamo.Config{Dt: 0.001, Duration: 0.01, SampleInterval: 0.001})
		Expect(err).NotTo(HaveOccurred())

		var centroid mgl64.Vec3
		for i, x := range result.Positions[0] {
			centroid = centroid.Add(x.Mul(off.Mass(i)))
		}
		Expect(centroid.Len()).To(BeNumerically("<", 1e-12))
		Expect(off.Momentum().Len()).To(BeNumerically("<", 1e-12))
	})

	DescribeTable("conserves energy to first order in dt",
		func(dt float64) {
			period := 2 * math.Pi / math.Sqrt(1.0)
			result, err := New(binary(), integrators.NewSymplecticEuler(), nil).
				Run(dynamo.Config{Dt: dt, Duration: 3 * period, SampleInterval: 10 * dt})
			Expect(err).NotTo(HaveOccurred())

			total := result.TotalEnergy()
			e0, eN := total[0], total[len(total)-1]
			Expect(e0).To(BeNumerically("<", 0))
			Expect(math.Abs(eN-e0) / math.Abs(e0)).To(BeNumerically("<", 5*dt))
		},
		Entry("dt=1e-2", 1e-2),
		Entry("dt=1e-3", 1e-3),
	)
})
