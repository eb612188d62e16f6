package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the fixed-step run parameters. SampleInterval is expressed in
// simulated time and converted to a whole number of steps.
type Config struct {
	Dt             float64
	Duration       float64
	SampleInterval float64
}

func DefaultConfig() Config {
	return Config{
		Dt:             1.0,
		Duration:       200.0 * 365.24,
		SampleInterval: 0.1 * 365.24,
	}
}

func (c Config) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"dt", c.Dt},
		{"duration", c.Duration},
		{"sample interval", c.SampleInterval},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return fmt.Errorf("%s must be positive and finite, got %g: %w", p.name, p.value, ErrParameterBounds)
		}
	}
	if c.SampleInterval < c.Dt {
		return fmt.Errorf("sample interval %g is shorter than dt %g: %w", c.SampleInterval, c.Dt, ErrParameterBounds)
	}
	if c.TotalSteps() < 1 {
		return fmt.Errorf("duration %g is shorter than dt %g: %w", c.Duration, c.Dt, ErrParameterBounds)
	}
	return nil
}

// TotalSteps is floor(Duration / Dt).
func (c Config) TotalSteps() int {
	return int(math.Floor(c.Duration / c.Dt))
}

// SampleEvery is the number of steps between recorded samples.
func (c Config) SampleEvery() int {
	every := int(math.Floor(c.SampleInterval / c.Dt))
	if every < 1 {
		return 1
	}
	return every
}

// Samples is the exact number of samples a run records.
func (c Config) Samples() int {
	return c.TotalSteps()/c.SampleEvery() + 1
}

// Sample is one recorded snapshot. Positions and Velocities alias the
// driver's state and are only valid for the duration of Observe.
type Sample struct {
	Index      int
	Time       float64
	Kinetic    float64
	Potential  float64
	Positions  []mgl64.Vec3
	Velocities []mgl64.Vec3
	Masses     []float64
}

func (s Sample) TotalEnergy() float64 { return s.Kinetic + s.Potential }

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Result holds the output buffers of a run. All buffers are allocated at
// their final length before the first step.
type Result struct {
	Positions  [][]mgl64.Vec3
	Times      []float64
	Energy     [][2]float64
	Metrics    map[string]float64
	StepsTaken int
	Samples    int
}

// NewResult allocates buffers for the given sample and body counts.
func NewResult(samples, bodies int) *Result {
	r := &Result{
		Positions: make([][]mgl64.Vec3, samples),
		Times:     make([]float64, samples),
		Energy:    make([][2]float64, samples),
		Metrics:   make(map[string]float64),
	}
	for i := range r.Positions {
		r.Positions[i] = make([]mgl64.Vec3, bodies)
	}
	return r
}

// Bodies returns the body count stored in the position buffer.
func (r *Result) Bodies() int {
	if len(r.Positions) == 0 {
		return 0
	}
	return len(r.Positions[0])
}

// TotalEnergy returns kinetic + potential for every sample.
func (r *Result) TotalEnergy() []float64 {
	out := make([]float64, len(r.Energy))
	for i, e := range r.Energy {
		out[i] = e[0] + e[1]
	}
	return out
}

// RelativeEnergyError returns (E_i - E_0) / |E_0| for every sample.
func (r *Result) RelativeEnergyError() []float64 {
	total := r.TotalEnergy()
	if len(total) == 0 {
		return total
	}
	e0 := math.Abs(total[0])
	out := make([]float64, len(total))
	if e0 == 0 {
		return out
	}
	for i, e := range total {
		out[i] = (e - total[0]) / e0
	}
	return out
}
