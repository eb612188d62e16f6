package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"go.uber.org/zap"
)

// Driver owns a System for the length of one run and records its samples.
// A Driver is single use.
type Driver struct {
	sys        *physics.System
	integrator Integrator
	metrics    []dynamo.Metric
	log        *zap.Logger
	phase      Phase
	acc        []mgl64.Vec3
}

func New(sys *physics.System, integrator Integrator, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		log:        log,
		phase:      Initialized,
	}
}

func (d *Driver) AddMetric(m dynamo.Metric) { d.metrics = append(d.metrics, m) }

func (d *Driver) Phase() Phase { return d.phase }

// Run centers the system, then integrates cfg.TotalSteps() fixed steps,
// recording a sample every cfg.SampleEvery() steps. Samples land at step
// indices 0, every, 2*every, ... up to and including TotalSteps, so the
// result holds exactly cfg.Samples() samples.
func (d *Driver) Run(cfg dynamo.Config) (*dynamo.Result, error) {
	if d.phase != Initialized {
		return nil, dynamo.ErrAlreadyRun
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d.sys.Center()
	for _, m := range d.metrics {
		m.Reset()
	}

	totalSteps := cfg.TotalSteps()
	every := cfg.SampleEvery()
	result := dynamo.NewResult(cfg.Samples(), d.sys.N())
	d.acc = make([]mgl64.Vec3, d.sys.N())

	d.log.Info("run started",
		zap.String("integrator", d.integrator.Name()),
		zap.Int("bodies", d.sys.N()),
		zap.Int("steps", totalSteps),
		zap.Int("sample_every", every),
		zap.Int("samples", len(result.Times)),
	)

	d.phase = Running
	start := time.Now()

	for i := 0; i < totalSteps; i++ {
		if i%every == 0 {
			if err := d.record(result, i/every, i, cfg.Dt); err != nil {
				d.phase = Failed
				return result, err
			}
		}

		if err := d.integrator.Step(d.sys, d.acc, cfg.Dt); err != nil {
			d.phase = Failed
			return result, &dynamo.SimulationError{Step: i, Time: float64(i) * cfg.Dt, Wrapped: err}
		}
		result.StepsTaken++
	}

	if totalSteps%every == 0 {
		if err := d.record(result, totalSteps/every, totalSteps, cfg.Dt); err != nil {
			d.phase = Failed
			return result, err
		}
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	d.phase = Completed

	d.log.Info("run completed",
		zap.Int("steps", result.StepsTaken),
		zap.Int("samples", result.Samples),
		zap.Duration("elapsed", time.Since(start)),
		zap.Any("metrics", result.Metrics),
	)

	return result, nil
}

func (d *Driver) record(result *dynamo.Result, slot, step int, dt float64) error {
	t := float64(step) * dt
	if !d.sys.Valid() {
		return &dynamo.SimulationError{Step: step, Time: t, Wrapped: dynamo.ErrInvalidState}
	}
	if slot >= len(result.Times) {
		return &dynamo.SimulationError{
			Step:    step,
			Time:    t,
			Wrapped: fmt.Errorf("sample slot %d of %d: %w", slot, len(result.Times), dynamo.ErrDimensionMismatch),
		}
	}

	ke, pe := d.sys.Energy()
	d.sys.Snapshot(result.Positions[slot])
	result.Times[slot] = t
	result.Energy[slot] = [2]float64{ke, pe}
	result.Samples++

	sample := dynamo.Sample{
		Index:      slot,
		Time:       t,
		Kinetic:    ke,
		Potential:  pe,
		Positions:  d.sys.Positions(),
		Velocities: d.sys.Velocities(),
		Masses:     d.sys.Masses(),
	}
	for _, m := range d.metrics {
		m.Observe(sample)
	}

	d.log.Debug("sample",
		zap.Int("slot", slot),
		zap.Float64("t", t),
		zap.Float64("kinetic", ke),
		zap.Float64("potential", pe),
	)
	return nil
}
