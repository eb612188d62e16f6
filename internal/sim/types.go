package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Integrator advances a system by one fixed step, using acc as scratch.
type Integrator interface {
	Name() string
	Step(sys *physics.System, acc []mgl64.Vec3, dt float64) error
}

// Phase is the lifecycle position of a Driver.
type Phase int

const (
	Initialized Phase = iota
	Running
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
