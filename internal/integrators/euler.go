package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/physics"
)

// SymplecticEuler advances a system by one fixed step: the velocity is
// kicked with the current acceleration, then the position drifts with the
// updated velocity. It is first order.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (e *SymplecticEuler) Name() string { return "symplectic_euler" }

// Step mutates sys in place. acc is scratch space owned by the caller and
// must hold sys.N() vectors; its contents are overwritten.
func (e *SymplecticEuler) Step(sys *physics.System, acc []mgl64.Vec3, dt float64) error {
	if err := sys.Acceleration(acc); err != nil {
		return err
	}

	x := sys.Positions()
	v := sys.Velocities()
	for i := range v {
		v[i] = v[i].Add(acc[i].Mul(dt))
	}
	for i := range x {
		x[i] = x[i].Add(v[i].Mul(dt))
	}
	return nil
}
