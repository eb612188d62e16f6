package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// System is the state of N gravitating point masses. Positions and
// velocities are index-aligned with masses and are mutated in place by the
// integrator. Masses and G never change after New.
type System struct {
	n          int
	positions  []mgl64.Vec3
	velocities []mgl64.Vec3
	masses     []float64
	g          float64
}

// New builds a System from index-aligned initial conditions. The inputs are
// copied. Mismatched lengths, an empty system, non-positive masses and
// non-finite values are rejected before any state is built.
func New(positions, velocities []mgl64.Vec3, masses []float64, g float64) (*System, error) {
	n := len(masses)
	if n == 0 {
		return nil, dynamo.ErrEmptySystem
	}
	if len(positions) != n || len(velocities) != n {
		return nil, fmt.Errorf("%d masses, %d positions, %d velocities: %w",
			n, len(positions), len(velocities), dynamo.ErrDimensionMismatch)
	}
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("gravitational constant %g: %w", g, dynamo.ErrParameterBounds)
	}
	for i, m := range masses {
		if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
			return nil, fmt.Errorf("mass of body %d is %g: %w", i, m, dynamo.ErrParameterBounds)
		}
		if !finite(positions[i]) || !finite(velocities[i]) {
			return nil, fmt.Errorf("body %d: %w", i, dynamo.ErrInvalidState)
		}
	}

	s := &System{
		n:          n,
		positions:  make([]mgl64.Vec3, n),
		velocities: make([]mgl64.Vec3, n),
		masses:     make([]float64, n),
		g:          g,
	}
	copy(s.positions, positions)
	copy(s.velocities, velocities)
	copy(s.masses, masses)
	return s, nil
}

func (s *System) N() int                        { return s.n }
func (s *System) G() float64                    { return s.g }
func (s *System) Mass(i int) float64            { return s.masses[i] }
func (s *System) Position(i int) mgl64.Vec3     { return s.positions[i] }
func (s *System) Velocity(i int) mgl64.Vec3     { return s.velocities[i] }
func (s *System) Masses() []float64             { return s.masses }
func (s *System) Positions() []mgl64.Vec3       { return s.positions }
func (s *System) Velocities() []mgl64.Vec3      { return s.velocities }
func (s *System) Snapshot(dst []mgl64.Vec3) int { return copy(dst, s.positions) }

func (s *System) TotalMass() float64 {
	total := 0.0
	for _, m := range s.masses {
		total += m
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position.
func (s *System) CenterOfMass() mgl64.Vec3 {
	return weightedMean(s.positions, s.masses)
}

// Momentum returns the total linear momentum.
func (s *System) Momentum() mgl64.Vec3 {
	var p mgl64.Vec3
	for i, v := range s.velocities {
		p = p.Add(v.Mul(s.masses[i]))
	}
	return p
}

func (s *System) AngularMomentum() mgl64.Vec3 {
	var l mgl64.Vec3
	for i := range s.positions {
		l = l.Add(s.positions[i].Cross(s.velocities[i]).Mul(s.masses[i]))
	}
	return l
}

// Center moves the system into the barycentric frame: the mass-weighted
// mean position and velocity are subtracted from every body.
func (s *System) Center() {
	xcm := weightedMean(s.positions, s.masses)
	vcm := weightedMean(s.velocities, s.masses)
	for i := 0; i < s.n; i++ {
		s.positions[i] = s.positions[i].Sub(xcm)
		s.velocities[i] = s.velocities[i].Sub(vcm)
	}
}

// Separations returns sep[i][j] = x[i] - x[j] and dist[i][j] = |sep[i][j]|.
// The diagonal of dist is exactly zero.
func (s *System) Separations() ([][]mgl64.Vec3, [][]float64) {
	n := s.n
	sep := make([][]mgl64.Vec3, n)
	dist := make([][]float64, n)
	for i := 0; i < n; i++ {
		sep[i] = make([]mgl64.Vec3, n)
		dist[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := s.positions[i].Sub(s.positions[j])
			r := d.Len()
			sep[i][j] = d
			sep[j][i] = d.Mul(-1)
			dist[i][j] = r
			dist[j][i] = r
		}
	}
	return sep, dist
}

// Acceleration overwrites out with the gravitational acceleration of every
// body. out must hold exactly N vectors.
//
// Two distinct bodies at the same position produce Inf/NaN; this is not
// guarded against.
func (s *System) Acceleration(out []mgl64.Vec3) error {
	if len(out) != s.n {
		return fmt.Errorf("acceleration buffer holds %d vectors for %d bodies: %w",
			len(out), s.n, dynamo.ErrDimensionMismatch)
	}

	sep, dist := s.Separations()
	invCube := make([][]float64, s.n)
	for i := range invCube {
		invCube[i] = make([]float64, s.n)
		for j, r := range dist[i] {
			invCube[i][j] = math.Pow(r, -3)
		}
		// pow(0, -3) is +Inf and Inf*0 is NaN
		invCube[i][i] = 0
	}

	for i := 0; i < s.n; i++ {
		var a mgl64.Vec3
		for j := 0; j < s.n; j++ {
			// sep[j][i] points from body i towards body j
			a = a.Add(sep[j][i].Mul(invCube[i][j] * s.masses[j]))
		}
		out[i] = a.Mul(s.g)
	}
	return nil
}

// Energy returns the kinetic energy and the gravitational potential energy.
// The potential sums each unordered pair once and is negative, so
// kinetic + potential is the conserved total.
func (s *System) Energy() (kinetic, potential float64) {
	for i, v := range s.velocities {
		kinetic += 0.5 * s.masses[i] * v.Dot(v)
	}

	_, dist := s.Separations()
	for i := 0; i < s.n; i++ {
		for j := i + 1; j < s.n; j++ {
			potential -= s.masses[i] * s.masses[j] / dist[i][j]
		}
	}
	return kinetic, s.g * potential
}

// Valid reports whether every position and velocity is finite.
func (s *System) Valid() bool {
	for i := 0; i < s.n; i++ {
		if !finite(s.positions[i]) || !finite(s.velocities[i]) {
			return false
		}
	}
	return true
}

func weightedMean(values []mgl64.Vec3, masses []float64) mgl64.Vec3 {
	var sum mgl64.Vec3
	total := 0.0
	for i, v := range values {
		sum = sum.Add(v.Mul(masses[i]))
		total += masses[i]
	}
	return sum.Mul(1 / total)
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
