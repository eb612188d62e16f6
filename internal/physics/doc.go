// Package physics holds the N-body gravitational state and the pure
// computations over it.
//
// [System] owns positions, velocities, masses and the gravitational
// constant of a small set of point masses:
//
//   - [System.Center]: translate into the barycentric frame
//   - [System.Separations]: pairwise displacement vectors and distances
//   - [System.Acceleration]: direct O(N²) Newtonian acceleration
//   - [System.Energy]: kinetic and potential energy
//
// # Units
//
// G carries the unit system. With positions in AU, velocities in AU/day and
// masses in solar masses, G is GM_sun converted to AU³/day².
//
//	sys, err := physics.New(x0, v0, masses, physics.GaussianG)
//	sys.Center()
//	ke, pe := sys.Energy()
package physics
