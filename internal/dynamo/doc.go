// Package dynamo provides the shared types for orbit integration runs.
//
// The package defines the pieces the driver, the metrics and the storage
// layer agree on:
//
//   - [Config]: step size, duration and sampling interval of a run
//   - [Result]: pre-sized output buffers filled by the driver
//   - [Metric]: observer fed with every recorded sample
//   - [Sample]: one recorded snapshot handed to metrics
//
// # Example
//
//	sys, _ := physics.New(x0, v0, m, g)
//	drv := sim.New(sys, integrators.NewSymplecticEuler(), logger)
//	result, _ := drv.Run(dynamo.Config{Dt: 1, Duration: 365.24, SampleInterval: 36.524})
//
// # Thread Safety
//
// Nothing in a run is shared. A [Result] belongs to the caller once the
// driver returns it.
package dynamo
