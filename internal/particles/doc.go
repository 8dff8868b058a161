// Package particles owns the flame's particle population.
//
// A [System] spawns particles at the burner once per tick, integrates
// buoyancy, procedural turbulence, damping, expansion and soft centering, and
// retires particles whose life has run out. Population is bounded: when a
// spawn pushes it past the cap, the oldest-inserted particles are evicted.
//
// # Determinism
//
// All randomness comes from the *rand.Rand handed to [New] (or seeded with
// [WithSeed]). The only other input is the turbulence [PhaseSource], sampled
// once per [System.Advance].
//
// # Thread Safety
//
// System is NOT thread-safe. Hosts tick and read it from a single goroutine.
package particles
