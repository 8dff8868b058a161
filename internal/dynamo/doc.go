// Package dynamo provides the shared primitives of the fire simulation.
//
//   - [Vec3]: world-space point and vector math
//   - [Lerp], [Clamp], [Clamp01]: scalar helpers used by every tuning curve
//   - [Configurable]: named runtime knobs
//   - sentinel errors for the configuration surface
//
// Nothing in this package allocates or logs; it is safe to call from the
// per-particle hot path.
package dynamo
