package analysis

import (
	"math"

	"github.com/rbody2d/engine/internal/engine"
)

// Divergence estimates a largest-exponent-style sensitivity measure by
// stepping two engines, seeded identically except for a small initial
// perturbation, side by side and tracking how fast bodyIndex's position
// separates, per the trajectory-separation method:
//
//	lambda ~= (1/t) * ln(|delta(t)/delta(0)|)
//
// A positive result means the tracked body's trajectory is sensitive to
// its initial condition. Unlike a continuous-state Lyapunov estimator,
// this has no way to renormalize the perturbed engine's internal state
// mid-run, so separation is left to grow; callers should keep ticks small
// enough that it stays well short of the body's own length scale.
func Divergence(base, perturbed *engine.Engine, bodyIndex, ticks int, dt, initialSeparation float64) float64 {
	if initialSeparation <= 0 {
		return 0
	}

	lastLog := 0.0
	elapsed := 0

	for i := 0; i < ticks; i++ {
		if _, err := base.Tick(); err != nil {
			break
		}
		if _, err := perturbed.Tick(); err != nil {
			break
		}

		bs := base.State()
		ps := perturbed.State()
		if bodyIndex >= len(bs) || bodyIndex >= len(ps) {
			break
		}

		dx := ps[bodyIndex].X - bs[bodyIndex].X
		dy := ps[bodyIndex].Y - bs[bodyIndex].Y
		sep := math.Hypot(dx, dy)

		if sep > 0 {
			lastLog = math.Log(sep / initialSeparation)
			elapsed = i + 1
		}
	}

	if elapsed == 0 {
		return 0
	}
	return lastLog / (float64(elapsed) * dt)
}
