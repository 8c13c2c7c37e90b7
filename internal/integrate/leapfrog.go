// Package integrate advances rigid bodies by one timestep per spec §4.7,
// resolving each degree of freedom through a precedence ladder of
// symbolic overrides before falling back to symplectic (leapfrog)
// integration of an acceleration term. Its Step signature mirrors the
// teacher's dynamo.Integrator / integrators.Leapfrog shape
// (Step(system, state, t, dt) state), adapted from a flat ODE state
// vector to a per-body, per-axis override resolution.
package integrate

import (
	"github.com/rbody2d/engine/internal/rigidbody"
	"github.com/rbody2d/engine/internal/symbolic"
)

// VariableResolver resolves a named variable to a float64 for the given
// basis axis, reporting symbolic.EvalError{Kind: Unresolved} (via
// symbolic.IsUnresolved) when the name has no defined value this tick.
// The engine package implements this with an unexported adapter that
// closes over a per-tick symbolic.Frame seeded with the published body
// variables.
type VariableResolver interface {
	Resolve(name string, axis symbolic.Axis) (float64, error)
}

// Leapfrog integrates one body for one tick using the override ladder of
// §4.7: position override, then velocity override, then acceleration
// (symplectic Euler / leapfrog: velocity advances first, then position
// advances by the new velocity), each attempted independently per axis
// and per the angular DoF.
type Leapfrog struct{}

// NewLeapfrog constructs the integrator. It carries no per-body scratch
// state (unlike the teacher's integrators.Leapfrog, which caches a
// scratch State slice across Step calls for a fixed-size ODE vector);
// rigidbody.Body already owns its own Linear/Angular BodyState, so there
// is nothing to cache between ticks.
func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

// axisSpec names, for one linear axis, the candidate override variables
// at each rung of the ladder: an axis-suffixed name (s_x_B) and a
// vector-form fallback shared by both axes (s_B, evaluated once per axis
// per §4.7's "queried twice" rule).
type axisSpec struct {
	position, vecPosition         string
	velocity, vecVelocity         string
	acceleration, vecAcceleration string
	get                           func(*rigidbody.Body) (pos, vel *float64)
	axis                          symbolic.Axis
}

// Step advances body by dt in place, resolving names against r (the
// tick's published-variable scope). It returns the warnings for any DoF
// whose entire ladder fell through unresolved; body is left unchanged on
// those DoFs.
func (l *Leapfrog) Step(body *rigidbody.Body, r VariableResolver, dt float64) []Warning {
	var warnings []Warning

	specs := []axisSpec{
		{
			position: "s_x_" + body.Name, vecPosition: "s_" + body.Name,
			velocity: "v_x_" + body.Name, vecVelocity: "v_" + body.Name,
			acceleration: "a_x_" + body.Name, vecAcceleration: "a_" + body.Name,
			axis: symbolic.AxisX,
			get: func(b *rigidbody.Body) (*float64, *float64) {
				return &b.Linear.Displacement.X, &b.Linear.Velocity.X
			},
		},
		{
			position: "s_y_" + body.Name, vecPosition: "s_" + body.Name,
			velocity: "v_y_" + body.Name, vecVelocity: "v_" + body.Name,
			acceleration: "a_y_" + body.Name, vecAcceleration: "a_" + body.Name,
			axis: symbolic.AxisY,
			get: func(b *rigidbody.Body) (*float64, *float64) {
				return &b.Linear.Displacement.Y, &b.Linear.Velocity.Y
			},
		},
	}

	for _, spec := range specs {
		pos, vel := spec.get(body)
		if !l.stepDoF(r, spec, pos, vel, dt) {
			warnings = append(warnings, Warning{Body: body.Name, DoF: spec.acceleration})
		}
	}

	theta := axisSpec{
		position: "theta_" + body.Name, vecPosition: "theta_" + body.Name,
		velocity: "omega_" + body.Name, vecVelocity: "omega_" + body.Name,
		acceleration: "alpha_" + body.Name, vecAcceleration: "alpha_" + body.Name,
		axis: symbolic.AxisZ,
	}
	if !l.stepDoF(r, theta, &body.Angular.Displacement, &body.Angular.Velocity, dt) {
		warnings = append(warnings, Warning{Body: body.Name, DoF: theta.acceleration})
	}

	return warnings
}

// resolveRung tries the axis-specific name, then the vector-form name,
// returning the first that resolves.
func resolveRung(r VariableResolver, name, vecName string, axis symbolic.Axis) (float64, error) {
	v, err := r.Resolve(name, axis)
	if err == nil || !symbolic.IsUnresolved(err) {
		return v, err
	}
	if vecName == name {
		return v, err
	}
	return r.Resolve(vecName, axis)
}

// stepDoF resolves one scalar degree of freedom through the three-rung
// ladder, mutating pos/vel in place. Any evaluation error at a rung —
// not just Unresolved — falls through to the next rung; it returns
// false only if the final (acceleration) rung also errors.
func (l *Leapfrog) stepDoF(r VariableResolver, spec axisSpec, pos, vel *float64, dt float64) bool {
	if v, err := resolveRung(r, spec.position, spec.vecPosition, spec.axis); err == nil {
		*pos = v
		*vel = 0
		return true
	}

	if v, err := resolveRung(r, spec.velocity, spec.vecVelocity, spec.axis); err == nil {
		*vel = v
		*pos += v * dt
		return true
	}

	if a, err := resolveRung(r, spec.acceleration, spec.vecAcceleration, spec.axis); err == nil {
		*vel += a * dt
		*pos += *vel * dt
		return true
	}

	return false
}
