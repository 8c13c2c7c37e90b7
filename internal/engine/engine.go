// Package engine orchestrates one tick of the rigid-body world: it
// publishes a snapshot of body state into a shared evaluator scope,
// integrates every body through the override ladder, detects collisions,
// and resolves them, per §4.10. Construction and tick semantics mirror
// the teacher's sim.Simulator / dynamo.System boundary: a single
// synchronous New/Step-shaped API with no goroutines or channels in the
// core loop.
package engine

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/rbody2d/engine/internal/collide"
	"github.com/rbody2d/engine/internal/integrate"
	"github.com/rbody2d/engine/internal/resolve"
	"github.com/rbody2d/engine/internal/rigidbody"
	"github.com/rbody2d/engine/internal/symbolic"
)

// TickEvents reports what happened during one Tick: the world-space
// centroids of any contacts resolved this tick, and any non-fatal
// per-DoF warnings from the integrator falling through its entire ladder.
type TickEvents struct {
	Collisions []rigidbody.Vector
	Warnings   []integrate.Warning
}

// BodySnapshot is the read-only view returned by State.
type BodySnapshot struct {
	Name  string
	X, Y  float64
	Theta float64
}

// Engine holds the world: bodies, the symbolic environment driving their
// equations, and the integrate/collide/resolve stages wired together.
type Engine struct {
	bodies []rigidbody.Body
	env    *symbolic.Environment
	dt     float64

	integrator *integrate.Leapfrog
	detector   *collide.Detector
	resolver   *resolve.Resolver

	tickCount int
}

// Option configures New.
type Option func(*config)

type config struct {
	envOpts    []symbolic.Option
	resolveCfg resolve.Config
}

// WithRootFinderConfig overrides the equation solver's Newton's-method
// parameters (§4.6).
func WithRootFinderConfig(cfg symbolic.RootFinderConfig) Option {
	return func(c *config) { c.envOpts = append(c.envOpts, symbolic.WithRootFinderConfig(cfg)) }
}

// WithMaxDepth overrides the evaluator recursion cap (§4.5).
func WithMaxDepth(n int) Option {
	return func(c *config) { c.envOpts = append(c.envOpts, symbolic.WithMaxDepth(n)) }
}

// WithResolverConfig overrides restitution and positional-correction
// parameters (§4.9).
func WithResolverConfig(cfg resolve.Config) Option {
	return func(c *config) { c.resolveCfg = cfg }
}

// New constructs an Engine from a set of bodies, the expression strings
// forming the equation environment, and a fixed timestep. Bodies must
// have unique names (§3 invariant); dt must be positive and finite.
func New(bodies []rigidbody.Body, equations []string, dt float64, opts ...Option) (*Engine, error) {
	if dt <= 0 {
		return nil, &BuildError{Wrapped: fmt.Errorf("dt must be positive, got %g", dt)}
	}
	if err := checkUniqueNames(bodies); err != nil {
		return nil, &BuildError{Wrapped: err}
	}

	cfg := &config{resolveCfg: resolve.DefaultConfig()}
	for _, o := range opts {
		o(cfg)
	}

	env, err := symbolic.Build(equations, cfg.envOpts...)
	if err != nil {
		return nil, &BuildError{Wrapped: err}
	}

	return &Engine{
		bodies:     bodies,
		env:        env,
		dt:         dt,
		integrator: integrate.NewLeapfrog(),
		detector:   collide.NewDetector(),
		resolver:   resolve.NewResolver(cfg.resolveCfg),
	}, nil
}

func checkUniqueNames(bodies []rigidbody.Body) error {
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		if seen[b.Name] {
			return fmt.Errorf("duplicate body name %q", b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// overrideResolver adapts a symbolic.Environment + shared per-tick Frame
// to integrate.VariableResolver, routing every query through
// EvaluateOverride so the body's own published snapshot never
// short-circuits the override ladder.
type overrideResolver struct {
	env   *symbolic.Environment
	frame *symbolic.Frame
}

func (r overrideResolver) Resolve(name string, axis symbolic.Axis) (float64, error) {
	return r.env.EvaluateOverride(name, r.frame, axis)
}

// publish builds the tick's shared Frame, seeded with every body's
// current-state snapshot: x_B, y_B, theta_B (position), v_x_B, v_y_B,
// omega_B (velocity, read-only cross-reference), m_B, I_B (scalars), and
// the elapsed simulation time t, so position overrides like s_x_B =
// sin(t) can drive a body kinematically across ticks.
func publish(bodies []rigidbody.Body, t float64) *symbolic.Frame {
	overrides := make(map[string]float64, len(bodies)*8+1)
	overrides["t"] = t
	for _, b := range bodies {
		overrides["x_"+b.Name] = b.Linear.Displacement.X
		overrides["y_"+b.Name] = b.Linear.Displacement.Y
		overrides["theta_"+b.Name] = b.Angular.Displacement
		overrides["v_x_"+b.Name] = b.Linear.Velocity.X
		overrides["v_y_"+b.Name] = b.Linear.Velocity.Y
		overrides["omega_"+b.Name] = b.Angular.Velocity
		overrides["m_"+b.Name] = b.Props.Mass
		overrides["I_"+b.Name] = b.Props.MOI
	}
	return symbolic.NewFrame(overrides)
}

// Tick advances the world by dt, performing strictly, per §4.10:
// (1) publish a pre-tick snapshot into a fresh shared Frame;
// (2) integrate every body against that snapshot;
// (3) detect collisions on the post-integration state;
// (4) resolve them;
// (5) report contact centroids and integrator warnings.
//
// A fatal error from collision/resolution rolls state back to pre-tick,
// per §7's propagation rule, and the error surfaces to the caller.
func (e *Engine) Tick() (TickEvents, error) {
	preTick := make([]rigidbody.Body, len(e.bodies))
	copy(preTick, e.bodies)

	frame := publish(e.bodies, float64(e.tickCount)*e.dt)
	resolver := overrideResolver{env: e.env, frame: frame}

	var events TickEvents
	for i := range e.bodies {
		warnings := e.integrator.Step(&e.bodies[i], resolver, e.dt)
		events.Warnings = append(events.Warnings, warnings...)
	}

	if err := validateFinite(e.bodies); err != nil {
		e.bodies = preTick
		return TickEvents{}, &RuntimeError{Tick: e.tickCount, Wrapped: err}
	}

	contacts := e.detector.Detect(e.bodies)
	bodyPtrs := make([]*rigidbody.Body, len(e.bodies))
	for i := range e.bodies {
		bodyPtrs[i] = &e.bodies[i]
	}
	e.resolver.Resolve(bodyPtrs, contacts)

	if err := validateFinite(e.bodies); err != nil {
		e.bodies = preTick
		return TickEvents{}, &RuntimeError{Tick: e.tickCount, Wrapped: err}
	}

	for _, c := range contacts {
		events.Collisions = append(events.Collisions, c.Centroid)
	}

	e.tickCount++
	return events, nil
}

func validateFinite(bodies []rigidbody.Body) error {
	for _, b := range bodies {
		if !b.Linear.Displacement.IsFinite() || !b.Linear.Velocity.IsFinite() ||
			math.IsNaN(b.Angular.Displacement) || math.IsInf(b.Angular.Displacement, 0) ||
			math.IsNaN(b.Angular.Velocity) || math.IsInf(b.Angular.Velocity, 0) {
			return fmt.Errorf("numerical instability in body %q", b.Name)
		}
	}
	return nil
}

// Bodies returns a copy of the engine's current bodies, for callers that
// need more than State's pose-only view (e.g. rendering each body's
// polygon).
func (e *Engine) Bodies() []rigidbody.Body {
	out := make([]rigidbody.Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

// Diagnostics returns a plain-text per-body state dump: tick count,
// then one tabwriter-aligned row per body with position, velocity, and
// orientation.
func (e *Engine) Diagnostics() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d\n", e.tickCount)
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tX\tY\tVX\tVY\tTHETA\tMASS")
	for _, body := range e.bodies {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4g\n",
			body.Name,
			body.Linear.Displacement.X, body.Linear.Displacement.Y,
			body.Linear.Velocity.X, body.Linear.Velocity.Y,
			body.Angular.Displacement, body.Props.Mass)
	}
	w.Flush()
	return b.String()
}

// State returns a read-only snapshot of every body's pose.
func (e *Engine) State() []BodySnapshot {
	out := make([]BodySnapshot, len(e.bodies))
	for i, b := range e.bodies {
		out[i] = BodySnapshot{
			Name:  b.Name,
			X:     b.Linear.Displacement.X,
			Y:     b.Linear.Displacement.Y,
			Theta: b.Angular.Displacement,
		}
	}
	return out
}
