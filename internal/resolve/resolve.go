// Package resolve applies impulse and positional correction to colliding
// body pairs per §4.9, grounded on the original engine's
// calculate_impulse/apply_impulse (original_source/engine/src/lib.rs).
// That original only ever mutates body A's velocity, leaving a commented-
// out symmetric update for B; this implementation applies the impulse
// symmetrically to both bodies, per the spec's requirement.
package resolve

import (
	"github.com/rbody2d/engine/internal/collide"
	"github.com/rbody2d/engine/internal/rigidbody"
)

// Config parameterizes restitution and the iterative positional
// correction pass, defaulting to §4.9's constants.
type Config struct {
	Restitution      float64
	CorrectionPasses int
	SlopFactor       float64
}

func DefaultConfig() Config {
	return Config{
		Restitution:      0.2,
		CorrectionPasses: 4,
		SlopFactor:       0.8,
	}
}

// Resolver applies impulse and positional correction. It holds no state
// beyond its configuration.
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve mutates bodies in place for each contact, processed in the
// order given (the engine supplies them by ascending pair id, per §5's
// determinism requirement).
func (r *Resolver) Resolve(bodies []*rigidbody.Body, contacts []collide.Contact) {
	for _, c := range contacts {
		r.applyImpulse(bodies[c.A], bodies[c.B], c)
	}
	for pass := 0; pass < r.cfg.CorrectionPasses; pass++ {
		for _, c := range contacts {
			r.correctPositions(bodies[c.A], bodies[c.B], c)
		}
	}
}

func (r *Resolver) applyImpulse(a, b *rigidbody.Body, c collide.Contact) {
	n := c.Normal.Unit()

	vA := a.Linear.Velocity.Add(rigidbody.CrossScalarVector(a.Angular.Velocity, c.RA))
	vB := b.Linear.Velocity.Add(rigidbody.CrossScalarVector(b.Angular.Velocity, c.RB))
	vRel := vB.Sub(vA)
	vRelN := vRel.Dot(n)

	if vRelN > 0 {
		return // separating
	}

	invMA, invMB := a.Props.InvMass(), b.Props.InvMass()
	invIA, invIB := a.Props.InvMOI(), b.Props.InvMOI()

	rAxN := c.RA.Cross2D(n)
	rBxN := c.RB.Cross2D(n)

	denom := invMA + invMB + rAxN*rAxN*invIA + rBxN*rBxN*invIB
	if denom == 0 {
		return
	}

	j := -(1 + r.cfg.Restitution) * vRelN / denom

	impulse := n.Scale(j)
	a.Linear.Velocity = a.Linear.Velocity.Sub(impulse.Scale(invMA))
	b.Linear.Velocity = b.Linear.Velocity.Add(impulse.Scale(invMB))
	a.Angular.Velocity -= c.RA.Cross2D(impulse) * invIA
	b.Angular.Velocity += c.RB.Cross2D(impulse) * invIB
}

func (r *Resolver) correctPositions(a, b *rigidbody.Body, c collide.Contact) {
	invMA, invMB := a.Props.InvMass(), b.Props.InvMass()
	total := invMA + invMB
	if total == 0 {
		return
	}

	correction := c.Normal.Unit().Scale(c.Depth * r.cfg.SlopFactor / total)
	a.Linear.Displacement = a.Linear.Displacement.Sub(correction.Scale(invMA))
	b.Linear.Displacement = b.Linear.Displacement.Add(correction.Scale(invMB))
}
