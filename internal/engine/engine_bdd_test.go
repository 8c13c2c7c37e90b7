package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rbody2d/engine/internal/engine"
	"github.com/rbody2d/engine/internal/resolve"
	"github.com/rbody2d/engine/internal/rigidbody"
)

var _ = Describe("a body under a constant acceleration equation", func() {
	It("free falls to y ~= 50 after one second at a_A = -100*hatj", func() {
		body, err := rigidbody.NewRectangleBody("A", 1, 1, 1, 0, 100, 0, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		e, err := engine.New([]rigidbody.Body{body}, []string{"a_A = -100*hatj"}, 1.0/60)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 60; i++ {
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(e.State()[0].Y).To(BeNumerically("~", 50, 1))
	})
})

var _ = Describe("an inverse-square attraction equation", func() {
	It("keeps a satellite bounded around a fixed center", func() {
		sat, err := rigidbody.NewRectangleBody("Sat", 1, 1, 1, 300, 300, 120, -120, 0)
		Expect(err).NotTo(HaveOccurred())
		center, err := rigidbody.NewRectangleBody("Center", rigidbody.StaticMassThreshold*10, 1, 1, 0, 0, 0, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		equations := []string{
			"r = sqrt(x_Sat^2 + y_Sat^2)",
			"a_Sat = (-100000/(r*r))*(x_Sat/r)*hati + (-100000/(r*r))*(y_Sat/r)*hatj",
		}
		e, err := engine.New([]rigidbody.Body{sat, center}, equations, 1.0/60)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 600; i++ {
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
			s := e.State()[0]
			dist := math.Hypot(s.X, s.Y)
			Expect(dist).To(BeNumerically(">=", 200))
			Expect(dist).To(BeNumerically("<=", 500))
		}
	})
})

var _ = Describe("a head-on elastic collision", func() {
	It("separates two equal-mass bodies after impact at ~= e*v", func() {
		const v = 5.0
		a, err := rigidbody.NewRectangleBody("A", 1, 1, 1, -1, 0, v, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		b, err := rigidbody.NewRectangleBody("B", 1, 1, 1, 1, 0, -v, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		cfg := resolve.DefaultConfig()
		equations := []string{"a_A = 0*hati", "a_B = 0*hati"}
		e, err := engine.New([]rigidbody.Body{a, b}, equations, 1.0/60, engine.WithResolverConfig(cfg))
		Expect(err).NotTo(HaveOccurred())

		collided := false
		for i := 0; i < 30; i++ {
			events, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
			if len(events.Collisions) > 0 {
				collided = true
			}
		}
		Expect(collided).To(BeTrue())

		st := e.State()
		Expect(st[0].X).To(BeNumerically("<", st[1].X))

		wantSpeed := cfg.Restitution * v
		for _, body := range e.Bodies() {
			Expect(body.Linear.Velocity.Len()).To(BeNumerically("~", wantSpeed, 0.1*v))
		}
	})
})

var _ = Describe("a pair of mutually-defined equations", func() {
	It("reports warnings instead of crashing on an unresolvable cycle", func() {
		body, err := rigidbody.NewRectangleBody("A", 1, 1, 1, 0, 0, 0, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		e, err := engine.New([]rigidbody.Body{body}, []string{"a_x_A = b_x_A + 1", "b_x_A = a_x_A + 1"}, 0.01)
		Expect(err).NotTo(HaveOccurred())

		events, err := e.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(events.Warnings).NotTo(BeEmpty())
	})
})

var _ = Describe("a torque-driven pendulum", func() {
	It("returns theta within 5% of its initial amplitude after one swing period (spec.md:248)", func() {
		const theta0 = 0.3
		bob, err := rigidbody.NewRectangleBody("Bob", 1, 0.2, 0.2, 0, 0, 0, 0, theta0)
		Expect(err).NotTo(HaveOccurred())

		equations := []string{
			"alpha_Bob = (-9.8)*sin(theta_Bob)*hatk",
			"s_x_Bob = sin(theta_Bob)",
			"s_y_Bob = -cos(theta_Bob)",
		}
		e, err := engine.New([]rigidbody.Body{bob}, equations, 1.0/60)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 120; i++ {
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
		}

		theta := e.Bodies()[0].Angular.Displacement
		Expect(theta).To(BeNumerically("~", theta0, math.Abs(theta0)*0.05))
	})
})

var _ = Describe("a pendulum-like centripetal correction equation", func() {
	It("keeps the bob near its initial radius from the anchor", func() {
		bob, err := rigidbody.NewRectangleBody("Bob", 1, 0.2, 0.2, 0.2, -0.98, 0, 0, 0)
		Expect(err).NotTo(HaveOccurred())

		equations := []string{
			"L = sqrt(x_Bob^2 + y_Bob^2)",
			"speedSq = v_x_Bob^2 + v_y_Bob^2",
			"a_Bob = (-9.8)*hatj + (speedSq/L)*((-x_Bob/L)*hati + (-y_Bob/L)*hatj)",
		}
		e, err := engine.New([]rigidbody.Body{bob}, equations, 1.0/60)
		Expect(err).NotTo(HaveOccurred())

		initialRadius := math.Hypot(0.2, -0.98)
		for i := 0; i < 120; i++ {
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
		}

		s := e.State()[0]
		radius := math.Hypot(s.X, s.Y)
		Expect(radius).To(BeNumerically("~", initialRadius, initialRadius*0.5))
	})
})
