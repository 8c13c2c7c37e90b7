package analysis

import (
	"math"
	"testing"

	"github.com/rbody2d/engine/internal/engine"
	"github.com/rbody2d/engine/internal/resolve"
	"github.com/rbody2d/engine/internal/rigidbody"
)

func TestFFTAndPowerSpectrumOfSineWave(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps, err := PowerSpectrum(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != n/2 {
		t.Fatalf("expected %d power bins, got %d", n/2, len(ps))
	}

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	if peak != 4 {
		t.Errorf("expected spectral peak at bin 4, got %d", peak)
	}
}

func TestFFTRejectsNonPowerOfTwoLength(t *testing.T) {
	if _, err := FFT(make([]float64, 10)); err == nil {
		t.Fatal("expected an error for a non-power-of-two sample count")
	}
}

func freeFallEngine(y float64) (*engine.Engine, error) {
	body, err := rigidbody.NewRectangleBody("A", 1, 1, 1, 0, y, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	return engine.New([]rigidbody.Body{body}, []string{"a_A = -9.8*hatj"}, 1.0/60)
}

func TestGeneratePhasePortraitTracksFallingVelocity(t *testing.T) {
	e, err := freeFallEngine(100)
	if err != nil {
		t.Fatal(err)
	}
	portrait := GeneratePhasePortrait(e, 0, "y", 120, 1.0/60)
	if portrait == nil || len(portrait.Points) == 0 {
		t.Fatal("expected recorded phase points")
	}
	last := portrait.Points[len(portrait.Points)-1]
	if last.Y >= 0 {
		t.Errorf("expected negative (downward) velocity, got %v", last.Y)
	}
}

func TestPhasePortraitToASCIIHandlesEmpty(t *testing.T) {
	if got := PhasePortraitToASCII(nil, 10, 5); got != "" {
		t.Errorf("expected empty string for no points, got %q", got)
	}
}

func TestDivergenceOfDisplacedFreeFallIsZero(t *testing.T) {
	base, err := freeFallEngine(100)
	if err != nil {
		t.Fatal(err)
	}
	perturbed, err := freeFallEngine(100.001)
	if err != nil {
		t.Fatal(err)
	}
	lambda := Divergence(base, perturbed, 0, 60, 1.0/60, 0.001)
	// Free fall has no dependence on position, so the tiny initial
	// offset is carried unchanged; log(separation/initial) stays ~0.
	if math.Abs(lambda) > 1 {
		t.Errorf("expected near-zero divergence for free fall, got %v", lambda)
	}
}

func TestRestitutionSweepProducesOnePointPerStep(t *testing.T) {
	build := func(restitution float64) (*engine.Engine, error) {
		a, err := rigidbody.NewRectangleBody("A", 1, 1, 1, -1, 0, 5, 0, 0)
		if err != nil {
			return nil, err
		}
		b, err := rigidbody.NewRectangleBody("B", 1, 1, 1, 1, 0, -5, 0, 0)
		if err != nil {
			return nil, err
		}
		return engine.New([]rigidbody.Body{a, b}, nil, 1.0/60, engine.WithResolverConfig(resolve.Config{
			Restitution:      restitution,
			CorrectionPasses: 4,
			SlopFactor:       0.8,
		}))
	}

	points := RestitutionSweep(build, 0.0, 1.0, 3, 0, 10, 10)
	if len(points) != 3 {
		t.Fatalf("expected 3 sweep points, got %d", len(points))
	}
}
