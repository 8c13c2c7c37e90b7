package collide

import (
	"math"
	"testing"

	"github.com/rbody2d/engine/internal/rigidbody"
)

func rect(t *testing.T, name string, x, y float64) rigidbody.Body {
	t.Helper()
	b, err := rigidbody.NewRectangleBody(name, 1, 2, 2, x, y, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDetectOverlappingSquares(t *testing.T) {
	a := rect(t, "A", 0, 0)
	b := rect(t, "B", 1.5, 0)

	contacts := NewDetector().Detect([]rigidbody.Body{a, b})
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.Depth <= 0 {
		t.Errorf("expected positive penetration depth, got %v", c.Depth)
	}
	if math.Abs(c.Normal.Len()-1) > 1e-9 {
		t.Errorf("expected unit normal, got len %v", c.Normal.Len())
	}
	// Squares overlap along x; normal should point roughly along x.
	if math.Abs(c.Normal.Y) > math.Abs(c.Normal.X) {
		t.Errorf("expected x-dominant normal, got %+v", c.Normal)
	}
}

func TestDetectSeparatedSquaresNoContact(t *testing.T) {
	a := rect(t, "A", 0, 0)
	b := rect(t, "B", 10, 0)

	contacts := NewDetector().Detect([]rigidbody.Body{a, b})
	if len(contacts) != 0 {
		t.Fatalf("expected no contact, got %d", len(contacts))
	}
}

func TestDetectTouchingSquaresNoFalsePositive(t *testing.T) {
	// Exactly edge-to-edge: each pairwise edge solve lands at a corner
	// shared by both polygons, producing at most the two corner points,
	// not a genuine penetrating overlap.
	a := rect(t, "A", 0, 0)
	b := rect(t, "B", 2, 0)

	contacts := NewDetector().Detect([]rigidbody.Body{a, b})
	for _, c := range contacts {
		if c.Depth > 1e-6 {
			t.Errorf("expected ~zero depth for touching squares, got %v", c.Depth)
		}
	}
}

func TestDetectPairIndicesOrdered(t *testing.T) {
	a := rect(t, "A", 0, 0)
	b := rect(t, "B", 1, 0)
	c := rect(t, "C", 100, 100)

	contacts := NewDetector().Detect([]rigidbody.Body{a, b, c})
	for _, ct := range contacts {
		if ct.A >= ct.B {
			t.Errorf("expected A index < B index, got %d, %d", ct.A, ct.B)
		}
	}
}
