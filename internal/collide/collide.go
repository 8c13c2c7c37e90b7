// Package collide detects contact between pairs of rigid bodies by
// intersecting their world-space polygon edges, grounded on the original
// engine's Collide2D.intersection_point 2x2 linear solve
// (original_source/engine/src/lib.rs, mod collide) but reworked per the
// richer contact manifold this implementation requires: a multi-point
// centroid, a nearest-face normal selected by lowest edge index rather
// than an averaged normal, a shoelace-based penetration depth, and
// separate per-body contact vectors instead of the original's two
// independent collision points.
package collide

import (
	"math"
	"sort"

	"github.com/rbody2d/engine/internal/rigidbody"
)

// Contact is the manifold produced for one colliding pair, per §4.8.
type Contact struct {
	A, B     int // indices into the Detect call's body slice
	Normal   rigidbody.Vector
	Depth    float64
	Centroid rigidbody.Vector
	RA, RB   rigidbody.Vector
}

// Detector finds contacts among a set of bodies. It holds no state.
type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

type edge struct {
	p0, p1 rigidbody.Vector
	idx    int // enumeration index, A's edges before B's, for normal tie-break
}

func edgesOf(verts []rigidbody.Vector, start int) []edge {
	n := len(verts)
	out := make([]edge, n)
	for i := 0; i < n; i++ {
		out[i] = edge{p0: verts[i], p1: verts[(i+1)%n], idx: start + i}
	}
	return out
}

func (e edge) direction() rigidbody.Vector { return e.p1.Sub(e.p0) }

func (e edge) outwardNormal() rigidbody.Vector {
	d := e.direction()
	return rigidbody.Vector{X: d.Y, Y: -d.X}.Unit()
}

func (e edge) midpoint() rigidbody.Vector {
	return e.p0.Add(e.p1).Scale(0.5)
}

func (e edge) length() float64 { return e.direction().Len() }

// Detect reports a Contact for every ordered pair (i, j) with i < j whose
// polygons have at least two edge-edge intersection points.
func (d *Detector) Detect(bodies []rigidbody.Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if c, ok := d.detectPair(bodies[i], bodies[j], i, j); ok {
				contacts = append(contacts, c)
			}
		}
	}
	return contacts
}

func (d *Detector) detectPair(a, b rigidbody.Body, ai, bi int) (Contact, bool) {
	va := a.WorldVertices()
	vb := b.WorldVertices()
	edgesA := edgesOf(va, 0)
	edgesB := edgesOf(vb, len(edgesA))
	allEdges := append(append([]edge{}, edgesA...), edgesB...)

	var points []rigidbody.Vector
	for _, ea := range edgesA {
		da := ea.direction()
		for _, eb := range edgesB {
			db := eb.direction()
			// Solve ea.p0 + ta*da = eb.p0 + tb*db for (ta, tb):
			//   [da.X  -db.X] [ta]   [eb.p0.X - ea.p0.X]
			//   [da.Y  -db.Y] [tb] = [eb.p0.Y - ea.p0.Y]
			det := da.X*(-db.Y) - (-db.X)*da.Y
			if det == 0 {
				continue // parallel edges, documented limitation per §4.8
			}
			rhs := eb.p0.Sub(ea.p0)
			ta := (rhs.X*(-db.Y) - (-db.X)*rhs.Y) / det
			tb := (da.X*rhs.Y - da.Y*rhs.X) / det
			if ta < 0 || ta > 1 || tb < 0 || tb > 1 {
				continue
			}
			pt := ea.p0.Add(da.Scale(ta))
			if !pt.IsFinite() {
				continue
			}
			points = append(points, pt)
		}
	}

	if len(points) < 2 {
		return Contact{}, false
	}

	centroid := meanPoint(points)

	var best edge
	bestDist := math.Inf(1)
	for _, e := range allEdges {
		dist := e.midpoint().Sub(centroid).Len()
		if dist < bestDist {
			bestDist = dist
			best = e
		}
	}
	normal := best.outwardNormal()

	polygon := buildManifoldPolygon(points, va, vb, centroid)
	depth := shoelaceDepth(polygon, best.length())

	return Contact{
		A:        ai,
		B:        bi,
		Normal:   normal,
		Depth:    depth,
		Centroid: centroid,
		RA:       centroid.Sub(a.Linear.Displacement),
		RB:       centroid.Sub(b.Linear.Displacement),
	}, true
}

func meanPoint(pts []rigidbody.Vector) rigidbody.Vector {
	sum := rigidbody.Vector{}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// buildManifoldPolygon assembles the overlap polygon from the edge
// intersection points plus each body's vertices that lie inside the
// other body, ordered angularly around centroid so the shoelace formula
// gives a sensible signed area.
func buildManifoldPolygon(points []rigidbody.Vector, va, vb []rigidbody.Vector, centroid rigidbody.Vector) []rigidbody.Vector {
	all := append([]rigidbody.Vector{}, points...)
	for _, v := range va {
		if pointInPolygon(v, vb) {
			all = append(all, v)
		}
	}
	for _, v := range vb {
		if pointInPolygon(v, va) {
			all = append(all, v)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return math.Atan2(all[i].Y-centroid.Y, all[i].X-centroid.X) <
			math.Atan2(all[j].Y-centroid.Y, all[j].X-centroid.X)
	})
	return all
}

// pointInPolygon reports whether p lies inside poly via ray casting;
// poly need not be convex.
func pointInPolygon(p rigidbody.Vector, poly []rigidbody.Vector) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func shoelaceDepth(polygon []rigidbody.Vector, referenceLength float64) float64 {
	if len(polygon) < 3 || referenceLength == 0 {
		return 0
	}
	sum := 0.0
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	area := sum / 2
	return math.Abs(2*area) / referenceLength
}
