package svgpath

import (
	"math"
	"math/rand"
	"testing"
)

func rectNear(a, b Rect, tol float64) bool {
	return math.Abs(a.MinX-b.MinX) <= tol && math.Abs(a.MinY-b.MinY) <= tol &&
		math.Abs(a.MaxX-b.MaxX) <= tol && math.Abs(a.MaxY-b.MaxY) <= tol
}

func extentsOf(t *testing.T, d string) Rect {
	t.Helper()
	p, err := CompilePath(d)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := p.Extents()
	if !ok {
		t.Fatalf("no geometry in %q", d)
	}
	return r
}

func TestExtents(t *testing.T) {
	for _, test := range []struct {
		d    string
		want Rect
	}{
		{"M5 5", Rect{5, 5, 5, 5}},
		{"M0 0 L10 4", Rect{0, 0, 10, 4}},
		// curve extents come from critical points, not control hulls
		{"M0 0 Q 5 10 10 0", Rect{0, 0, 10, 5}},
		{"M0 0 C 0 20, 10 20, 10 0", Rect{0, 0, 10, 15}},
		{"M0 0 C 0 -20, 10 -20, 10 0", Rect{0, -15, 10, 0}},
		// the close segment joins existing endpoints
		{"M0 0 L10 4 Z", Rect{0, 0, 10, 4}},
		{"M1 1 L5 1 M-2 0 L0 0", Rect{-2, 0, 5, 1}},
	} {
		if got := extentsOf(t, test.d); !rectNear(got, test.want, 1e-9) {
			t.Errorf("Extents(%q) = %+v, want %+v", test.d, got, test.want)
		}
	}
}

func TestExtentsArc(t *testing.T) {
	// a semicircle above and below the baseline
	if got := extentsOf(t, "M0 0 A 5 5 0 0 1 10 0"); !rectNear(got, Rect{0, -5, 10, 0}, 1e-3) {
		t.Errorf("sweep 1: %+v", got)
	}
	if got := extentsOf(t, "M0 0 A 5 5 0 0 0 10 0"); !rectNear(got, Rect{0, 0, 10, 5}, 1e-3) {
		t.Errorf("sweep 0: %+v", got)
	}
}

func TestExtentsEmpty(t *testing.T) {
	if _, ok := Path(nil).Extents(); ok {
		t.Error("empty path reported geometry")
	}
}

func TestRectUnion(t *testing.T) {
	got := Rect{0, 0, 2, 2}.Union(Rect{-1, 1, 1, 5})
	if got != (Rect{-1, 0, 2, 5}) {
		t.Errorf("union = %+v", got)
	}
}

func randBBoxPoint(rnd *rand.Rand) Point {
	return Point{rnd.Float64()*200 - 100, rnd.Float64()*200 - 100}
}

// sample-checks a segment box: it must contain every sampled curve point
// and be reached by at least one of them on each side.
func checkSegmentBox(t *testing.T, seg segment) {
	t.Helper()
	r := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	extendWith(&r, seg)
	sampled := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	const steps = 2000
	for i := 0; i <= steps; i++ {
		x, y := seg.pointAt(float64(i) / steps)
		if x < r.MinX-1e-9 || x > r.MaxX+1e-9 || y < r.MinY-1e-9 || y > r.MaxY+1e-9 {
			t.Fatalf("point (%g,%g) outside box %+v", x, y, r)
		}
		sampled.add(x, y)
	}
	if !rectNear(r, sampled, 1e-2) {
		t.Fatalf("box %+v much larger than sampled %+v", r, sampled)
	}
}

func TestExtentsAgainstSampling(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		a, b := randBBoxPoint(rnd), randBBoxPoint(rnd)
		c, d := randBBoxPoint(rnd), randBBoxPoint(rnd)
		checkSegmentBox(t, line{a, b})
		checkSegmentBox(t, quadBezier{a, b, c})
		checkSegmentBox(t, cubicBezier{a, b, c, d})
	}
}

func TestExtentsDegenerateCubic(t *testing.T) {
	// leading coefficient of the derivative vanishes; the remaining
	// linear root must still be found
	got := extentsOf(t, "M0 0 C 0 20, 10 20, 10 0")
	if math.Abs(got.MaxY-15) > 1e-9 {
		t.Errorf("MaxY = %g, want 15", got.MaxY)
	}
	// a fully linear cubic has no interior extrema
	got = extentsOf(t, "M0 0 C 1 1, 2 2, 3 3")
	if !rectNear(got, Rect{0, 0, 3, 3}, 1e-9) {
		t.Errorf("linear cubic: %+v", got)
	}
}
