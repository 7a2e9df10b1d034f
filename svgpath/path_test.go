package svgpath

import (
	"reflect"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/tilegrid/svgtile/svgdoc"
)

func TestToSVGPath(t *testing.T) {
	p := Path{
		MoveTo{1, 2},
		LineTo{3.5, 4},
		QuadTo{{1, 1}, {2, 2}},
		CubicTo{{0, 0}, {1, 0}, {1, 1}},
		Close{},
	}
	want := "M1.000,2.000 L3.500,4.000 Q1.000,1.000,2.000,2.000 " +
		"C0.000,0.000,1.000,0.000,1.000,1.000 Z"
	if got := p.ToSVGPath(); got != want {
		t.Errorf("got %q", got)
	}
	if p.String() != p.ToSVGPath() {
		t.Error("String and ToSVGPath disagree")
	}
}

func TestPathTransform(t *testing.T) {
	p := Path{
		MoveTo{0, 0},
		LineTo{1, 0},
		QuadTo{{1, 1}, {2, 0}},
		CubicTo{{2, 1}, {3, 1}, {3, 0}},
		Close{},
	}
	m := svgdoc.Identity.Translate(10, 20).Scale(2, 2)
	got := p.Transform(m)
	want := Path{
		MoveTo{10, 20},
		LineTo{12, 20},
		QuadTo{{12, 22}, {14, 20}},
		CubicTo{{14, 22}, {16, 22}, {16, 20}},
		Close{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}
	// the receiver stays untouched
	if p[0] != Operation(MoveTo{0, 0}) {
		t.Errorf("transform mutated the source: %v", p[0])
	}
}

type recOp struct {
	verb string
	pts  []fixed.Point26_6
}

// opRecorder captures the command stream an Adder receives.
type opRecorder struct {
	got []recOp
}

func (r *opRecorder) Start(a fixed.Point26_6) {
	r.got = append(r.got, recOp{"start", []fixed.Point26_6{a}})
}

func (r *opRecorder) Line(b fixed.Point26_6) {
	r.got = append(r.got, recOp{"line", []fixed.Point26_6{b}})
}

func (r *opRecorder) QuadBezier(b, c fixed.Point26_6) {
	r.got = append(r.got, recOp{"quad", []fixed.Point26_6{b, c}})
}

func (r *opRecorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.got = append(r.got, recOp{"cube", []fixed.Point26_6{b, c, d}})
}

func (r *opRecorder) Stop(closeLoop bool) {
	verb := "stop"
	if closeLoop {
		verb = "close"
	}
	r.got = append(r.got, recOp{verb, nil})
}

func fp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func TestAddTo(t *testing.T) {
	p := Path{
		MoveTo{1, 2},
		LineTo{3, 4},
		Close{},
		MoveTo{5, 6},
		QuadTo{{7, 8}, {9, 10}},
	}
	var rec opRecorder
	p.AddTo(&rec)
	want := []recOp{
		{"stop", nil},
		{"start", []fixed.Point26_6{fp(1, 2)}},
		{"line", []fixed.Point26_6{fp(3, 4)}},
		{"close", nil},
		{"stop", nil}, // the second subpath opens without closing the first
		{"start", []fixed.Point26_6{fp(5, 6)}},
		{"quad", []fixed.Point26_6{fp(7, 8), fp(9, 10)}},
		{"stop", nil},
	}
	if !reflect.DeepEqual(rec.got, want) {
		t.Errorf("got %v,\nwant %v", rec.got, want)
	}
}

func TestClear(t *testing.T) {
	p := Path{MoveTo{1, 2}}
	p.Clear()
	if len(p) != 0 {
		t.Errorf("got %v", p)
	}
}
