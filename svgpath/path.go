// Implements an abstract representation of svg path geometry,
// which can then be consumed by painting backends.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/tilegrid/svgtile/svgdoc"
)

// Point is a position in user space.
type Point struct {
	X, Y float64
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path with every control point mapped
// through m.
func (p Path) Transform(m svgdoc.Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			x, y := m.Transform(op.X, op.Y)
			out[i] = MoveTo{x, y}
		case LineTo:
			x, y := m.Transform(op.X, op.Y)
			out[i] = LineTo{x, y}
		case QuadTo:
			var q QuadTo
			for j, pt := range op {
				q[j].X, q[j].Y = m.Transform(pt.X, pt.Y)
			}
			out[i] = q
		case CubicTo:
			var c CubicTo
			for j, pt := range op {
				c[j].X, c[j].Y = m.Transform(pt.X, pt.Y)
			}
			out[i] = c
		case Close:
			out[i] = op
		}
	}
	return out
}

// Adder accumulates scan-ready path commands in fixed point coordinates.
// rasterx fillers and dashers satisfy it.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddTo replays the path into q. A MoveTo while a subpath is open
// first ends it without closing the loop.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false)
			q.Start(toFixedP(op.X, op.Y))
		case LineTo:
			q.Line(toFixedP(op.X, op.Y))
		case QuadTo:
			q.QuadBezier(toFixedP(op[0].X, op[0].Y), toFixedP(op[1].X, op[1].Y))
		case CubicTo:
			q.CubeBezier(toFixedP(op[0].X, op[0].Y), toFixedP(op[1].X, op[1].Y),
				toFixedP(op[2].X, op[2].Y))
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}
