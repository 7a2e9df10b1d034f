package svgdoc

import (
	"math"
	"strings"
	"unicode"
)

// Matrix2D represents an SVG style affine transform of the form
// [ A C E ]
// [ B D F ]
// [ 0 0 1 ]
// The implicit bottom row never changes, so only six values are kept.
// All operations are by value and return a new matrix.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a x b, the composition that applies b first and a second.
// Matrix multiplication is associative but not commutative; accumulate a
// child transform onto its ancestors with ancestor.Mult(child).
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Transform applies the matrix to the point x1, y1.
func (a Matrix2D) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C + a.E
	y2 = x1*a.B + y1*a.D + a.F
	return
}

// Translate composes a translation by x, y onto a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes a scale by x, y onto a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// rotateAbout is a rotation of deg degrees about the point cx, cy,
// built as the single closed-form matrix T(cx,cy) R(deg) T(-cx,-cy)
// rather than three separate products.
func rotateAbout(deg, cx, cy float64) Matrix2D {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Matrix2D{
		A: cos, B: sin,
		C: -sin, D: cos,
		E: cx - cx*cos + cy*sin,
		F: cy - cx*sin - cy*cos,
	}
}

// ParseTransform interprets the value of an SVG transform attribute as a
// single matrix, composing each listed function left to right. The parse is
// tolerant: unknown function names are skipped, malformed numeric tokens read
// as zero, and an empty or absent value yields Identity.
func ParseTransform(v string) Matrix2D {
	m := Identity
	for _, chunk := range strings.Split(v, ")") {
		open := strings.Index(chunk, "(")
		if open < 0 {
			continue
		}
		name := strings.Trim(chunk[:open], ", \t\r\n")
		args := splitOnCommaOrSpace(chunk[open+1:])
		vals := make([]float64, len(args))
		for i, a := range args {
			vals[i] = toFloat(a, 0)
		}
		switch name {
		case "matrix":
			if len(vals) == 6 {
				m = m.Mult(Matrix2D{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]})
			}
		case "translate":
			var tx, ty float64
			if len(vals) > 0 {
				tx = vals[0]
			}
			if len(vals) > 1 {
				ty = vals[1]
			}
			m = m.Translate(tx, ty)
		case "scale":
			sx := 1.0
			if len(vals) > 0 {
				sx = vals[0]
			}
			sy := sx
			if len(vals) > 1 {
				sy = vals[1]
			}
			m = m.Scale(sx, sy)
		case "rotate":
			if len(vals) == 0 {
				continue
			}
			var cx, cy float64
			if len(vals) > 1 {
				cx = vals[1]
			}
			if len(vals) > 2 {
				cy = vals[2]
			}
			m = m.Mult(rotateAbout(vals[0], cx, cy))
		}
	}
	return m
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on
// comma and whitespace delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
}
