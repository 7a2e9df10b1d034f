package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

var errParamMismatch = errors.New("param mismatch")

// pathCursor tracks the pen position and reflection state
// while compiling a path d attribute.
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	pathStartX, pathStartY float64
	cntlPtX, cntlPtY       float64
	points                 []float64
	lastKey                uint8
	inPath                 bool
}

// CompilePath transforms the text of a d attribute into a Path.
func CompilePath(d string) (Path, error) {
	var c pathCursor
	if err := c.compilePath(d); err != nil {
		return nil, err
	}
	return c.path, nil
}

// compilePath cuts the attribute into single-command segments and feeds
// them to addSeg. The letters e and E never name a command, they belong
// to exponents.
func (c *pathCursor) compilePath(d string) error {
	c.placeX, c.placeY = 0, 0
	c.points = c.points[:0]
	c.lastKey = ' '
	c.path.Clear()
	c.inPath = false
	lastIndex := -1
	for i, r := range d {
		if unicode.IsLetter(r) && r != 'e' && r != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(d[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(d[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// getPoints reads a comma, space or sign separated list of SVG numbers
// into c.points. A second decimal point starts a new number, as in the
// compact form "1.5.5", and an exponent may carry its own sign.
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	start := -1
	gotDot, gotExp := false, false
	add := func(end int) error {
		if start == -1 {
			return nil
		}
		v, err := strconv.ParseFloat(dataPoints[start:end], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
		start = -1
		return nil
	}
	for i, r := range dataPoints {
		switch {
		case '0' <= r && r <= '9':
			if start == -1 {
				start, gotDot, gotExp = i, false, false
			}
		case r == '.':
			if start != -1 && !gotDot && !gotExp {
				gotDot = true
				break
			}
			if err := add(i); err != nil {
				return err
			}
			start, gotDot, gotExp = i, true, false
		case r == 'e' || r == 'E':
			if start == -1 {
				start = i // lone exponent, reported by ParseFloat below
			}
			gotExp = true
		case r == '+' || r == '-':
			if start != -1 && (dataPoints[i-1] == 'e' || dataPoints[i-1] == 'E') {
				break // sign of the exponent
			}
			if err := add(i); err != nil {
				return err
			}
			start, gotDot, gotExp = i, false, false
		default:
			if err := add(i); err != nil {
				return err
			}
		}
	}
	return add(len(dataPoints))
}

// valsToAbs converts a run of relative values to absolute, each one
// relative to the previous.
func (c *pathCursor) valsToAbs(last float64) {
	for i := range c.points {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs converts relative coordinate pairs to absolute, set by set.
func (c *pathCursor) pointsToAbs(sets int) {
	lastX, lastY := c.placeX, c.placeY
	for j := 0; j < len(c.points); j += sets {
		for i := 0; i < sets; i += 2 {
			c.points[j+i] += lastX
			c.points[j+i+1] += lastY
		}
		lastX = c.points[j+sets-2]
		lastY = c.points[j+sets-1]
	}
}

// hasSetsOrMore checks that the points come in one or more full sets,
// converting them to absolute coordinates when rel is set.
func (c *pathCursor) hasSetsOrMore(sets int, rel bool) bool {
	if !(len(c.points) >= sets && len(c.points)%sets == 0) {
		return false
	}
	if rel {
		c.pointsToAbs(sets)
	}
	return true
}

// reflectControl mirrors the last control point about the pen position.
func (c *pathCursor) reflectControl() (rx, ry float64) {
	return c.placeX*2 - c.cntlPtX, c.placeY*2 - c.cntlPtY
}

// addSeg decodes one command segment and extends the path.
func (c *pathCursor) addSeg(segString string) error {
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		rel = true
		fallthrough
	case 'M':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.inPath = true
		c.path.Start(Point{c.pathStartX, c.pathStartY})
		for i := 2; i < l-1; i += 2 {
			c.path.Line(Point{c.points[i], c.points[i+1]})
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.path.Line(Point{c.points[i], c.points[i+1]})
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if !c.hasSetsOrMore(1, false) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(Point{c.placeX, p})
		}
		c.placeY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if !c.hasSetsOrMore(1, false) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(Point{p, c.placeY})
		}
		c.placeX = c.points[l-1]
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if !c.hasSetsOrMore(6, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-5; i += 6 {
			c.path.CubeBezier(
				Point{c.points[i], c.points[i+1]},
				Point{c.points[i+2], c.points[i+3]},
				Point{c.points[i+4], c.points[i+5]})
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.placeX, c.placeY = c.points[i+4], c.points[i+5]
		}
	case 's':
		rel = true
		fallthrough
	case 'S':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			reflX, reflY := c.placeX, c.placeY
			switch c.lastKey {
			case 'c', 'C', 's', 'S':
				reflX, reflY = c.reflectControl()
			}
			c.path.CubeBezier(
				Point{reflX, reflY},
				Point{c.points[i], c.points[i+1]},
				Point{c.points[i+2], c.points[i+3]})
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
		}
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.path.QuadBezier(
				Point{c.points[i], c.points[i+1]},
				Point{c.points[i+2], c.points[i+3]})
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
		}
	case 't':
		rel = true
		fallthrough
	case 'T':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			reflX, reflY := c.placeX, c.placeY
			switch c.lastKey {
			case 'q', 'Q', 't', 'T':
				reflX, reflY = c.reflectControl()
			}
			c.path.QuadBezier(Point{reflX, reflY}, Point{c.points[i], c.points[i+1]})
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = reflX, reflY
			c.placeX, c.placeY = c.points[i], c.points[i+1]
		}
	case 'a', 'A':
		if !c.hasSetsOrMore(7, false) {
			return errParamMismatch
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addSegArc(c.points[i : i+7])
		}
	default:
		return fmt.Errorf("cannot process path command %q", k)
	}
	c.lastKey = k
	return nil
}

// addSegArc rationalizes one set of arc parameters and appends the
// cubic approximation. Zero radii degrade to a straight line and an
// arc ending at the pen position draws nothing, per the SVG spec.
func (c *pathCursor) addSegArc(points []float64) {
	if points[5] == c.placeX && points[6] == c.placeY {
		return
	}
	if points[0] == 0 || points[1] == 0 {
		c.path.Line(Point{points[5], points[6]})
		c.placeX, c.placeY = points[5], points[6]
		return
	}
	points[0] = math.Abs(points[0])
	points[1] = math.Abs(points[1])
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.placeX,
		c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx, cy, c.placeX, c.placeY)
}
