package svgdoc

import (
	"strconv"
	"strings"
)

// toFloat parses s as a float, falling back to def on any failure.
func toFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

// ParseLength reads the leading numeric prefix of a dimension attribute,
// ignoring any trailing unit ("12.5cm" reads as 12.5). A value with no
// leading number, including the empty string, falls back to def.
func ParseLength(v string, def float64) float64 {
	var end int
	var dot, digit bool
scan:
	for ; end < len(v); end++ {
		switch c := v[end]; {
		case c >= '0' && c <= '9':
			digit = true
		case (c == '+' || c == '-') && end == 0:
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
	}
	if !digit {
		return def
	}
	return toFloat(v[:end], def)
}

// ViewBox is the user-coordinate window of a document.
type ViewBox struct {
	MinX, MinY, W, H float64
}

// ParseViewBox resolves the view box of a root element: the viewBox
// attribute when it holds four numbers, else the width/height attributes
// (defaulting to 1 each) at origin, else the unit box.
func ParseViewBox(root *Element) ViewBox {
	if fields := strings.Fields(root.AttrVal("viewBox")); len(fields) == 4 {
		return ViewBox{
			MinX: toFloat(fields[0], 0),
			MinY: toFloat(fields[1], 0),
			W:    toFloat(fields[2], 0),
			H:    toFloat(fields[3], 0),
		}
	}
	return ViewBox{
		MinX: 0, MinY: 0,
		W: ParseLength(root.AttrVal("width"), 1),
		H: ParseLength(root.AttrVal("height"), 1),
	}
}

// Ftoa formats a float the way generated SVG attributes want it: shortest
// round-trip form, with negative zero normalized away.
func Ftoa(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
