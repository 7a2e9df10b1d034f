package svgraster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves a paint attribute value to a color. A nil color
// with no error means there is nothing to paint, as for "none".
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "none":
		return nil, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, 0xFF}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		vals := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(vals) != 3 {
			return nil, fmt.Errorf("invalid rgb() color %q", s)
		}
		var cvals [3]uint8
		for i := range cvals {
			n, err := parseColorValue(vals[i])
			if err != nil {
				return nil, fmt.Errorf("invalid rgb() color %q: %w", s, err)
			}
			cvals[i] = n
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], 0xFF}, nil
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, err := parseColorNum(v)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return color.NRGBA{r, g, b, 0xFF}, nil
	}
	return nil, fmt.Errorf("unsupported color %q", s)
}

// parseColorNum reads a hex color string e.g. #FBD9BD, expanding the
// three digit shorthand by duplicating each character per the SVG spec.
func parseColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	if len(colorStr) == 3 {
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	}
	if len(colorStr) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 3 or 6 hex digits, got %d", len(colorStr))
	}
	var t uint64
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]}} {
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return
		}
		*v.c = uint8(t)
	}
	return
}

// parseColorValue reads one rgb() channel, either an integer clamped to
// 255 or a percentage.
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "%")))
		if err != nil {
			return 0, err
		}
		return uint8(n * 0xFF / 100), nil
	}
	n, err := strconv.Atoi(v)
	if n > 255 {
		n = 255
	}
	return uint8(n), err
}
