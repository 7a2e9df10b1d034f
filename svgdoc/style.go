package svgdoc

import "strings"

// Style holds the effective paint values of one drawable element after
// merging presentation attributes, the inline style attribute and defaults.
// Fill and Stroke are the raw SVG color strings with "none" meaning no paint.
type Style struct {
	Fill          string
	Stroke        string
	FillOpacity   float64
	StrokeOpacity float64
	StrokeWidth   float64
}

// HasFill reports whether the fill paints at all. A "none" fill stays fully
// transparent no matter what the fill opacity says.
func (s Style) HasFill() bool { return s.Fill != "none" }

// HasStroke reports whether the stroke paints at all.
func (s Style) HasStroke() bool { return s.Stroke != "none" }

// LineWidth is the stroke width actually drawn: zero whenever the stroke is
// "none", regardless of the declared width.
func (s Style) LineWidth() float64 {
	if !s.HasStroke() {
		return 0
	}
	return s.StrokeWidth
}

// ParseStyleAttr splits an inline style attribute into key/value pairs:
// entries separated by ";", keys and values by the first ":". Entries
// without a colon are ignored.
func ParseStyleAttr(style string) map[string]string {
	m := make(map[string]string)
	for _, entry := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}

// ResolveStyle computes the effective style of a drawable element. Per
// field the XML attribute wins when present, else the inline style entry,
// else the default: "none" for the paints, 1.0 for opacities and width.
// Numeric noise falls back to the default rather than failing.
func ResolveStyle(node *Element) Style {
	styles := ParseStyleAttr(node.AttrVal("style"))
	st := Style{
		Fill:          "none",
		Stroke:        "none",
		FillOpacity:   1,
		StrokeOpacity: 1,
		StrokeWidth:   1,
	}
	if v, ok := fieldValue(node, styles, "fill"); ok && v != "" {
		st.Fill = v
	}
	if v, ok := fieldValue(node, styles, "stroke"); ok && v != "" {
		st.Stroke = v
	}
	if v, ok := fieldValue(node, styles, "fill-opacity"); ok {
		st.FillOpacity = toFloat(v, 1)
	}
	if v, ok := fieldValue(node, styles, "stroke-opacity"); ok {
		st.StrokeOpacity = toFloat(v, 1)
	}
	if v, ok := fieldValue(node, styles, "stroke-width"); ok {
		st.StrokeWidth = toFloat(v, 1)
	}
	return st
}

func fieldValue(node *Element, styles map[string]string, key string) (string, bool) {
	if v, ok := node.Lookup(key); ok && v != "" {
		return v, true
	}
	v, ok := styles[key]
	return v, ok
}
