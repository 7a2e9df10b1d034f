package svgdoc

import (
	"fmt"
	"math"
	"strings"
)

// Info is the flat metadata record of one document: declared and parsed
// dimensions, resolved view box, and structural counts from a full
// traversal.
type Info struct {
	File         string
	WidthAttr    string // raw attribute value, "" when absent
	HeightAttr   string
	ParsedWidth  float64 // NaN when the attribute has no numeric prefix
	ParsedHeight float64
	ViewBox      ViewBox
	Paths        int
	Groups       int // distinct non-empty group labels
	IDs          int // distinct non-empty path ids
}

// CollectInfo aggregates one traversal of the document into an Info.
func CollectInfo(doc *Document) Info {
	root := doc.Root
	info := Info{
		File:       doc.File,
		WidthAttr:  root.AttrVal("width"),
		HeightAttr: root.AttrVal("height"),
		ViewBox:    ParseViewBox(root),
	}
	info.ParsedWidth = ParseLength(info.WidthAttr, math.NaN())
	info.ParsedHeight = ParseLength(info.HeightAttr, math.NaN())

	groups := make(map[string]struct{})
	ids := make(map[string]struct{})
	WalkPaths(root, func(p PathRef) {
		info.Paths++
		for _, g := range p.Trail {
			groups[g] = struct{}{}
		}
		if id := p.Node.AttrVal("id"); id != "" {
			ids[id] = struct{}{}
		}
	})
	info.Groups = len(groups)
	info.IDs = len(ids)
	return info
}

// Report renders the record as the multi-line text the info command prints.
func (in Info) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", in.File)
	fmt.Fprintf(&b, "Size attrs: width=%s, height=%s (parsed: %s x %s)\n",
		attrDisplay(in.WidthAttr), attrDisplay(in.HeightAttr),
		parsedDisplay(in.ParsedWidth), parsedDisplay(in.ParsedHeight))
	fmt.Fprintf(&b, "ViewBox: %s %s %s %s\n",
		Ftoa(in.ViewBox.MinX), Ftoa(in.ViewBox.MinY), Ftoa(in.ViewBox.W), Ftoa(in.ViewBox.H))
	fmt.Fprintf(&b, "Paths: %d\n", in.Paths)
	fmt.Fprintf(&b, "Groups: %d\n", in.Groups)
	if in.IDs > 0 {
		fmt.Fprintf(&b, "IDs: %d unique\n", in.IDs)
	}
	b.WriteString("Done.\n")
	return b.String()
}

func attrDisplay(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func parsedDisplay(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return Ftoa(f)
}
