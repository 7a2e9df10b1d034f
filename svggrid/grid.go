// Package svggrid composes an SVG drawing into a lattice of cells and
// rearranges cell content in place.
package svggrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tilegrid/svgtile/svgdoc"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// BuildGrid tiles the drawing of doc into a rows x cols lattice and
// returns a new document. Each cell holds an independent copy of the
// source body, scaled from the source view box to the declared width and
// height, under two nested groups: an outer one placing the cell and an
// inner one normalizing the source coordinates. Defs are hoisted once to
// the new root so references keep resolving.
func BuildGrid(doc *svgdoc.Document, rows, cols int) (*svgdoc.Document, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid dimensions must be at least 1x1, got %dx%d", rows, cols)
	}
	src := doc.Root
	vb := svgdoc.ParseViewBox(src)
	cellW := svgdoc.ParseLength(src.AttrVal("width"), vb.W)
	cellH := svgdoc.ParseLength(src.AttrVal("height"), vb.H)
	sx, sy := 1.0, 1.0
	if vb.W != 0 {
		sx = cellW / vb.W
	}
	if vb.H != 0 {
		sy = cellH / vb.H
	}
	totalW := cellW * float64(cols)
	totalH := cellH * float64(rows)

	root := &svgdoc.Element{Tag: "svg"}
	for _, a := range src.Attr {
		if a.Name == "xmlns" || strings.HasPrefix(a.Name, "xmlns:") {
			root.SetAttr(a.Name, a.Value)
		}
	}
	if _, ok := root.Lookup("xmlns"); !ok {
		root.SetAttr("xmlns", svgNamespace)
	}
	version := src.AttrVal("version")
	if version == "" {
		version = "1.1"
	}
	root.SetAttr("version", version)
	root.SetAttr("width", svgdoc.Ftoa(totalW))
	root.SetAttr("height", svgdoc.Ftoa(totalH))
	root.SetAttr("viewBox", fmt.Sprintf("0 0 %s %s", svgdoc.Ftoa(totalW), svgdoc.Ftoa(totalH)))
	if par, ok := src.Lookup("preserveAspectRatio"); ok {
		root.SetAttr("preserveAspectRatio", par)
	}

	var defs, body []*svgdoc.Element
	for _, child := range src.Children {
		if child.Tag == "defs" {
			defs = append(defs, child.Children...)
		} else {
			body = append(body, child)
		}
	}
	if len(defs) > 0 {
		shared := &svgdoc.Element{Tag: "defs"}
		for _, d := range defs {
			shared.Children = append(shared.Children, d.DeepCopy())
		}
		root.Children = append(root.Children, shared)
	}

	normalize := fmt.Sprintf("translate(%s,%s) scale(%s,%s)",
		svgdoc.Ftoa(-vb.MinX), svgdoc.Ftoa(-vb.MinY), svgdoc.Ftoa(sx), svgdoc.Ftoa(sy))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := &svgdoc.Element{Tag: "g"}
			cell.SetAttr("transform", fmt.Sprintf("translate(%s,%s)",
				svgdoc.Ftoa(float64(col)*cellW), svgdoc.Ftoa(float64(row)*cellH)))
			cell.SetAttr("data-row", strconv.Itoa(row))
			cell.SetAttr("data-col", strconv.Itoa(col))
			content := &svgdoc.Element{Tag: "g"}
			content.SetAttr("transform", normalize)
			for _, child := range body {
				content.Children = append(content.Children, child.DeepCopy())
			}
			cell.Children = []*svgdoc.Element{content}
			root.Children = append(root.Children, cell)
		}
	}
	return &svgdoc.Document{Root: root}, nil
}
